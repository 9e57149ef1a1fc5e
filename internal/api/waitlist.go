package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Join adds a customer to a vendor's queue.
func (c *Client) Join(ctx context.Context, req JoinRequest) (*Customer, error) {
	var payload Customer
	if err := c.do(ctx, http.MethodPost, "/waitlist/join", authOptional, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Search looks up an active entry by phone or email. found is false when the
// backend has no match; that is not an error.
func (c *Client) Search(ctx context.Context, identifier string, vendorID int64) (*Customer, bool, error) {
	req := SearchRequest{Identifier: strings.TrimSpace(identifier), VendorID: vendorID}
	var payload *Customer
	if err := c.do(ctx, http.MethodPost, "/waitlist/search", authOptional, req, &payload); err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if payload == nil || payload.ID == 0 {
		return nil, false, nil
	}
	return payload, true, nil
}

// Waitlist returns every entry for a vendor in queue order, any status.
func (c *Client) Waitlist(ctx context.Context, vendorID int64) ([]Customer, error) {
	var payload []Customer
	if err := c.do(ctx, http.MethodGet, vendorPath("/waitlist", vendorID), authOptional, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// UpdateStatus changes a customer's status.
func (c *Client) UpdateStatus(ctx context.Context, customerID int64, status Status) (*Customer, error) {
	var payload Customer
	if err := c.do(ctx, http.MethodPatch, customerPath(customerID), authRequired, statusUpdate{Status: status}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Remove deletes a customer from the queue. Customers leaving their own
// entry call this without a session.
func (c *Client) Remove(ctx context.Context, customerID int64) error {
	return c.do(ctx, http.MethodDelete, customerPath(customerID), authOptional, nil, nil)
}

// Metrics returns the vendor's queue metrics.
func (c *Client) Metrics(ctx context.Context, vendorID int64) (*WaitlistMetrics, error) {
	var payload WaitlistMetrics
	if err := c.do(ctx, http.MethodGet, vendorPath("/waitlist", vendorID)+"/metrics", authRequired, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Notify asks the backend to alert a customer that their turn is near.
func (c *Client) Notify(ctx context.Context, customerID int64) error {
	return c.do(ctx, http.MethodPost, customerPath(customerID)+"/notify", authRequired, struct{}{}, nil)
}

// Estimate returns the expected wait in minutes for a queue position.
func (c *Client) Estimate(ctx context.Context, vendorID int64, position int) (int, error) {
	if position < 1 {
		return 0, fmt.Errorf("position must be at least 1")
	}
	var payload Estimate
	path := vendorPath("/waitlist", vendorID) + "/estimate/" + strconv.Itoa(position)
	if err := c.do(ctx, http.MethodGet, path, authNone, nil, &payload); err != nil {
		return 0, err
	}
	return payload.EstimatedMinutes, nil
}

func vendorPath(prefix string, vendorID int64) string {
	return prefix + "/" + strconv.FormatInt(vendorID, 10)
}

func customerPath(customerID int64) string {
	return "/waitlist/customer/" + strconv.FormatInt(customerID, 10)
}
