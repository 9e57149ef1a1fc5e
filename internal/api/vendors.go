package api

import (
	"context"
	"net/http"
	"strconv"
)

// Vendor fetches a vendor's public profile.
func (c *Client) Vendor(ctx context.Context, vendorID int64) (*Vendor, error) {
	var payload Vendor
	if err := c.do(ctx, http.MethodGet, "/vendors/"+strconv.FormatInt(vendorID, 10), authNone, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Login exchanges vendor credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var payload AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", authNone, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Register creates a vendor account and returns its first token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var payload AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", authNone, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
