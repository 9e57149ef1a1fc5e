package waitlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/inline/internal/api"
)

// VendorBackend is the part of the API client the vendor dashboard needs.
type VendorBackend interface {
	Waitlist(ctx context.Context, vendorID int64) ([]api.Customer, error)
	Metrics(ctx context.Context, vendorID int64) (*api.WaitlistMetrics, error)
	Notify(ctx context.Context, customerID int64) error
	UpdateStatus(ctx context.Context, customerID int64, status api.Status) (*api.Customer, error)
	Remove(ctx context.Context, customerID int64) error
}

var _ VendorBackend = (*api.Client)(nil)

const (
	MsgNotifyFailed = "Failed to notify customer"
	MsgServeFailed  = "Failed to update customer status"
	MsgRemoveFailed = "Failed to remove customer"
)

// Desk performs the vendor's per-customer actions. Each returns the notice to
// show on success.
type Desk struct {
	backend VendorBackend
	log     zerolog.Logger
}

// NewDesk returns a Desk backed by b.
func NewDesk(b VendorBackend, log zerolog.Logger) *Desk {
	return &Desk{backend: b, log: log}
}

// Notify alerts the customer that their turn is near.
func (d *Desk) Notify(ctx context.Context, c api.Customer) (string, error) {
	if c.ID == 0 {
		return "", ErrNotResolved
	}
	if err := d.backend.Notify(ctx, c.ID); err != nil {
		d.log.Warn().Err(err).Int64("customer", c.ID).Msg("notify failed")
		return "", &Failure{Message: MsgNotifyFailed, Err: err}
	}
	d.log.Info().Int64("customer", c.ID).Msg("customer notified")
	return fmt.Sprintf("%s has been notified", firstName(c)), nil
}

// Serve marks the customer as served.
func (d *Desk) Serve(ctx context.Context, c api.Customer) (string, error) {
	if c.ID == 0 {
		return "", ErrNotResolved
	}
	if _, err := d.backend.UpdateStatus(ctx, c.ID, api.StatusServed); err != nil {
		d.log.Warn().Err(err).Int64("customer", c.ID).Msg("serve failed")
		return "", &Failure{Message: MsgServeFailed, Err: err}
	}
	d.log.Info().Int64("customer", c.ID).Msg("customer served")
	return fmt.Sprintf("%s marked as served", firstName(c)), nil
}

// Remove deletes the customer from the queue.
func (d *Desk) Remove(ctx context.Context, c api.Customer) (string, error) {
	if c.ID == 0 {
		return "", ErrNotResolved
	}
	if err := d.backend.Remove(ctx, c.ID); err != nil {
		d.log.Warn().Err(err).Int64("customer", c.ID).Msg("remove failed")
		return "", &Failure{Message: MsgRemoveFailed, Err: err}
	}
	d.log.Info().Int64("customer", c.ID).Msg("customer removed")
	return fmt.Sprintf("%s removed from waitlist", firstName(c)), nil
}

func firstName(c api.Customer) string {
	if name := strings.TrimSpace(c.FirstName); name != "" {
		return name
	}
	return "Customer"
}
