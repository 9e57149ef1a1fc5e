package waitlist

import (
	"context"
	"strings"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/validation"
)

// Backend is the part of the API client the customer flow needs.
type Backend interface {
	Search(ctx context.Context, identifier string, vendorID int64) (*api.Customer, bool, error)
	Join(ctx context.Context, req api.JoinRequest) (*api.Customer, error)
	Waitlist(ctx context.Context, vendorID int64) ([]api.Customer, error)
	Remove(ctx context.Context, customerID int64) error
}

var _ Backend = (*api.Client)(nil)

// Resolver finds a customer's active entry by phone or email.
type Resolver struct {
	backend Backend
}

// NewResolver returns a Resolver backed by b.
func NewResolver(b Backend) *Resolver {
	return &Resolver{backend: b}
}

// Resolve asks the backend for the entry matching identifier. A miss returns
// found=false and a nil error.
func (r *Resolver) Resolve(ctx context.Context, identifier string, vendorID int64) (*api.Customer, bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, false, validation.New("identifier", MsgIdentifierRequired)
	}
	cust, found, err := r.backend.Search(ctx, identifier, vendorID)
	if err != nil {
		return nil, false, &Failure{Message: MsgSearchFailed, Err: err}
	}
	if !found || cust == nil {
		return nil, false, nil
	}
	return cust, true, nil
}
