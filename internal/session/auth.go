package session

import (
	"context"
	"strings"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/validation"
)

// Authenticator is the part of the API client used for login and registration.
type Authenticator interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
}

var _ Authenticator = (*api.Client)(nil)

// Login validates credentials locally, authenticates and persists the session.
func Login(ctx context.Context, auth Authenticator, store *Store, req api.LoginRequest) (Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if verr := validation.Struct(req); verr != nil {
		return Session{}, verr
	}
	resp, err := auth.Login(ctx, req)
	if err != nil {
		return Session{}, err
	}
	return store.Save(*resp)
}

// Register validates the registration form, creates the vendor and persists
// the session.
func Register(ctx context.Context, auth Authenticator, store *Store, req api.RegisterRequest) (Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.ContactName = strings.TrimSpace(req.ContactName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.SubscriptionPlan = strings.TrimSpace(req.SubscriptionPlan)
	if verr := validation.Struct(req); verr != nil {
		return Session{}, verr
	}
	resp, err := auth.Register(ctx, req)
	if err != nil {
		return Session{}, err
	}
	return store.Save(*resp)
}
