package waitlist

import (
	"context"
	"strings"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/validation"
)

// JoinForm is what a customer fills in to join a queue.
type JoinForm struct {
	FirstName  string
	LastName   string
	Phone      string
	Email      string
	PartySize  int
	Preference string
}

// Request converts the form into a trimmed join request for vendorID.
func (f JoinForm) Request(vendorID int64) api.JoinRequest {
	return api.JoinRequest{
		FirstName:  strings.TrimSpace(f.FirstName),
		LastName:   strings.TrimSpace(f.LastName),
		Email:      strings.TrimSpace(f.Email),
		Phone:      strings.TrimSpace(f.Phone),
		PartySize:  f.PartySize,
		Preference: strings.TrimSpace(f.Preference),
		VendorID:   vendorID,
	}
}

// ValidateJoin checks req locally. It returns nil when req may be sent.
func ValidateJoin(req api.JoinRequest) *validation.Error {
	verr := validation.Struct(req)
	if req.Phone == "" && req.Email == "" {
		contact := validation.FieldError{Field: "contact", Tag: "contact", Message: MsgContactRequired}
		if verr == nil {
			verr = &validation.Error{}
		}
		verr.Fields = append(verr.Fields, contact)
	}
	return verr
}

// JoinHandler validates and submits join requests.
type JoinHandler struct {
	backend Backend
}

// NewJoinHandler returns a JoinHandler backed by b.
func NewJoinHandler(b Backend) *JoinHandler {
	return &JoinHandler{backend: b}
}

// Join submits form for vendorID. Validation failures never reach the backend.
func (h *JoinHandler) Join(ctx context.Context, vendorID int64, form JoinForm) (*api.Customer, error) {
	req := form.Request(vendorID)
	if verr := ValidateJoin(req); verr != nil {
		return nil, verr
	}
	cust, err := h.backend.Join(ctx, req)
	if err != nil {
		return nil, &Failure{Message: api.UserMessage(err, MsgJoinFailed), Err: err}
	}
	return cust, nil
}
