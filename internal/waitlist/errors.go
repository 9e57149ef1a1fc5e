package waitlist

import "errors"

var (
	// ErrBusy rejects a second submission of an action that is still in flight.
	ErrBusy = errors.New("action already in progress")
	// ErrNotResolved means there is no tracked customer to act on.
	ErrNotResolved = errors.New("no tracked customer")
)

// User-facing copy for each outcome.
const (
	MsgIdentifierRequired = "Phone number or email is required"
	MsgSearchFailed       = "Search failed. Please try again."
	MsgContactRequired    = "Please provide either a phone number or email address."
	MsgJoinFailed         = "Failed to join waitlist. Please try again."
	MsgLeaveFailed        = "Failed to leave waitlist"
	MsgRosterFailed       = "Could not load the waitlist"

	MsgFound    = "Found your position in line!"
	MsgNotFound = "No record found. Please join the waitlist."
	MsgJoined   = "Successfully joined the waitlist!"
	MsgLeft     = "You have left the waitlist"
)

// Failure is a network or server error paired with the text to show the user.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return f.Message + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// Message returns the text to show for err: the Failure message, the
// validation message, or err itself.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}
