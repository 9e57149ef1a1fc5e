package waitlist

import "github.com/five82/inline/internal/api"

// Tracker holds at most one customer: the person using this client.
// It is not safe for concurrent use; Controller guards it.
type Tracker struct {
	self       *api.Customer
	inSnapshot bool
}

// Current returns the tracked customer.
func (t *Tracker) Current() (api.Customer, bool) {
	if t.self == nil {
		return api.Customer{}, false
	}
	return *t.self, true
}

// ID returns the tracked id, or 0 when empty.
func (t *Tracker) ID() int64 {
	if t.self == nil {
		return 0
	}
	return t.self.ID
}

// Set replaces the tracked customer.
func (t *Tracker) Set(c api.Customer) {
	t.self = &c
	t.inSnapshot = true
}

// Clear forgets the tracked customer.
func (t *Tracker) Clear() {
	t.self = nil
	t.inSnapshot = false
}

// InSnapshot reports whether the tracked customer was present in the most
// recent reconciled snapshot.
func (t *Tracker) InSnapshot() bool { return t.inSnapshot }

// Reconcile refreshes position, wait and status from the matching entry in
// all. When no entry matches, the held record is kept and the absence noted.
func (t *Tracker) Reconcile(all []api.Customer) bool {
	if t.self == nil {
		return false
	}
	for _, c := range all {
		if c.ID != t.self.ID {
			continue
		}
		t.self.Position = c.Position
		t.self.WaitTime = c.WaitTime
		t.self.Status = c.Status
		if c.NotifiedAt != nil {
			t.self.NotifiedAt = c.NotifiedAt
		}
		if c.ServedAt != nil {
			t.self.ServedAt = c.ServedAt
		}
		t.inSnapshot = true
		return true
	}
	t.inSnapshot = false
	return false
}
