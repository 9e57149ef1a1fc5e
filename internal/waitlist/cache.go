package waitlist

import (
	"time"

	"github.com/five82/inline/internal/api"
)

// SnapshotCache holds the last fetched queue for one vendor. It is not safe
// for concurrent use; Controller guards it.
type SnapshotCache struct {
	all       []api.Customer
	fetchedAt time.Time
	loaded    bool
}

// Replace stores a fresh snapshot.
func (c *SnapshotCache) Replace(all []api.Customer, at time.Time) {
	c.all = cloneCustomers(all)
	c.fetchedAt = at
	c.loaded = true
}

// Loaded reports whether any snapshot has been stored.
func (c *SnapshotCache) Loaded() bool { return c.loaded }

// FetchedAt returns when the snapshot was stored.
func (c *SnapshotCache) FetchedAt() time.Time { return c.fetchedAt }

// All returns every entry in queue order, any status.
func (c *SnapshotCache) All() []api.Customer {
	return cloneCustomers(c.all)
}

// Roster returns only the waiting entries.
func (c *SnapshotCache) Roster() []api.Customer {
	return FilterWaiting(c.all)
}

// Find returns the entry with id among all entries.
func (c *SnapshotCache) Find(id int64) (api.Customer, bool) {
	for _, cust := range c.all {
		if cust.ID == id {
			return cust, true
		}
	}
	return api.Customer{}, false
}

// FilterWaiting keeps the customers whose status is waiting.
func FilterWaiting(all []api.Customer) []api.Customer {
	out := make([]api.Customer, 0, len(all))
	for _, cust := range all {
		if cust.IsWaiting() {
			out = append(out, cust)
		}
	}
	return out
}

func cloneCustomers(in []api.Customer) []api.Customer {
	if len(in) == 0 {
		return nil
	}
	out := make([]api.Customer, len(in))
	copy(out, in)
	return out
}
