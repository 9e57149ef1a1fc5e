package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/inline/internal/api"
)

// Data is one successful dashboard poll. Metrics and Assets are optional:
// a nil Metrics or HasAssets=false keeps what was stored before.
type Data struct {
	Customers []api.Customer
	Metrics   *api.WaitlistMetrics
	Assets    []api.Asset
	HasAssets bool
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Customers           []api.Customer
	Metrics             api.WaitlistMetrics
	HasMetrics          bool
	Assets              []api.Asset
	HasAssets           bool
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(data Data, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Customers = cloneCustomers(data.Customers)
	s.snapshot.HasData = true
	if data.Metrics != nil {
		s.snapshot.Metrics = *data.Metrics
		s.snapshot.Metrics.PeakHours = append([]string(nil), data.Metrics.PeakHours...)
		s.snapshot.HasMetrics = true
	}
	if data.HasAssets {
		s.snapshot.Assets = cloneAssets(data.Assets)
		s.snapshot.HasAssets = true
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Customers = cloneCustomers(s.snapshot.Customers)
	snap.Assets = cloneAssets(s.snapshot.Assets)
	snap.Metrics.PeakHours = append([]string(nil), s.snapshot.Metrics.PeakHours...)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Customer returns the stored customer with id.
func (s *Store) Customer(id int64) (api.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.snapshot.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return api.Customer{}, false
}

func cloneCustomers(items []api.Customer) []api.Customer {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Customer, len(items))
	copy(dup, items)
	return dup
}

func cloneAssets(items []api.Asset) []api.Asset {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Asset, len(items))
	copy(dup, items)
	return dup
}
