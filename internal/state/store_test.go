package state

import (
	"errors"
	"testing"
	"time"

	"github.com/five82/inline/internal/api"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	customers := []api.Customer{{ID: 1}, {ID: 2}}
	metrics := &api.WaitlistMetrics{TotalCustomers: 2, PeakHours: []string{"12:00"}}

	before := time.Now()
	s.Update(Data{Customers: customers, Metrics: metrics}, nil)

	snap := s.Snapshot()
	if !snap.HasMetrics || snap.Metrics.TotalCustomers != 2 {
		t.Fatalf("snapshot metrics = %#v, want total=2 HasMetrics=true", snap.Metrics)
	}
	if len(snap.Customers) != 2 || snap.Customers[0].ID != 1 {
		t.Fatalf("snapshot customers = %#v, want 2 items", snap.Customers)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Customers[0].ID = 999
	snap.Metrics.PeakHours[0] = "mutated"
	snap2 := s.Snapshot()
	if snap2.Customers[0].ID != 1 {
		t.Fatalf("Snapshot should clone customers; got id %d want 1", snap2.Customers[0].ID)
	}
	if snap2.Metrics.PeakHours[0] != "12:00" {
		t.Fatalf("Snapshot should clone peak hours; got %q", snap2.Metrics.PeakHours[0])
	}
	customers[1].ID = 42
	if s.Snapshot().Customers[1].ID != 2 {
		t.Fatalf("Update should clone input customers")
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(Data{Customers: []api.Customer{{ID: 1}}, Assets: []api.Asset{{ID: 5}}, HasAssets: true}, nil)

	origErr := errors.New("boom")
	s.Update(Data{}, origErr)
	s.Update(Data{}, origErr)

	snap := s.Snapshot()
	if len(snap.Customers) != 1 || snap.Customers[0].ID != 1 {
		t.Fatalf("customers changed on error: got %#v", snap.Customers)
	}
	if len(snap.Assets) != 1 {
		t.Fatalf("assets changed on error: got %#v", snap.Assets)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError = %v, want wrapping %v", snap.LastError, origErr)
	}
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("failures = %d offline = %v, want 2 true", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(Data{Customers: []api.Customer{{ID: 3}}}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() || snap.LastError != nil {
		t.Fatalf("success did not reset failure state: %#v", snap)
	}
}

func TestStore_OptionalSectionsKeptWhenAbsent(t *testing.T) {
	var s Store
	s.Update(Data{Metrics: &api.WaitlistMetrics{CustomersServedToday: 4}, Assets: []api.Asset{{ID: 1}}, HasAssets: true}, nil)
	s.Update(Data{Customers: []api.Customer{{ID: 2}}}, nil)

	snap := s.Snapshot()
	if !snap.HasMetrics || snap.Metrics.CustomersServedToday != 4 {
		t.Fatalf("metrics dropped: %#v", snap.Metrics)
	}
	if !snap.HasAssets || len(snap.Assets) != 1 {
		t.Fatalf("assets dropped: %#v", snap.Assets)
	}
	if c, ok := s.Customer(2); !ok || c.ID != 2 {
		t.Fatalf("Customer(2) = %#v, %v", c, ok)
	}
	if _, ok := s.Customer(9); ok {
		t.Fatalf("Customer(9) found, want missing")
	}
}
