package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 15 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
	if got := calculateBackoff(3, time.Minute); got != time.Minute {
		t.Errorf("calculateBackoff with long interval = %v, want interval", got)
	}
}

type fakeFetcher struct {
	waitlistErr error
	metricsErr  error
	assetsErr   error
}

func (f fakeFetcher) Waitlist(context.Context, int64) ([]api.Customer, error) {
	if f.waitlistErr != nil {
		return nil, f.waitlistErr
	}
	return []api.Customer{{ID: 1, Status: api.StatusWaiting}}, nil
}

func (f fakeFetcher) Metrics(context.Context, int64) (*api.WaitlistMetrics, error) {
	if f.metricsErr != nil {
		return nil, f.metricsErr
	}
	return &api.WaitlistMetrics{TotalCustomers: 1}, nil
}

func (f fakeFetcher) Assets(context.Context, int64) ([]api.Asset, error) {
	if f.assetsErr != nil {
		return nil, f.assetsErr
	}
	return []api.Asset{{ID: 2}}, nil
}

func TestRefresh_PopulatesStore(t *testing.T) {
	store := &state.Store{}
	if err := refresh(context.Background(), store, fakeFetcher{}, 1, zerolog.Nop()); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}
	snap := store.Snapshot()
	if len(snap.Customers) != 1 || !snap.HasMetrics || !snap.HasAssets {
		t.Fatalf("snapshot = %#v, want customers, metrics and assets", snap)
	}
}

func TestRefresh_PartialFailureStillSucceeds(t *testing.T) {
	store := &state.Store{}
	fetcher := fakeFetcher{metricsErr: errors.New("401"), assetsErr: errors.New("500")}
	if err := refresh(context.Background(), store, fetcher, 1, zerolog.Nop()); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}
	snap := store.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.HasMetrics || snap.HasAssets {
		t.Fatalf("snapshot = %#v, want customers only", snap)
	}
}

func TestRefresh_WaitlistFailureCounts(t *testing.T) {
	store := &state.Store{}
	boom := errors.New("boom")
	if err := refresh(context.Background(), store, fakeFetcher{waitlistErr: boom}, 1, zerolog.Nop()); !errors.Is(err, boom) {
		t.Fatalf("refresh error = %v, want boom", err)
	}
	if store.Snapshot().ConsecutiveFailures != 1 {
		t.Fatalf("failures = %d, want 1", store.Snapshot().ConsecutiveFailures)
	}
}
