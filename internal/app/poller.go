package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/state"
)

const (
	defaultPollInterval = 15 * time.Second
	maxBackoff          = 30 * time.Second
)

// DashboardFetcher is what the dashboard poller reads from the API.
type DashboardFetcher interface {
	Waitlist(ctx context.Context, vendorID int64) ([]api.Customer, error)
	Metrics(ctx context.Context, vendorID int64) (*api.WaitlistMetrics, error)
	Assets(ctx context.Context, vendorID int64) ([]api.Asset, error)
}

var _ DashboardFetcher = (*api.Client)(nil)

// StartPoller launches a background goroutine that refreshes the store until
// ctx is cancelled. After failures the delay grows as interval×2^failures,
// capped at maxBackoff. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, fetcher DashboardFetcher, vendorID int64, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			failures := store.Snapshot().ConsecutiveFailures
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			_ = refresh(ctx, store, fetcher, vendorID, log)
		}
	}()
}

// calculateBackoff returns the delay before the next poll.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	if interval >= maxBackoff {
		return interval
	}
	delay := interval
	for i := 0; i < failures; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}

// refresh polls the queue, metrics and assets once. Only a queue failure
// counts as a failed poll; metrics and asset failures keep the stored values.
func refresh(ctx context.Context, store *state.Store, fetcher DashboardFetcher, vendorID int64, log zerolog.Logger) error {
	customers, err := fetcher.Waitlist(ctx, vendorID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		store.Update(state.Data{}, err)
		log.Warn().Err(err).Msg("waitlist poll failed")
		return err
	}

	data := state.Data{Customers: customers}
	if metrics, err := fetcher.Metrics(ctx, vendorID); err != nil {
		log.Warn().Err(err).Msg("metrics poll failed")
	} else {
		data.Metrics = metrics
	}
	if assets, err := fetcher.Assets(ctx, vendorID); err != nil {
		log.Warn().Err(err).Msg("assets poll failed")
	} else {
		data.Assets = assets
		data.HasAssets = true
	}

	store.Update(data, nil)
	return nil
}
