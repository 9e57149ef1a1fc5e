// Package state holds the vendor dashboard data shared between the background
// poller and the UI.
//
// The poller is the single writer; the UI reads copies through Snapshot on its
// own schedule. A failed poll keeps the previous data and records the error,
// so the dashboard keeps showing the last good queue while it reports the
// outage. Two or more consecutive failures mark the snapshot offline.
//
//	// Poller goroutine:
//	store := &state.Store{}
//	customers, err := client.Waitlist(ctx, vendorID)
//	store.Update(state.Data{Customers: customers}, err)
//
//	// UI:
//	snap := store.Snapshot()
//	render(snap.Customers)
//
// The zero Store is ready to use.
package state
