// Package app is the composition root for InLine.
//
// # Overview
//
// Setup loads configuration, opens the log file, reads the vendor session
// and builds the API client. The resulting Env is shared by every command
// in cmd/inline: the two TUI modes and the one-shot commands (login, qr,
// assets, logs).
//
//	┌──────────────┐
//	│   Setup()    │
//	└──────┬───────┘
//	       ├─────> config.Load()        ~/.config/inline/config.toml + env
//	       ├─────> logging.New()        zerolog console format to a file
//	       ├─────> session.Open()       bearer token for vendor calls
//	       └─────> api.NewClient()      REST client behind a breaker
//
// # Modes
//
// RunCustomer drives the customer view through a waitlist.Controller. The
// controller owns its own state; there is no poller, the user refreshes
// with a key.
//
// RunDashboard requires a live vendor session. It creates a state.Store and
// launches StartPoller, which reads the queue, metrics and assets on a
// timer. The UI reads snapshots from the store and never blocks on the API.
//
//	StartPoller() goroutine
//	 ├─> Waitlist()   failure counts toward backoff
//	 ├─> Metrics()    failure keeps the previous value
//	 ├─> Assets()     failure keeps the previous value
//	 └─> store.Update()
//
// # Polling Behavior
//
// The default interval is 15 seconds. After consecutive queue failures the
// delay doubles per failure up to 30 seconds, and the header flags the
// dashboard as offline after two misses.
package app
