// Package ui provides the Bubble Tea terminal interface for InLine.
//
// # Modes
//
// The same Model serves two audiences:
//
//   - Customer mode: a "Your spot" panel next to the vendor's anonymized
//     waitlist. Customers find their entry by phone or email, join through a
//     form, refresh, and leave after a y/n confirmation. All state lives in a
//     waitlist.Controller; the UI only renders its snapshots.
//   - Dashboard mode: the vendor's full queue with notify, serve and remove
//     actions, plus an assets view for capacity management. Data comes from
//     a state.Store that a background poller keeps fresh.
//
// # Package Structure
//
//   - app.go: Model, Options, Update loop, key dispatch and Run
//   - commands.go: messages and tea.Cmd constructors for background work
//   - customer.go, joinform.go: customer views
//   - dashboard.go, assets.go: vendor views
//   - header.go: status bar and command hints
//   - box.go, style_helpers.go: framed panes and background-safe rendering
//   - theme.go, keys.go, help.go: palettes, bindings and the help overlay
//
// # Timing
//
// Network work always runs inside a tea.Cmd with its own timeout. A one
// minute clock message re-renders elapsed waits without fetching. In
// dashboard mode a faster tick copies the store's snapshot into the model.
//
// # Themes
//
// Three palettes are available (Nightfox, Kanagawa, Slate). T cycles them and
// the choice is saved to the preferences file, as is the name masking mode.
package ui
