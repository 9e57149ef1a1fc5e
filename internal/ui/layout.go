package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

// Timing constants.
const (
	// ClockInterval re-renders elapsed waits. It never touches the network.
	ClockInterval = time.Minute

	// ActionTimeout bounds a single user-triggered API call.
	ActionTimeout = 10 * time.Second

	// DefaultUIInterval is how often the dashboard re-reads the poller's store.
	DefaultUIInterval = time.Second

	// NoticeLifetime is how long a notice stays in the header.
	NoticeLifetime = 8 * time.Second
)

// chromeHeight is the header plus command bar.
const chromeHeight = 2
