// Package logtail reads the end of the InLine log file for `inline logs`.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays O(maxLines) regardless of file size. A missing file is not
// an error: it simply has no lines yet.
//
//	lines, err := logtail.Read(cfg.LogPath, 200)
//
// # Filtering
//
// The logger writes zerolog's console format without colour:
//
//	2026-01-02 15:04:05 WRN waitlist poll failed error="..."
//
// LineLevel recognises the three-letter level token and Filter drops lines
// below a minimum level. Continuation lines inherit the decision of the
// line above them.
//
// # Colour
//
// Colorizer highlights the timestamp and level with lipgloss. It takes a
// renderer so colour is only emitted when the output is a terminal.
package logtail
