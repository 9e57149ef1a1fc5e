package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/prefs"
)

// vendorLabel names the business whose queue is on screen.
func (m Model) vendorLabel() string {
	if name := strings.TrimSpace(m.vendor.BusinessName); name != "" {
		return name
	}
	if m.vendor.ID != 0 {
		return fmt.Sprintf("Vendor #%d", m.vendor.ID)
	}
	return "Waitlist"
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("inline", styles.Logo),
		bg.Render(truncate(m.vendorLabel(), 32), styles.Text.Bold(true)),
	}
	if m.mode == ModeDashboard {
		parts = append(parts, m.dashboardStatus(styles, bg)...)
	} else {
		parts = append(parts, m.customerStatus(styles, bg)...)
	}

	if m.notice.text != "" {
		text := truncate(m.notice.text, maxInt(m.width/2, 20))
		if m.notice.isErr {
			parts = append(parts, bg.Render(text, styles.DangerText))
		} else {
			parts = append(parts, bg.Render(text, styles.SuccessText))
		}
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, sep))
}

func (m Model) customerStatus(styles Styles, bg BgStyle) []string {
	if !m.waitlist.Loaded {
		return []string{bg.Render("Loading waitlist...", styles.WarningText.Bold(true))}
	}
	parts := []string{
		bg.Render(fmt.Sprintf("%d", len(m.waitlist.Roster)), styles.AccentText) + bg.Space() +
			bg.Render("waiting", styles.MutedText),
		bg.Render("updated", styles.FaintText) + bg.Space() +
			bg.Render(m.waitlist.FetchedAt.Format("15:04"), styles.MutedText),
	}
	if m.anonymize == prefs.AnonymizePhone {
		parts = append(parts, bg.Render("names: phone", styles.FaintText))
	}
	return parts
}

func (m Model) dashboardStatus(styles Styles, bg BgStyle) []string {
	snap := m.snapshot
	if !snap.HasData {
		if snap.LastError != nil {
			return []string{
				bg.Render("API "+classifyConnectionError(snap.LastError), styles.DangerText.Bold(true)),
				bg.Render("Retrying...", styles.WarningText.Bold(true)),
			}
		}
		return []string{bg.Render("Connecting...", styles.WarningText.Bold(true))}
	}

	metric := func(value, label string) string {
		return bg.Render(value, styles.AccentText) + bg.Space() + bg.Render(label, styles.MutedText)
	}
	parts := []string{}
	if snap.HasMetrics {
		mt := snap.Metrics
		parts = append(parts,
			metric(fmt.Sprintf("%d", mt.TotalCustomers), "waiting"),
			metric(fmt.Sprintf("%.0fm", mt.CurrentWaitTime), "current"),
			metric(fmt.Sprintf("%.0fm", mt.AverageWaitTime), "avg"),
			metric(fmt.Sprintf("%d", mt.CustomersServedToday), "served today"),
		)
	} else {
		parts = append(parts, metric(fmt.Sprintf("%d", countWaiting(snap.Customers)), "waiting"))
	}

	if snap.IsOffline() {
		parts = append(parts, bg.Render("OFFLINE "+classifyConnectionError(snap.LastError), styles.DangerText.Bold(true)))
	} else if snap.LastError != nil {
		parts = append(parts, bg.Render("poll failed", styles.WarningText))
	}
	if m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render("updated", styles.FaintText)+bg.Space()+
			bg.Render(snap.LastUpdated.Format("15:04:05"), styles.MutedText))
	}
	return parts
}

func countWaiting(customers []api.Customer) int {
	n := 0
	for _, c := range customers {
		if c.IsWaiting() {
			n++
		}
	}
	return n
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "PAUSED"
	}
	if api.IsUnauthorized(err) {
		return "SESSION EXPIRED"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.confirmLeave:
		commands = []cmd{{"y", "Leave the line"}, {"any", "Cancel"}}
	case m.confirmRemove:
		commands = []cmd{{"y", "Remove " + truncate(m.removeTarget.FirstName, 16)}, {"any", "Cancel"}}
	case m.searching:
		commands = []cmd{{"enter", "Find"}, {"esc", "Cancel"}}
	case m.currentView == ViewJoin:
		commands = []cmd{{"tab", "Next"}, {"shift+tab", "Prev"}, {"enter", "Join"}, {"esc", "Cancel"}}
	case m.currentView == ViewAssets:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Space", "Status"},
			{"c", "Apply to category"},
			{"a", "Queue"},
			{"r", "Refresh"},
			{"?", "More"},
		}
	case m.currentView == ViewDashboard:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"n", "Notify"},
			{"s", "Served"},
			{"x", "Remove"},
			{"a", "Assets"},
			{"r", "Refresh"},
			{"?", "More"},
		}
	default:
		commands = []cmd{{"/", "Find my spot"}, {"j", "Join"}}
		if m.waitlist.Self != nil {
			commands = append(commands, cmd{"x", "Leave"})
		}
		commands = append(commands,
			cmd{"r", "Refresh"},
			cmd{"a", ternary(m.anonymize == prefs.AnonymizePhone, "Initials", "Phone names")},
			cmd{"?", "More"},
		)
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
