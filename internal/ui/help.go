package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

// helpSections lists the bindings that apply to the current mode.
func (m Model) helpSections() []helpSection {
	k := m.keys
	general := helpSection{"General", []key.Binding{k.Refresh, k.CycleTheme, k.Help, k.Escape, k.Quit}}
	if m.mode == ModeDashboard {
		return []helpSection{
			{"Navigation", []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.ToggleAsset}},
			{"Queue", []key.Binding{k.Notify, k.Serve, k.Remove}},
			{"Assets", []key.Binding{k.CycleStatus, k.ApplyAll}},
			general,
		}
	}
	return []helpSection{
		{"Your spot", []key.Binding{k.Search, k.Join, k.Leave, k.Anonymize}},
		{"Join form", []key.Binding{k.NextField, k.PrevField, k.Confirm}},
		general,
	}
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	sections := m.helpSections()
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
