package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/present"
)

// handleDashboardKey processes keys for the vendor views.
func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleAsset):
		m.currentView = ternaryView(m.currentView == ViewAssets, ViewDashboard, ViewAssets)
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		if m.refresh != nil && m.store != nil {
			return m, refreshDashboardCmd(m.ctx, m.refresh, m.store)
		}
		return m, nil
	}

	if m.currentView == ViewAssets {
		return m.handleAssetsKey(msg)
	}

	count := len(m.snapshot.Customers)
	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectedRow = clamp(m.selectedRow+1, count)
	case key.Matches(msg, m.keys.Up):
		m.selectedRow = clamp(m.selectedRow-1, count)
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = clamp(count-1, count)
	case key.Matches(msg, m.keys.Notify):
		if c, ok := m.selectedCustomer(); ok && m.desk != nil {
			return m, m.deskCmd(m.desk.Notify, c)
		}
	case key.Matches(msg, m.keys.Serve):
		if c, ok := m.selectedCustomer(); ok && m.desk != nil {
			return m, m.deskCmd(m.desk.Serve, c)
		}
	case key.Matches(msg, m.keys.Remove):
		if c, ok := m.selectedCustomer(); ok {
			m.confirmRemove = true
			m.removeTarget = c
		}
	}
	return m, nil
}

func ternaryView(cond bool, a, b View) View {
	if cond {
		return a
	}
	return b
}

// selectedCustomer returns the highlighted dashboard row.
func (m Model) selectedCustomer() (api.Customer, bool) {
	customers := m.snapshot.Customers
	if len(customers) == 0 || m.selectedRow < 0 || m.selectedRow >= len(customers) {
		return api.Customer{}, false
	}
	return customers[m.selectedRow], true
}

// currentCustomer finds id in the freshest data available: the store when
// the poller feeds one, else the last delivered snapshot.
func (m Model) currentCustomer(id int64) (api.Customer, bool) {
	if id == 0 {
		return api.Customer{}, false
	}
	if m.store != nil {
		return m.store.Customer(id)
	}
	for _, c := range m.snapshot.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return api.Customer{}, false
}

// renderDashboard renders every customer beside the selected one's details.
func (m Model) renderDashboard() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	if !m.snapshot.HasData {
		msg := styles.MutedText.Render("Waiting for the first poll...")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	leftWidth, rightWidth := m.splitWidths()
	title := fmt.Sprintf("Queue (%d)", len(m.snapshot.Customers))
	list := m.renderTitledBox(title, m.renderCustomerTable(leftWidth-2), leftWidth, height, true)
	detail := m.renderTitledBox("Details", m.renderCustomerDetail(rightWidth-4), rightWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) renderCustomerTable(width int) string {
	bgColor := m.paneBg(true)
	customers := m.snapshot.Customers
	if len(customers) == 0 {
		return NewBgStyle(bgColor).Render("No customers in line", m.theme.Styles().MutedText)
	}
	lines := make([]string, 0, len(customers))
	for i, c := range customers {
		selected := i == m.selectedRow
		lines = append(lines, m.selectableRow(m.customerRow(c, width, bgColor, selected), width, bgColor, selected))
	}
	return strings.Join(lines, "\n")
}

// customerRow formats "#pos Name · Party of N   ◷ Waiting".
func (m Model) customerRow(c api.Customer, width int, bgColor string, selected bool) string {
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	badge := present.StatusBadge(c.Status)
	statusText := badge.Glyph + " " + badge.Label
	pos := "  - "
	if c.IsWaiting() {
		pos = padRight(fmt.Sprintf("#%d", c.Position), 4)
	}

	var posStyle, nameStyle, statusStyle lipgloss.Style
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		posStyle, nameStyle, statusStyle = sel, sel, sel
	} else {
		posStyle = styles.MutedText
		nameStyle = styles.Text
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusColor(string(c.Status.Normalize()))))
	}

	name := c.FullName()
	if party := present.PartyBadge(c.PartySize); party != "" {
		name += " · " + party
	}
	nameWidth := maxInt(width-len(pos)-len([]rune(statusText))-3, 8)
	name = padRight(truncate(name, nameWidth), nameWidth)

	return bg.Render(pos, posStyle) + bg.Space() + bg.Render(name, nameStyle) + bg.Space() + bg.Render(statusText, statusStyle)
}

func (m Model) renderCustomerDetail(width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.paneBg(false))
	row := func(label, value string) string {
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		return bg.Render(padRight(label, 12), styles.MutedText) + bg.Render(truncate(value, maxInt(width-12, 8)), styles.Text)
	}

	var lines []string
	if c, ok := m.selectedCustomer(); ok {
		badge := present.StatusBadge(c.Status)
		lines = append(lines,
			bg.Render(truncate(c.FullName(), width), styles.Text.Bold(true)),
			bg.Render(badge.Glyph+" "+badge.Label, lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ToneColor(badge.Tone)))),
			"",
			row("Phone", c.Phone),
			row("Email", c.Email),
			row("Party", fmt.Sprintf("%d", c.PartySize)),
			row("Preference", c.Preference),
			row("Waiting", present.ElapsedWait(c.JoinedAt, m.now)),
		)
		if c.IsWaiting() {
			lines = append(lines, row("Position", fmt.Sprintf("#%d", c.Position)))
			if c.WaitTime > 0 {
				lines = append(lines, row("Estimate", present.EstimatedWait(c.WaitTime)))
			}
		}
		if c.NotifiedAt != nil {
			lines = append(lines, row("Notified", c.NotifiedAt.Local().Format("15:04")))
		}
		if c.ServedAt != nil {
			lines = append(lines, row("Served", c.ServedAt.Local().Format("15:04")))
		}
	} else {
		lines = append(lines, bg.Render("Select a customer", styles.MutedText))
	}
	if m.confirmRemove {
		lines = append(lines, "", bg.Render("Remove "+m.removeTarget.FirstName+"? Press y to confirm.", styles.DangerText))
	}

	waiting := make([]api.Customer, 0, len(m.snapshot.Customers))
	for _, c := range m.snapshot.Customers {
		if c.IsWaiting() {
			waiting = append(waiting, c)
		}
	}
	lines = append(lines, "",
		bg.Render("Today", styles.AccentText.Bold(true)),
		row("People", fmt.Sprintf("%d waiting in %d parties", present.TotalPeople(waiting), len(waiting))),
		row("Largest", fmt.Sprintf("%d", present.LargestParty(waiting))),
	)
	if m.snapshot.HasMetrics && len(m.snapshot.Metrics.PeakHours) > 0 {
		lines = append(lines, row("Peak hours", strings.Join(m.snapshot.Metrics.PeakHours, ", ")))
	}
	if m.joinURL != "" {
		lines = append(lines, "", row("Join link", m.joinURL))
	}
	return strings.Join(lines, "\n")
}
