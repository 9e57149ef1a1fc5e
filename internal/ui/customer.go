package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/prefs"
	"github.com/five82/inline/internal/present"
	"github.com/five82/inline/internal/waitlist"
)

// handleCustomerKey processes keys on the customer roster view.
func (m Model) handleCustomerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.controller == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue("")
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Join):
		m.join = newJoinForm()
		m.currentView = ViewJoin
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Leave):
		if m.waitlist.Self != nil {
			m.confirmLeave = true
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, refreshStatusCmd(m.ctx, m.controller)
	case key.Matches(msg, m.keys.Anonymize):
		m.anonymize = ternary(m.anonymize == prefs.AnonymizePhone, prefs.AnonymizeInitial, prefs.AnonymizePhone)
		mode := m.anonymize
		m.savePrefs(func(p *prefs.Prefs) { p.Anonymize = mode })
		return m, nil
	}
	return m, nil
}

// handleSearchKey drives the identifier input.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, searchCmd(m.ctx, m.controller, m.search.Value())
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// renderCustomer renders the self panel beside the anonymized roster.
func (m Model) renderCustomer() string {
	height := m.contentHeight()
	leftWidth, rightWidth := m.splitWidths()
	if m.width < LayoutCompactWidth {
		leftWidth, rightWidth = m.width, 0
	}

	selfPane := m.renderTitledBox("Your spot", m.renderSelf(leftWidth-4), leftWidth, height, true)
	if rightWidth == 0 {
		return selfPane
	}
	title := fmt.Sprintf("Waitlist (%d)", len(m.waitlist.Roster))
	rosterPane := m.renderTitledBox(title, m.renderRoster(rightWidth-2), rightWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, selfPane, rosterPane)
}

func (m Model) renderSelf(width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.paneBg(true))
	var lines []string

	if m.searching {
		lines = append(lines,
			bg.Render("Enter the phone number or email you joined with", styles.MutedText),
			m.search.View(),
			"",
		)
	} else if m.controller != nil && m.controller.Busy(waitlist.ActionSearch) {
		lines = append(lines, bg.Render("Searching...", styles.InfoText), "")
	}

	self := m.waitlist.Self
	if self == nil {
		lines = append(lines,
			bg.Render("You are not tracking a spot yet.", styles.Text),
			"",
			bg.Render("/", styles.AccentText)+bg.Space()+bg.Render("find your position", styles.MutedText),
			bg.Render("j", styles.AccentText)+bg.Space()+bg.Render("join the waitlist", styles.MutedText),
		)
		return strings.Join(lines, "\n")
	}

	badge := present.StatusBadge(self.Status)
	badgeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ToneColor(badge.Tone))).Bold(true)
	name := strings.TrimSpace(self.FullName())
	lines = append(lines,
		bg.Render(truncate(name, width), styles.Text.Bold(true))+bg.Spaces(2)+
			bg.Render(badge.Glyph+" "+badge.Label, badgeStyle),
		"",
	)

	if self.IsWaiting() {
		lines = append(lines,
			bg.Render(fmt.Sprintf("#%d", self.Position), styles.AccentText.Bold(true))+bg.Spaces(2)+
				bg.Render(present.PositionText(self.Position), styles.Text),
		)
	}
	detail := func(label, value string) string {
		return bg.Render(padRight(label, 12), styles.MutedText) + bg.Render(value, styles.Text)
	}
	if party := present.PartyBadge(self.PartySize); party != "" {
		lines = append(lines, detail("Party", party))
	}
	lines = append(lines, detail("Waiting", present.ElapsedWait(self.JoinedAt, m.now)))
	if self.IsWaiting() {
		switch {
		case self.WaitTime > 0:
			lines = append(lines, detail("Estimate", present.EstimatedWait(self.WaitTime)))
		case m.estimated.position == self.Position && m.estimated.minutes > 0:
			lines = append(lines, detail("Estimate", present.EstimatedWait(m.estimated.minutes)))
		}
	}
	if p := strings.TrimSpace(self.Preference); p != "" {
		lines = append(lines, detail("Preference", p))
	}
	if !m.waitlist.SelfInRoster && m.waitlist.Loaded {
		lines = append(lines, "", bg.Render("Not in the latest waitlist. Press r to refresh.", styles.WarningText))
	}
	if m.confirmLeave {
		lines = append(lines, "", bg.Render("Leave the waitlist? Press y to confirm.", styles.DangerText))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRoster(width int) string {
	styles := m.theme.Styles()
	bgColor := m.paneBg(false)
	bg := NewBgStyle(bgColor)

	if !m.waitlist.Loaded {
		return bg.Render("Loading...", styles.MutedText)
	}
	roster := m.waitlist.Roster
	if len(roster) == 0 {
		return bg.Render("No one is waiting", styles.MutedText)
	}

	var selfID int64
	if m.waitlist.Self != nil {
		selfID = m.waitlist.Self.ID
	}

	lines := make([]string, 0, len(roster)+4)
	for _, c := range roster {
		isSelf := selfID != 0 && c.ID == selfID
		lines = append(lines, m.selectableRow(m.rosterRow(c, selfID, width, isSelf), width, bgColor, isSelf))
	}

	lines = append(lines, "", m.rosterSummary(roster, bg, styles))
	return strings.Join(lines, "\n")
}

func (m Model) rosterRow(c api.Customer, selfID int64, width int, isSelf bool) string {
	bgColor := ternary(isSelf, m.theme.SelectionBg, m.paneBg(false))
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	posStyle, nameStyle, metaStyle := styles.MutedText, styles.Text, styles.FaintText
	if isSelf {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		posStyle, nameStyle, metaStyle = sel, sel.Bold(true), sel
	}

	pos := padRight(fmt.Sprintf("#%d", c.Position), 4)
	wait := present.ElapsedWait(c.JoinedAt, m.now)
	meta := wait
	if party := present.PartyBadge(c.PartySize); party != "" {
		meta = party + " · " + wait
	}
	nameWidth := maxInt(width-len(pos)-len([]rune(meta))-3, 6)
	name := padRight(truncate(present.DisplayName(c, selfID, m.anonymize), nameWidth), nameWidth)

	return bg.Render(pos, posStyle) + bg.Space() + bg.Render(name, nameStyle) + bg.Space() + bg.Render(meta, metaStyle)
}

func (m Model) rosterSummary(roster []api.Customer, bg BgStyle, styles Styles) string {
	parts := []string{
		fmt.Sprintf("%d people", present.TotalPeople(roster)),
		fmt.Sprintf("largest party %d", present.LargestParty(roster)),
	}
	for i, p := range present.PreferenceTally(roster) {
		if i == 3 {
			break
		}
		parts = append(parts, fmt.Sprintf("%s %d", p.Preference, p.Count))
	}
	return bg.Render(strings.Join(parts, " · "), styles.FaintText)
}
