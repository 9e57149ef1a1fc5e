package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/inline/internal/validation"
	"github.com/five82/inline/internal/waitlist"
)

// joinField describes one input of the join form. name matches the field
// names reported by validation.
type joinField struct {
	name        string
	label       string
	placeholder string
	limit       int
}

var joinFields = []joinField{
	{"firstName", "First name", "required", 50},
	{"lastName", "Last name", "optional", 50},
	{"phone", "Phone", "phone or email required", 20},
	{"email", "Email", "phone or email required", 120},
	{"partySize", "Party size", "1", 2},
	{"preference", "Preference", "e.g. Patio, Booth", 50},
}

const partySizeField = 4

type joinForm struct {
	inputs    []textinput.Model
	focus     int
	errs      *validation.Error
	submitErr string
}

func newJoinForm() joinForm {
	inputs := make([]textinput.Model, len(joinFields))
	for i, f := range joinFields {
		in := textinput.New()
		in.Placeholder = f.placeholder
		in.CharLimit = f.limit
		in.Prompt = ""
		inputs[i] = in
	}
	inputs[partySizeField].SetValue("1")
	inputs[0].Focus()
	return joinForm{inputs: inputs}
}

// form reads the inputs. A party size that is not a number becomes 0 and
// fails validation.
func (f joinForm) form() waitlist.JoinForm {
	value := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }
	size, err := strconv.Atoi(value(partySizeField))
	if err != nil {
		size = 0
	}
	return waitlist.JoinForm{
		FirstName:  value(0),
		LastName:   value(1),
		Phone:      value(2),
		Email:      value(3),
		PartySize:  size,
		Preference: value(5),
	}
}

func (f *joinForm) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *joinForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// handleJoinKey drives the join form.
func (m Model) handleJoinKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.join = newJoinForm()
		m.currentView = ViewRoster
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.join.move(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.join.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.controller == nil || m.controller.Busy(waitlist.ActionJoin) {
			return m, nil
		}
		m.join.errs = nil
		m.join.submitErr = ""
		return m, joinCmd(m.ctx, m.controller, m.join.form())
	}
	return m, m.join.update(msg)
}

// renderJoin renders the join form in a centered box.
func (m Model) renderJoin() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	width := minInt(m.width, 64)
	bgColor := m.paneBg(true)
	bg := NewBgStyle(bgColor)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted)).Width(12)
	focusLabel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Bold(true).Width(12)

	var lines []string
	lines = append(lines, bg.Render("Join "+m.vendorLabel()+"'s waitlist", styles.Text.Bold(true)), "")
	for i, f := range joinFields {
		label := labelStyle
		if i == m.join.focus {
			label = focusLabel
		}
		lines = append(lines, label.Background(lipgloss.Color(bgColor)).Render(f.label)+bg.Space()+m.join.inputs[i].View())
		if msg := m.join.errs.For(f.name); msg != "" {
			lines = append(lines, bg.Spaces(13)+bg.Render(msg, styles.DangerText))
		}
	}
	if msg := m.join.errs.For("contact"); msg != "" {
		lines = append(lines, "", bg.Render(msg, styles.DangerText))
	}
	if m.join.submitErr != "" {
		lines = append(lines, "", bg.Render(m.join.submitErr, styles.DangerText))
	}
	if m.controller != nil && m.controller.Busy(waitlist.ActionJoin) {
		lines = append(lines, "", bg.Render("Joining...", styles.InfoText))
	}

	box := m.renderTitledBox("Join the line", strings.Join(lines, "\n"), width, minInt(height, len(lines)+4), true)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, box)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
