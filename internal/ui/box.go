package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderTitledBox draws content inside a frame with the title set into the
// top border: ┌─── Title ───┐. Focused boxes use the focus border and
// background. Content is clipped or padded to exactly height rows.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := maxInt(width-2, 0)
	title = truncate(title, maxInt(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := maxInt((innerWidth-titleLen-2)/2, 0)
	rightPad := maxInt(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	lineStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColor))
	lines := strings.Split(content, "\n")
	rows := make([]string, 0, maxInt(height-2, 0))
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, bg.Render("│", borderStyle)+lineStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return top + "\n" + strings.Join(rows, "\n") + "\n" + bottom
}

// splitWidths divides the terminal between a list pane and a detail pane.
func (m Model) splitWidths() (left, right int) {
	if m.width >= LayoutExtraWideWidth {
		left = m.width * 55 / 100
	} else {
		left = m.width * 50 / 100
	}
	return left, m.width - left
}

// contentHeight is the rows left after the header and command bar.
func (m Model) contentHeight() int {
	return maxInt(m.height-chromeHeight, 3)
}

// paneBg is the background inside a titled box.
func (m Model) paneBg(focused bool) string {
	return ternary(focused, m.theme.FocusBg, m.theme.SurfaceAlt)
}

// selectableRow renders one list row, highlighting it when selected.
func (m Model) selectableRow(content string, width int, bgColor string, selected bool) string {
	if selected {
		bgColor = m.theme.SelectionBg
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Width(width).
		MaxWidth(width).
		Render(content)
}
