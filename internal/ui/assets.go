package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/assets"
	"github.com/five82/inline/internal/present"
)

const assetFailureText = "Failed to update asset"

// flatAssets lists assets in display order: grouped by category.
func (m Model) flatAssets() []api.Asset {
	var out []api.Asset
	for _, g := range assets.GroupByCategory(m.snapshot.Assets) {
		out = append(out, g.Assets...)
	}
	return out
}

func (m Model) selectedAssetItem() (api.Asset, bool) {
	all := m.flatAssets()
	if len(all) == 0 || m.selectedAsset < 0 || m.selectedAsset >= len(all) {
		return api.Asset{}, false
	}
	return all[m.selectedAsset], true
}

// nextAssetStatus cycles available → occupied → maintenance → reserved.
func nextAssetStatus(current api.AssetStatus) api.AssetStatus {
	for i, s := range api.AssetStatuses {
		if s == current {
			return api.AssetStatuses[(i+1)%len(api.AssetStatuses)]
		}
	}
	return api.AssetAvailable
}

// handleAssetsKey processes keys on the assets view.
func (m Model) handleAssetsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.flatAssets())
	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectedAsset = clamp(m.selectedAsset+1, count)
	case key.Matches(msg, m.keys.Up):
		m.selectedAsset = clamp(m.selectedAsset-1, count)
	case key.Matches(msg, m.keys.Top):
		m.selectedAsset = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedAsset = clamp(count-1, count)
	case key.Matches(msg, m.keys.CycleStatus):
		a, ok := m.selectedAssetItem()
		if !ok || m.assets == nil {
			return m, nil
		}
		svc := m.assets
		next := nextAssetStatus(a.Status)
		return m, m.assetCmd(func(ctx context.Context) (string, error) {
			if _, err := svc.Update(ctx, a.ID, api.AssetUpdateRequest{Status: &next}); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s is now %s", present.AssetName(a), next), nil
		})
	case key.Matches(msg, m.keys.ApplyAll):
		a, ok := m.selectedAssetItem()
		if !ok || m.assets == nil {
			return m, nil
		}
		svc, all := m.assets, m.snapshot.Assets
		return m, m.assetCmd(func(ctx context.Context) (string, error) {
			n, err := svc.ApplyToCategory(ctx, a, all)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Updated %d assets in %s", n, categoryLabel(a.Category)), nil
		})
	}
	return m, nil
}

func categoryLabel(category string) string {
	if c := strings.TrimSpace(category); c != "" {
		return c
	}
	return "Uncategorized"
}

// renderAssets renders assets grouped by category beside a capacity summary.
func (m Model) renderAssets() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	if !m.snapshot.HasAssets {
		msg := styles.MutedText.Render("No assets loaded")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	leftWidth, rightWidth := m.splitWidths()
	title := fmt.Sprintf("Assets (%d)", len(m.snapshot.Assets))
	list := m.renderTitledBox(title, m.renderAssetList(leftWidth-2), leftWidth, height, true)
	summary := m.renderTitledBox("Capacity", m.renderCapacity(rightWidth-4), rightWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, summary)
}

func (m Model) renderAssetList(width int) string {
	styles := m.theme.Styles()
	bgColor := m.paneBg(true)
	bg := NewBgStyle(bgColor)

	var lines []string
	idx := 0
	for _, g := range assets.GroupByCategory(m.snapshot.Assets) {
		lines = append(lines, bg.Render(fmt.Sprintf("%s · %d seats", g.Category, g.Capacity), styles.AccentText.Bold(true)))
		for _, a := range g.Assets {
			selected := idx == m.selectedAsset
			lines = append(lines, m.selectableRow(m.assetRow(a, width, bgColor, selected), width, bgColor, selected))
			idx++
		}
	}
	if len(lines) == 0 {
		return bg.Render("No assets yet. Add them with `inline assets add`.", styles.MutedText)
	}
	return strings.Join(lines, "\n")
}

func (m Model) assetRow(a api.Asset, width int, bgColor string, selected bool) string {
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	nameStyle, metaStyle := styles.Text, styles.MutedText
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, metaStyle = sel, sel
	}
	status := m.theme.Styles().StatusStyle(string(a.Status)).Render(titleCase(string(a.Status)))
	meta := fmt.Sprintf("%d seats", a.Capacity)
	nameWidth := maxInt(width-len(meta)-lipgloss.Width(status)-5, 6)

	return bg.Spaces(2) + bg.Render(padRight(truncate(present.AssetName(a), nameWidth), nameWidth), nameStyle) +
		bg.Space() + bg.Render(meta, metaStyle) + bg.Space() + status
}

func (m Model) renderCapacity(width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.paneBg(false))
	sum := assets.Summarize(m.snapshot.Assets)
	row := func(label string, value int, status api.AssetStatus) string {
		color := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusColor(string(status))))
		return bg.Render(padRight(label, 14), styles.MutedText) + bg.Render(fmt.Sprintf("%d", value), color)
	}

	lines := []string{
		bg.Render(padRight("Total", 14), styles.MutedText) + bg.Render(fmt.Sprintf("%d", sum.TotalCapacity), styles.Text.Bold(true)),
		row("Available", sum.AvailableCapacity, api.AssetAvailable),
		row("Occupied", sum.OccupiedCapacity, api.AssetOccupied),
		row("Maintenance", sum.MaintenanceCapacity, api.AssetMaintenance),
	}

	if a, ok := m.selectedAssetItem(); ok {
		lines = append(lines, "",
			bg.Render(truncate(present.AssetName(a), width), styles.Text.Bold(true)),
			bg.Render(padRight("Category", 14), styles.MutedText)+bg.Render(categoryLabel(a.Category), styles.Text),
			bg.Render(padRight("Type", 14), styles.MutedText)+bg.Render(ternary(a.Type == "", "-", a.Type), styles.Text),
			bg.Render(padRight("Capacity", 14), styles.MutedText)+bg.Render(fmt.Sprintf("%d", a.Capacity), styles.Text),
		)
		if d := strings.TrimSpace(a.Description); d != "" {
			lines = append(lines, bg.Render(truncate(d, width), styles.FaintText))
		}
	}
	return strings.Join(lines, "\n")
}
