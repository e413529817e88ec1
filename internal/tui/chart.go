package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/preflop-trainer/internal/ranges"
	"github.com/lox/preflop-trainer/poker"
)

const chartCellWidth = 5

// RenderChart draws the 13x13 hand chart for pos: pairs on the diagonal,
// suited hands above it and offsuit hands below. Mixed hands show their
// raise percentage.
func RenderChart(table *ranges.Table, pos poker.Position) string {
	var rows []string
	for row := range poker.NumRanks {
		cells := make([]string, 0, poker.NumRanks)
		for col := range poker.NumRanks {
			class := poker.ClassAt(row, col)
			cells = append(cells, chartCell(table, pos, class))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	r := table.Range(pos)
	title := HeaderStyle.Render(fmt.Sprintf("%s (%s)", pos.Name(), pos))
	summary := InfoStyle.Render(fmt.Sprintf("%d classes, %.1f%% of hands", len(r.Classes()), r.Coverage()*100))
	legend := strings.Join([]string{
		ChartRaiseStyle.Render(" raise "),
		ChartMixedStyle.Render(" mixed "),
		ChartFoldStyle.Render(" fold "),
	}, " ")

	return lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+summary,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		legend,
	)
}

func chartCell(table *ranges.Table, pos poker.Position, class poker.HandClass) string {
	label := class.String()
	style := ChartFoldStyle
	switch table.Strategy(pos, class) {
	case ranges.AlwaysRaise:
		style = ChartRaiseStyle
	case ranges.Mixed:
		style = ChartMixedStyle
		label = fmt.Sprintf("%.0f", table.Frequency(pos, class)*100)
	}
	return style.Width(chartCellWidth).Align(lipgloss.Center).Render(label)
}
