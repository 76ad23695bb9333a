package report

import (
	"fmt"

	"netcoverage-sim/internal/experiment"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// Table renders the sweep cells as a bordered terminal table.
func Table(sweep experiment.Sweep) string {
	rows := make([][]string, 0, len(sweep.Cells))
	for _, c := range sweep.Cells {
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.NodeCount),
			fmt.Sprintf("%.0f", c.MeanRadius),
			fmt.Sprintf("%.3f", c.AvgComponents),
			fmt.Sprintf("%.3f", c.StdComponents),
			fmt.Sprintf("%.2f", c.AvgCoveragePercent),
			fmt.Sprintf("%.2f", c.StdCoveragePercent),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("n", "r", "components", "± comp", "coverage %", "± cov").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}
