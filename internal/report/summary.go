package report

import (
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/idsia/crema-analysis/internal/ui/theme"
)

// Summary renders tables side by side as bordered terminal tables, one
// column per metric, with an optional title above them.
func Summary(title string, tables ...Table) string {
	blocks := make([]string, 0, len(tables)+1)
	if title != "" {
		blocks = append(blocks, theme.Title.Render(title))
	}
	for _, t := range tables {
		blocks = append(blocks, renderTable(t))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderTable(t Table) string {
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		cells := make([]string, len(r))
		for j, v := range r {
			cells[j] = strconv.FormatFloat(v, 'f', 4, 64)
		}
		rows[i] = cells
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		}).
		Headers(t.Header...).
		Rows(rows...)

	if t.Name == "" {
		return tbl.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left, theme.Subtitle.Render(t.Name), tbl.String())
}
