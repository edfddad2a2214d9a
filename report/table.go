package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	keyStyle    = labelStyle.Padding(0, 1)
)

func bordered(style table.StyleFunc) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(style)
}

// numericTable has a left-aligned date or label column followed by right-aligned numbers.
func numericTable(headers ...string) *table.Table {
	return bordered(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 0:
			return cellStyle
		}
		return numberStyle
	}).Headers(headers...)
}

// textTable aligns every column left.
func textTable(headers ...string) *table.Table {
	return bordered(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	}).Headers(headers...)
}

// keyValueTable renders label/value pairs without a header.
func keyValueTable() *table.Table {
	return bordered(func(_, col int) lipgloss.Style {
		if col == 0 {
			return keyStyle
		}
		return cellStyle
	})
}

// writeTable renders t on its own lines. An empty table writes nothing.
func writeTable(w io.Writer, t *table.Table) error {
	out := t.String()
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
