package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableOption adjusts how RenderTable lays out columns.
type TableOption func(*tableConfig)

type tableConfig struct {
	rightAlign map[int]bool
}

// AlignRight right-aligns the given zero-based columns, typically numbers.
func AlignRight(cols ...int) TableOption {
	return func(c *tableConfig) {
		for _, col := range cols {
			c.rightAlign[col] = true
		}
	}
}

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible width so styled cells line up.
func RenderTable(headers []string, rows [][]string, opts ...TableOption) string {
	if len(headers) == 0 {
		return ""
	}
	cfg := tableConfig{rightAlign: make(map[int]bool)}
	for _, opt := range opts {
		opt(&cfg)
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	var b strings.Builder

	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			rendered := style(cell)
			last := i == cols-1
			switch {
			case cfg.rightAlign[i]:
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(rendered)
			case last:
				b.WriteString(rendered)
			default:
				b.WriteString(rendered)
				b.WriteString(strings.Repeat(" ", pad))
			}
			if !last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
