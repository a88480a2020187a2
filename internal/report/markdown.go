package report

import (
	"io"
	"strings"
)

// writeMarkdown renders a GitHub-flavoured table. Pipes inside cells are
// escaped and columns are at least three wide to hold the alignment row.
func writeMarkdown[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	if _, ok := any(items[0]).(Headed); !ok {
		return missing(Markdown, "Headed", items[0])
	}
	g := newGrid(items)
	g.header = escaped(g.header)
	for i, row := range g.rows {
		g.rows[i] = escaped(row)
	}
	for i := range g.widths {
		g.widths[i] = 3
	}
	g.measure(g.header)
	for _, row := range g.rows {
		g.measure(row)
	}

	var sb strings.Builder
	line := func(cells []string) {
		parts := make([]string, len(g.widths))
		for i, width := range g.widths {
			parts[i] = alignCell(cell(cells, i), width, g.aligns[i])
		}
		sb.WriteString("| " + strings.Join(parts, " | ") + " |\n")
	}
	line(g.header)
	rule := make([]string, len(g.widths))
	for i, width := range g.widths {
		switch g.aligns[i] {
		case AlignRight:
			rule[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			rule[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			rule[i] = strings.Repeat("-", width)
		}
	}
	line(rule)
	for _, row := range g.rows {
		line(row)
	}
	if g.caption != "" {
		sb.WriteString("\n" + g.caption + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func escaped(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}
