package report

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// grid is a table laid out for rendering: every row has one cell per
// column and widths are display columns, not bytes.
type grid struct {
	title   string
	caption string
	header  []string
	rows    [][]string
	widths  []int
	aligns  []Alignment
	border  BorderStyle
}

func newGrid[T any](items []T) *grid {
	first := any(items[0])
	g := &grid{rows: rows(items)}
	if h, ok := first.(Headed); ok {
		g.header = h.Header()
	}
	if t, ok := first.(Titled); ok {
		g.title = t.Title()
	}
	if c, ok := first.(Captioned); ok {
		g.caption = c.Caption()
	}
	if b, ok := first.(Bordered); ok {
		g.border = b.Border()
	}

	n := len(g.header)
	for _, row := range g.rows {
		n = max(n, len(row))
	}
	g.widths = make([]int, n)
	g.measure(g.header)
	for _, row := range g.rows {
		g.measure(row)
	}

	g.aligns = make([]Alignment, n)
	if a, ok := first.(Aligned); ok {
		copy(g.aligns, a.Alignments())
	}
	return g
}

func (g *grid) measure(cells []string) {
	for i, c := range cells {
		g.widths[i] = max(g.widths[i], runewidth.StringWidth(c))
	}
}

// innerWidth is the width between the outer borders: each cell plus one
// space either side, and one separator between cells.
func (g *grid) innerWidth() int {
	n := max(len(g.widths)-1, 0)
	for _, w := range g.widths {
		n += w + 2
	}
	return n
}

func writeTable[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	g := newGrid(items)
	var sb strings.Builder
	if g.border == BorderNone {
		g.renderPlain(&sb)
	} else {
		g.renderBordered(&sb, borderSets[g.border])
	}
	if g.caption != "" {
		sb.WriteString(g.caption)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (g *grid) renderPlain(sb *strings.Builder) {
	line := func(cells []string) {
		parts := make([]string, len(g.widths))
		for i, width := range g.widths {
			parts[i] = alignCell(cell(cells, i), width, g.aligns[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		sb.WriteByte('\n')
	}
	if len(g.header) > 0 {
		line(g.header)
		rule := make([]string, len(g.widths))
		for i, width := range g.widths {
			rule[i] = strings.Repeat("-", width)
		}
		line(rule)
	}
	for _, row := range g.rows {
		line(row)
	}
}

func (g *grid) renderBordered(sb *strings.Builder, bc borderChars) {
	hline := func(left, mid, right string) {
		sb.WriteString(left)
		for i, width := range g.widths {
			if i > 0 {
				sb.WriteString(mid)
			}
			sb.WriteString(strings.Repeat(bc.horizontal, width+2))
		}
		sb.WriteString(right)
		sb.WriteByte('\n')
	}
	line := func(cells []string) {
		sb.WriteString(bc.vertical)
		for i, width := range g.widths {
			if i > 0 {
				sb.WriteString(bc.vertical)
			}
			sb.WriteByte(' ')
			sb.WriteString(alignCell(cell(cells, i), width, g.aligns[i]))
			sb.WriteByte(' ')
		}
		sb.WriteString(bc.vertical)
		sb.WriteByte('\n')
	}

	if g.title != "" {
		hline(bc.topLeft, bc.horizontal, bc.topRight)
		sb.WriteString(bc.vertical + " ")
		sb.WriteString(alignCell(g.title, g.innerWidth()-2, AlignCenter))
		sb.WriteString(" " + bc.vertical + "\n")
		hline(bc.leftTee, bc.topTee, bc.rightTee)
	} else {
		hline(bc.topLeft, bc.topTee, bc.topRight)
	}
	if len(g.header) > 0 {
		line(g.header)
		hline(bc.leftTee, bc.cross, bc.rightTee)
	}
	for _, row := range g.rows {
		line(row)
	}
	hline(bc.bottomLeft, bc.bottomTee, bc.bottomRight)
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

// alignCell pads s to width display columns.
func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	}
	return s + strings.Repeat(" ", pad)
}
