package report

import (
	"iter"
	"strconv"
	"strings"

	"github.com/bjaus/cfmt"
)

// DirectiveRow describes one directive of a format string.
type DirectiveRow struct {
	Offset    int    `json:"offset" yaml:"offset"`
	Text      string `json:"text" yaml:"text"`
	Canonical string `json:"canonical" yaml:"canonical"`
	Flags     string `json:"flags,omitempty" yaml:"flags,omitempty"`
	Width     string `json:"width,omitempty" yaml:"width,omitempty"`
	Precision string `json:"precision,omitempty" yaml:"precision,omitempty"`
	Length    string `json:"length,omitempty" yaml:"length,omitempty"`
	Verb      string `json:"verb" yaml:"verb"`
	Reads     string `json:"reads,omitempty" yaml:"reads,omitempty"`

	layout  Layout
	caption string
}

// NewDirectiveRow describes d.
func NewDirectiveRow(d cfmt.Directive) DirectiveRow {
	sp := d.Spec
	canon := sp.String()
	kinds := sp.Args()
	reads := make([]string, len(kinds))
	for i, k := range kinds {
		reads[i] = k.String()
	}

	// The canonical form is '%', flags, then width.
	flags := canon[1:]
	flags = flags[:strings.IndexFunc(flags, func(r rune) bool { return !strings.ContainsRune("-+ #0", r) })]

	return DirectiveRow{
		Offset:    d.Offset,
		Text:      d.Text,
		Canonical: canon,
		Flags:     flags,
		Width:     argText(sp.Width, sp.WidthMode),
		Precision: argText(sp.Precision, sp.PrecisionMode),
		Length:    sp.Length.String(),
		Verb:      string(sp.Verb),
		Reads:     strings.Join(reads, ", "),
	}
}

func argText(v int, m cfmt.ArgMode) string {
	switch m {
	case cfmt.ArgStar:
		return "*"
	case cfmt.ArgLiteral:
		return strconv.Itoa(v)
	}
	return ""
}

func (r DirectiveRow) Row() []string {
	return []string{strconv.Itoa(r.Offset), r.Text, r.Canonical, r.Flags, r.Width, r.Precision, r.Length, r.Verb, r.Reads}
}

func (DirectiveRow) Header() []string {
	return []string{"Offset", "Text", "Canonical", "Flags", "Width", "Precision", "Length", "Verb", "Reads"}
}

func (DirectiveRow) Title() string { return "Directives" }

func (DirectiveRow) Alignments() []Alignment {
	return []Alignment{AlignRight, AlignLeft, AlignLeft, AlignCenter, AlignRight, AlignRight, AlignCenter, AlignCenter, AlignLeft}
}

func (r DirectiveRow) Caption() string     { return r.caption }
func (r DirectiveRow) Border() BorderStyle { return r.layout.Border }
func (r DirectiveRow) Indent() string      { return r.layout.Indent }

// Explain yields a row per directive of format. A malformed directive
// ends the sequence with its error.
func Explain(format string) iter.Seq2[DirectiveRow, error] {
	return func(yield func(DirectiveRow, error) bool) {
		for d, err := range cfmt.Directives(format) {
			if err != nil {
				yield(DirectiveRow{}, err)
				return
			}
			if !yield(NewDirectiveRow(d), nil) {
				return
			}
		}
	}
}

// ExplainWith is [Explain] with every row laid out by l and captioned
// with the number of well-formed directives.
func ExplainWith(format string, l Layout) iter.Seq2[DirectiveRow, error] {
	n := 0
	for _, err := range cfmt.Directives(format) {
		if err != nil {
			break
		}
		n++
	}
	caption := cfmt.Sprintf("%d directives", n)
	if n == 1 {
		caption = "1 directive"
	}
	return func(yield func(DirectiveRow, error) bool) {
		for row, err := range Explain(format) {
			row.layout, row.caption = l, caption
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// FeatureRow is one entry of the build configuration.
type FeatureRow struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`

	layout Layout
}

// FeatureRows flattens c in declaration order, laid out by l.
func FeatureRows(c cfmt.Config, l Layout) []FeatureRow {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	rows := []FeatureRow{
		{Name: "field width", Value: onOff(c.FieldWidth)},
		{Name: "precision", Value: onOff(c.Precision)},
		{Name: "float", Value: onOff(c.Float)},
		{Name: "small modifiers", Value: onOff(c.SmallModifiers)},
		{Name: "large modifiers", Value: onOff(c.LargeModifiers)},
		{Name: "binary", Value: onOff(c.Binary)},
		{Name: "writeback", Value: onOff(c.Writeback)},
		{Name: "alt form", Value: onOff(c.AltForm)},
		{Name: "safe empty", Value: onOff(c.SafeEmpty)},
		{Name: "conversion buffer", Value: cfmt.Sprintf("%d bytes", c.ConversionBufferSize)},
		{Name: "limb", Value: cfmt.Sprintf("%d bits", c.LimbBits)},
	}
	for i := range rows {
		rows[i].layout = l
	}
	return rows
}

func (r FeatureRow) Row() []string       { return []string{r.Name, r.Value} }
func (FeatureRow) Header() []string      { return []string{"Feature", "Value"} }
func (FeatureRow) Title() string         { return "Build features" }
func (r FeatureRow) Border() BorderStyle { return r.layout.Border }
func (r FeatureRow) Indent() string      { return r.layout.Indent }
