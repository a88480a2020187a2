package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingInterface  = errors.New("missing required interface")
	ErrUnsupportedBorder = errors.New("unsupported border")
)

// Format is an output format.
type Format string

const (
	Table    Format = "table"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	Plain    Format = "plain"
)

var formats = []Format{Table, Markdown, CSV, TSV, JSON, JSONL, YAML, Plain}

func (f Format) String() string { return string(f) }

// Formats returns every supported format.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// tabular reports whether f lays items out as rows and so needs [Rower].
func (f Format) tabular() bool {
	switch f {
	case Table, Markdown, CSV, TSV:
		return true
	}
	return false
}

// Rower provides the cells of one row. Required by the tabular formats.
type Rower interface {
	Row() []string
}

// Headed provides column headers. Markdown requires it.
type Headed interface {
	Header() []string
}

// Titled renders a title above a bordered table.
type Titled interface {
	Title() string
}

// Captioned renders a line below a table.
type Captioned interface {
	Caption() string
}

// Bordered selects the table border. Default: BorderRounded.
type Bordered interface {
	Border() BorderStyle
}

// Aligned sets per-column alignment for Table and Markdown.
type Aligned interface {
	Alignments() []Alignment
}

// Indented sets the JSON and YAML indent. Without it JSON is compact.
type Indented interface {
	Indent() string
}

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[string]BorderStyle{
	"rounded": BorderRounded,
	"none":    BorderNone,
	"ascii":   BorderASCII,
	"heavy":   BorderHeavy,
	"double":  BorderDouble,
}

// ParseBorder parses a border name: rounded, none, ascii, heavy or double.
func ParseBorder(s string) (BorderStyle, error) {
	if b, ok := borderNames[s]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedBorder, s)
}

// Layout is the presentation a caller picks at run time for rows that
// carry it. The zero value is a rounded table and compact JSON.
type Layout struct {
	Border BorderStyle
	Indent string
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Write renders items in format f to w.
func Write[T any](w io.Writer, f Format, items ...T) error {
	if f.tabular() && len(items) > 0 {
		if _, ok := any(items[0]).(Rower); !ok {
			return missing(f, "Rower", items[0])
		}
	}
	switch f {
	case Table:
		return writeTable(w, items)
	case Markdown:
		return writeMarkdown(w, items)
	case CSV:
		return writeDelimited(w, items, ',')
	case TSV:
		return writeDelimited(w, items, '\t')
	case JSON:
		return writeJSON(w, items)
	case JSONL:
		return writeJSONL(w, items)
	case YAML:
		return writeYAML(w, items)
	case Plain:
		return writePlain(w, items)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Marshal renders items in format f and returns the bytes.
func Marshal[T any](f Format, items ...T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, items...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func missing(f Format, iface string, item any) error {
	return fmt.Errorf("%w: format %q requires %s, not implemented by %T", ErrMissingInterface, f, iface, item)
}

// rows collects the cells of every item.
func rows[T any](items []T) [][]string {
	out := make([][]string, len(items))
	for i, item := range items {
		out[i] = any(item).(Rower).Row()
	}
	return out
}
