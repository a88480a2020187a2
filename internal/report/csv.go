package report

import (
	"encoding/csv"
	"io"
)

// writeDelimited renders CSV or, with a tab comma, TSV. Quoting follows
// encoding/csv so cells holding the delimiter survive a round trip.
func writeDelimited[T any](w io.Writer, items []T, comma rune) error {
	if len(items) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if h, ok := any(items[0]).(Headed); ok {
		if err := cw.Write(h.Header()); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(rows(items)); err != nil {
		return err
	}
	return cw.Error()
}
