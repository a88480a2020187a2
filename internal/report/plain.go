package report

import (
	"fmt"
	"io"
	"strings"
)

// writePlain writes one line per item: its String form, its cells joined
// by single spaces, or its default Go rendering.
func writePlain[T any](w io.Writer, items []T) error {
	for _, item := range items {
		var line string
		switch v := any(item).(type) {
		case fmt.Stringer:
			line = v.String()
		case Rower:
			line = strings.Join(v.Row(), " ")
		default:
			line = fmt.Sprintf("%v", item)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
