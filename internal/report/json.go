package report

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func indentOf(item any) string {
	if ind, ok := item.(Indented); ok {
		return ind.Indent()
	}
	return ""
}

// writeJSON writes a single item as an object and several as an array.
func writeJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	if len(items) > 0 {
		if ind := indentOf(items[0]); ind != "" {
			enc.SetIndent("", ind)
		}
	}
	if len(items) == 1 {
		return enc.Encode(items[0])
	}
	if items == nil {
		items = []T{}
	}
	return enc.Encode(items)
}

func writeJSONL[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}
