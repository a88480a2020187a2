package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML[T any](w io.Writer, items []T) error {
	enc := yaml.NewEncoder(w)
	if len(items) > 0 {
		if ind := indentOf(items[0]); ind != "" {
			enc.SetIndent(len(ind))
		}
	}
	var err error
	if len(items) == 1 {
		err = enc.Encode(items[0])
	} else {
		if items == nil {
			items = []T{}
		}
		err = enc.Encode(items)
	}
	if err != nil {
		return err
	}
	return enc.Close()
}
