package report

import (
	"encoding/csv"
	"io"
	"iter"
)

// WriteSeq renders items from seq as they arrive. JSONL, CSV, TSV and
// Plain write each item immediately; the other formats need every item for
// layout and collect first. An error from seq stops the output and is
// returned.
func WriteSeq[T any](w io.Writer, f Format, seq iter.Seq2[T, error]) error {
	switch f {
	case JSONL:
		enc := json.NewEncoder(w)
		return each(seq, func(item T) error { return enc.Encode(item) })
	case CSV, TSV:
		return streamDelimited(w, f, seq)
	case Plain:
		return each(seq, func(item T) error { return writePlain(w, []T{item}) })
	}
	var items []T
	if err := each(seq, func(item T) error {
		items = append(items, item)
		return nil
	}); err != nil {
		return err
	}
	return Write(w, f, items...)
}

func each[T any](seq iter.Seq2[T, error], fn func(T) error) error {
	for item, err := range seq {
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

func streamDelimited[T any](w io.Writer, f Format, seq iter.Seq2[T, error]) error {
	cw := csv.NewWriter(w)
	if f == TSV {
		cw.Comma = '\t'
	}
	first := true
	err := each(seq, func(item T) error {
		r, ok := any(item).(Rower)
		if !ok {
			return missing(f, "Rower", item)
		}
		if first {
			first = false
			if h, ok := any(item).(Headed); ok {
				if err := cw.Write(h.Header()); err != nil {
					return err
				}
			}
		}
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	})
	cw.Flush()
	if err != nil {
		return err
	}
	return cw.Error()
}
