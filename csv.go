package tabular

import (
	"encoding/csv"
	"errors"
	"io"
)

// ReadCSV wraps r as a dataset: the first record becomes the header, read
// eagerly, and data records are pulled lazily on demand. Since r is a
// stream, the returned row sequence is single-use.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	record, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, err
	}
	header := make(Header, len(record))
	for i, field := range record {
		header[i] = field
	}
	rows := func(yield func(Row, error) bool) {
		for {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			row := make(Row, len(record))
			for i, field := range record {
				row[i] = field
			}
			if !yield(row, nil) {
				return
			}
		}
	}
	return &Dataset{Header: header, Rows: rows}, nil
}

// WriteCSV writes d's header and rows to w using the cells' string forms.
func WriteCSV(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)
	record := make([]string, len(d.Header))
	for i, id := range d.Header {
		record[i] = cellString(id)
	}
	if err := cw.Write(record); err != nil {
		return err
	}
	for r, err := range d.Rows {
		if err != nil {
			return err
		}
		record := make([]string, len(r))
		for i, cell := range r {
			record[i] = cellString(cell)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
