// Package tabular is a lazy row/column algebra over header-aligned rows:
// column identifier resolution, bounded and unbounded projection, predicate
// row filtering, positional reshaping (fuse, swap, derive) and wide-to-long
// normalisation. Every operation is a pure transform producing a pull-based
// row sequence; inputs are never mutated, and sequences are restartable
// whenever the underlying source supports re-traversal.
package tabular

import "iter"

// Header is the ordered list of column identifiers for a dataset.
// Identifiers are usually strings or Symbols but may be any comparable
// value; they are expected to be unique within a header.
type Header []any

// Row is an ordered sequence of cells, index-aligned with a header.
type Row []any

// Clone returns a copy of the row sharing no backing storage.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Dataset pairs a header with a lazily produced row sequence. Row width is
// expected to equal header width on every row.
type Dataset struct {
	Header Header
	Rows   iter.Seq2[Row, error]
}

// NewDataset builds a dataset over an in-memory row slice. The resulting
// row sequence is restartable.
func NewDataset(header Header, rows ...Row) *Dataset {
	return &Dataset{Header: header, Rows: RowsOf(rows...)}
}

// RowsOf adapts a materialized row slice into a restartable row sequence.
func RowsOf(rows ...Row) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// CollectRows drains a row sequence into a slice, stopping at the first
// error. The rows collected up to that point are returned alongside it.
func CollectRows(rows iter.Seq2[Row, error]) ([]Row, error) {
	var out []Row
	for r, err := range rows {
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Cell returns row[pos], failing on out-of-range access.
func Cell(row Row, pos int) (any, error) {
	if pos < 0 || pos >= len(row) {
		return nil, ErrCellOutOfRange(pos, len(row))
	}
	return row[pos], nil
}

// RowAt returns the n-th row of the sequence, failing when fewer than n+1
// rows are available or when the source fails first.
func RowAt(rows iter.Seq2[Row, error], n int) (Row, error) {
	if n < 0 {
		return nil, ErrRowOutOfRange(n)
	}
	i := 0
	for r, err := range rows {
		if err != nil {
			return nil, err
		}
		if i == n {
			return r, nil
		}
		i++
	}
	return nil, ErrRowOutOfRange(n)
}

// RowDefault returns the n-th row, or def when the sequence is too short or
// fails. It is the degrading counterpart to RowAt for callers that carry
// their own not-found value.
func RowDefault(rows iter.Seq2[Row, error], n int, def Row) Row {
	r, err := RowAt(rows, n)
	if err != nil {
		return def
	}
	return r
}

func errorRows(err error) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		yield(nil, err)
	}
}
