package tabular

import (
	"iter"
	"slices"
)

// CellFunc transforms a single cell value.
type CellFunc func(any) (any, error)

// CombineFunc merges the cells gathered by Fuse into one value. It must
// accept exactly as many cells as Fuse was given column positions; a
// combiner that rejects its argument count fails the pull that invoked it.
type CombineFunc func(cells ...any) (any, error)

// RowFunc transforms a full row.
type RowFunc func(Row) (Row, error)

// Identity passes a cell through unchanged; the default derivation.
func Identity(cell any) (any, error) { return cell, nil }

// Derive appends fn(row[col]) as a new trailing cell on every row, leaving
// the existing columns and their positions untouched. A nil fn clones the
// source column. An out-of-range col is an indexing error.
func Derive(rows iter.Seq2[Row, error], fn CellFunc, col int) iter.Seq2[Row, error] {
	if fn == nil {
		fn = Identity
	}
	return mapRows(rows, func(r Row) (Row, error) {
		cell, err := Cell(r, col)
		if err != nil {
			return nil, err
		}
		derived, err := fn(cell)
		if err != nil {
			return nil, err
		}
		out := make(Row, len(r)+1)
		copy(out, r)
		out[len(r)] = derived
		return out, nil
	})
}

// Fuse collapses the cells at cols into one merged cell per row, placed at
// the lowest of the original positions; the other fused positions vanish.
// fn receives the cells in the order cols were given. Each output row is
// built in a single keep/emit pass over a fresh buffer, so no index ever
// shifts under a removal.
func Fuse(rows iter.Seq2[Row, error], fn CombineFunc, cols ...int) iter.Seq2[Row, error] {
	if len(cols) == 0 {
		return errorRows(ErrNoFuseColumns)
	}
	target := slices.Min(cols)
	fused := make(map[int]bool, len(cols))
	for _, c := range cols {
		fused[c] = true
	}
	return mapRows(rows, func(r Row) (Row, error) {
		cells := make([]any, len(cols))
		for i, c := range cols {
			cell, err := Cell(r, c)
			if err != nil {
				return nil, err
			}
			cells[i] = cell
		}
		merged, err := fn(cells...)
		if err != nil {
			return nil, err
		}
		out := make(Row, 0, len(r)-len(fused)+1)
		for i, cell := range r {
			switch {
			case i == target:
				out = append(out, merged)
			case fused[i]:
			default:
				out = append(out, cell)
			}
		}
		return out, nil
	})
}

// Swap exchanges cell values between the paired positions of colMap. Every
// pair reads from the original row, so {0:1, 1:0} encodes the same single
// exchange as {0:1}; pairs are applied independently, never chained.
func Swap(rows iter.Seq2[Row, error], colMap map[int]int) iter.Seq2[Row, error] {
	return mapRows(rows, func(r Row) (Row, error) {
		out := r.Clone()
		for a, b := range colMap {
			va, err := Cell(r, a)
			if err != nil {
				return nil, err
			}
			vb, err := Cell(r, b)
			if err != nil {
				return nil, err
			}
			out[a] = vb
			out[b] = va
		}
		return out, nil
	})
}

// Mapr applies fn to every full row, in order. Dataset-first argument order
// keeps it pipelineable with the other transforms.
func Mapr(rows iter.Seq2[Row, error], fn RowFunc) iter.Seq2[Row, error] {
	return mapRows(rows, fn)
}

// Mapc applies fns[i] to cell i of every row. Cells beyond len(fns) pass
// through unchanged, and fns beyond the row width are simply unused.
func Mapc(rows iter.Seq2[Row, error], fns ...CellFunc) iter.Seq2[Row, error] {
	return mapRows(rows, func(r Row) (Row, error) {
		out := make(Row, len(r))
		for i, cell := range r {
			if i >= len(fns) || fns[i] == nil {
				out[i] = cell
				continue
			}
			mapped, err := fns[i](cell)
			if err != nil {
				return nil, err
			}
			out[i] = mapped
		}
		return out, nil
	})
}

func mapRows(rows iter.Seq2[Row, error], fn RowFunc) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for r, err := range rows {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			out, err := fn(r)
			if !yield(out, err) {
				return
			}
		}
	}
}
