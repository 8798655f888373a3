package tabular

import (
	"iter"
	"slices"
)

// Normalise melts the measure columns of a wide dataset into repeated
// long-format rows: for every data row and every measure position id, one
// output row carrying the cells left of the measure block, then the header
// label at id, then the data cell at id. rows must hold data rows only; a
// caller fed a raw sheet strips the leading header row with DropRows before
// the hand-off, and no header row is ever re-emitted.
//
// measureIDs may be an infinite sequence; at most len(header) entries are
// pulled before resolution. The resolved positions are deduplicated and
// sorted ascending, and are required to form a contiguous block starting at
// their minimum: the block [min, min+count) is what gets melted, so
// discontiguous measure sets are not supported.
//
// Output rows number len(data rows) * count, grouped by data row in measure
// order. Zero resolved measures yield an empty sequence.
func Normalise(header Header, rows iter.Seq2[Row, error], measureIDs iter.Seq[any]) (iter.Seq2[Row, error], error) {
	taken := truncateKeys(measureIDs, len(header))
	var missing []any
	seen := make(map[int]bool, len(taken))
	positions := make([]int, 0, len(taken))
	for _, key := range taken {
		i, ok := resolveIndex(header, key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		positions = append(positions, i)
	}
	if len(missing) > 0 {
		return nil, ErrColumnsNotFound(dedupKeys(missing))
	}
	if len(positions) == 0 {
		return RowsOf(), nil
	}
	slices.Sort(positions)
	start := positions[0]
	block, err := columnRange(start, start+len(positions))
	if err != nil {
		return nil, err
	}
	return func(yield func(Row, error) bool) {
		for r, err := range rows {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !meltRow(yield, header, r, start, block) {
				return
			}
		}
	}, nil
}

// meltRow emits one long-format row per measure position; it reports false
// when the consumer stops early.
func meltRow(yield func(Row, error) bool, header Header, r Row, start int, block []int) bool {
	if start > len(r) {
		return yield(nil, ErrCellOutOfRange(start, len(r)))
	}
	for _, id := range block {
		if id >= len(r) {
			if !yield(nil, ErrCellOutOfRange(id, len(r))) {
				return false
			}
			continue
		}
		out := make(Row, 0, start+2)
		out = append(out, r[:start]...)
		out = append(out, header[id], r[id])
		if !yield(out, nil) {
			return false
		}
	}
	return true
}
