package tabular

import "iter"

// KeysOf adapts a key slice into a key sequence.
func KeysOf(keys ...any) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Every yields positions 0, step, 2*step, ... without terminating. It is
// meant for unbounded selection, which truncates it to the header width.
func Every(step int) iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := 0; ; i += step {
			if !yield(i) {
				return
			}
		}
	}
}

// Select projects d onto the given keys, in the given order. Duplicated and
// reordered keys are allowed; this is a projection/permutation, not a subset
// test. Every key must resolve, or the call fails with an error naming each
// unresolvable key once.
func (d *Dataset) Select(keys ...any) (*Dataset, error) {
	return d.SelectSeq(KeysOf(keys...), false)
}

// SelectSeq is Select over a key sequence. In unbounded mode keys may be
// infinite: at most len(d.Header) keys are pulled before validation and the
// excess is silently discarded. The truncated prefix is still validated, so
// a miss fails in either mode.
func (d *Dataset) SelectSeq(keys iter.Seq[any], unbounded bool) (*Dataset, error) {
	var taken []any
	if unbounded {
		taken = truncateKeys(keys, len(d.Header))
	} else {
		for k := range keys {
			taken = append(taken, k)
		}
	}
	positions := make([]int, 0, len(taken))
	var missing []any
	for _, key := range taken {
		i, ok := resolveIndex(d.Header, key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		positions = append(positions, i)
	}
	if len(missing) > 0 {
		return nil, ErrColumnsNotFound(dedupKeys(missing))
	}
	return d.project(positions), nil
}

// SelectRange projects the columns at positions [start, end). A start
// greater than end violates the range precondition; positions outside the
// header fail like any other unresolvable key.
func (d *Dataset) SelectRange(start, end int) (*Dataset, error) {
	positions, err := columnRange(start, end)
	if err != nil {
		return nil, err
	}
	var missing []any
	for _, p := range positions {
		if p < 0 || p >= len(d.Header) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return nil, ErrColumnsNotFound(missing)
	}
	return d.project(positions), nil
}

func columnRange(start, end int) ([]int, error) {
	if start > end {
		return nil, ErrInvalidRange(start, end)
	}
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out, nil
}

// truncateKeys pulls at most n keys from a possibly infinite sequence. This
// is the only place an unbounded key sequence is ever consumed.
func truncateKeys(keys iter.Seq[any], n int) []any {
	if n <= 0 {
		return nil
	}
	out := make([]any, 0, n)
	for k := range keys {
		out = append(out, k)
		if len(out) >= n {
			break
		}
	}
	return out
}

// project narrows d to the given header positions, lazily per row. The
// positions are already validated against the header; rows shorter than the
// header surface as per-row errors instead of stopping the sequence.
func (d *Dataset) project(positions []int) *Dataset {
	header := make(Header, len(positions))
	for i, p := range positions {
		header[i] = d.Header[p]
	}
	src := d.Rows
	rows := func(yield func(Row, error) bool) {
		for r, err := range src {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			out, err := projectRow(r, positions)
			if !yield(out, err) {
				return
			}
		}
	}
	return &Dataset{Header: header, Rows: rows}
}

func projectRow(r Row, positions []int) (Row, error) {
	out := make(Row, len(positions))
	for i, p := range positions {
		if p >= len(r) {
			return nil, ErrCellOutOfRange(p, len(r))
		}
		out[i] = r[p]
	}
	return out, nil
}
