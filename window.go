package tabular

import "iter"

// TakeRows yields at most the first n rows, then stops pulling the source.
// An n past the available rows is not an error; fewer rows come back.
func TakeRows(rows iter.Seq2[Row, error], n int) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for r, err := range rows {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !yield(r, nil) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}

// DropRows skips the first n rows and yields the rest lazily.
func DropRows(rows iter.Seq2[Row, error], n int) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		i := 0
		for r, err := range rows {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if i < n {
				i++
				continue
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}
