package tabular

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
)

type matcherKind uint8

const (
	matchFunc matcherKind = iota
	matchSubstring
	matchPattern
)

// Matcher is a tagged variant over the three grep match shapes: a raw
// predicate applied to the cell value, a substring checked against the
// cell's string form, or a compiled pattern matched against it.
type Matcher struct {
	kind    matcherKind
	fn      func(any) bool
	substr  string
	pattern *regexp.Regexp
}

func MatchFunc(fn func(any) bool) Matcher {
	return Matcher{kind: matchFunc, fn: fn}
}

func MatchSubstring(s string) Matcher {
	return Matcher{kind: matchSubstring, substr: s}
}

func MatchPattern(re *regexp.Regexp) Matcher {
	return Matcher{kind: matchPattern, pattern: re}
}

func (m Matcher) matches(cell any) bool {
	switch m.kind {
	case matchSubstring:
		return strings.Contains(cellString(cell), m.substr)
	case matchPattern:
		return m.pattern.MatchString(cellString(cell))
	default:
		return m.fn != nil && m.fn(cell)
	}
}

func cellString(cell any) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}

// Grep keeps the rows with at least one candidate cell matched by m. With
// no columns every cell of a row is a candidate; otherwise candidates are
// restricted by raw position, without resolver involvement, and positions
// past the row end contribute nothing. The result is lazy and
// order-preserving, pulling the source one row at a time.
func Grep(rows iter.Seq2[Row, error], m Matcher, columns ...int) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for r, err := range rows {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if rowMatches(r, m, columns) {
				if !yield(r, nil) {
					return
				}
			}
		}
	}
}

func rowMatches(r Row, m Matcher, columns []int) bool {
	if len(columns) == 0 {
		for _, cell := range r {
			if m.matches(cell) {
				return true
			}
		}
		return false
	}
	for _, pos := range columns {
		if pos < 0 || pos >= len(r) {
			continue
		}
		if m.matches(r[pos]) {
			return true
		}
	}
	return false
}
