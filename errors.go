package tabular

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrColumnsNotFound = func(keys []any) error {
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%v", k)
		}
		return fmt.Errorf("column(s) not found: %s", strings.Join(parts, ", "))
	}
	ErrCellOutOfRange = func(pos, width int) error {
		return fmt.Errorf("cell position %d out of range for row of width %d", pos, width)
	}
	ErrRowOutOfRange = func(n int) error { return fmt.Errorf("row %d out of range", n) }
	ErrInvalidRange  = func(start, end int) error {
		return fmt.Errorf("invalid column range: start %d greater than end %d", start, end)
	}
	ErrNoFuseColumns   = errors.New("fuse requires at least one column position")
	ErrDatasetNotFound = func(name string) error { return fmt.Errorf("dataset %s not found", name) }
	ErrMissingHeader   = errors.New("input has no header row")
	ErrCannotMarshal   = func(v any) error { return fmt.Errorf("cannot marshal value '%v' of type %T", v, v) }
	ErrCannotUnmarshal = func(v any) error { return fmt.Errorf("cannot unmarshal into value of type %T", v) }
)
