package tabular

import "strings"

// Meta columns are auxiliary columns whose identifier carries a leading
// underscore. Tagging renames identifiers in a fresh header; data rows are
// untouched and stay width-aligned.

const metaPrefix = "_"

// IsMeta reports whether id names a meta column.
func IsMeta(id any) bool {
	return strings.HasPrefix(cellString(id), metaPrefix)
}

// TagMeta returns a new header with the given columns renamed to their meta
// form. Keys resolve like selection keys; unresolvable keys fail with the
// full list. Already-tagged columns are left alone.
func TagMeta(header Header, keys ...any) (Header, error) {
	out := make(Header, len(header))
	copy(out, header)
	var missing []any
	for _, key := range keys {
		i, ok := resolveIndex(header, key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		if IsMeta(out[i]) {
			continue
		}
		switch id := out[i].(type) {
		case Symbol:
			out[i] = Symbol(metaPrefix + string(id))
		default:
			out[i] = metaPrefix + cellString(id)
		}
	}
	if len(missing) > 0 {
		return nil, ErrColumnsNotFound(dedupKeys(missing))
	}
	return out, nil
}

// UntagMeta strips the meta prefix from every tagged identifier, returning
// a new header.
func UntagMeta(header Header) Header {
	out := make(Header, len(header))
	for i, id := range header {
		switch v := id.(type) {
		case Symbol:
			out[i] = Symbol(strings.TrimPrefix(string(v), metaPrefix))
		case string:
			out[i] = strings.TrimPrefix(v, metaPrefix)
		default:
			out[i] = id
		}
	}
	return out
}

// MetaColumns returns the positions of the tagged columns.
func MetaColumns(header Header) []int {
	var out []int
	for i, id := range header {
		if IsMeta(id) {
			out = append(out, i)
		}
	}
	return out
}

// DataColumns selects the untagged columns of d, in header order.
func (d *Dataset) DataColumns() (*Dataset, error) {
	keys := make([]any, 0, len(d.Header))
	for i, id := range d.Header {
		if !IsMeta(id) {
			keys = append(keys, i)
		}
	}
	return d.SelectSeq(KeysOf(keys...), false)
}
