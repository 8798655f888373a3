package tabular

import "iter"

// Symbol is the interned alias form of a column name. A header may carry a
// column identifier as a string or as a Symbol; "foo" and Symbol("foo") name
// the same column everywhere keys are resolved.
type Symbol string

func (s Symbol) String() string { return string(s) }

// Resolve maps key to the identifier actually present in header, or to
// notFound. String and Symbol keys match either form of the same name, int
// keys index the header directly (out of bounds resolves to notFound rather
// than failing), and any other key matches by equality.
//
// notFound is supplied by the caller and must be distinguishable from every
// legitimate header value; the engine never assumes nil is free.
func Resolve(header Header, key, notFound any) any {
	if i, ok := resolveIndex(header, key); ok {
		return header[i]
	}
	return notFound
}

// resolveIndex is the positional form of Resolve, shared by selection and
// normalisation.
func resolveIndex(header Header, key any) (int, bool) {
	switch k := key.(type) {
	case int:
		if k >= 0 && k < len(header) {
			return k, true
		}
		return 0, false
	case string:
		return scanHeader(header, k, Symbol(k))
	case Symbol:
		return scanHeader(header, string(k), k)
	default:
		return scanHeader(header, key, key)
	}
}

func scanHeader(header Header, a, b any) (int, bool) {
	for i, id := range header {
		if id == a || id == b {
			return i, true
		}
	}
	return 0, false
}

type notFoundSentinel struct{}

var keyNotFound any = &notFoundSentinel{}

// InvalidKeys reports every key in keys that does not resolve against d's
// header. It is the validation pre-pass behind bounded selection; keys must
// be finite.
func InvalidKeys(keys iter.Seq[any], d *Dataset) []any {
	var missing []any
	for key := range keys {
		if Resolve(d.Header, key, keyNotFound) == keyNotFound {
			missing = append(missing, key)
		}
	}
	return dedupKeys(missing)
}

func dedupKeys(keys []any) []any {
	if len(keys) == 0 {
		return nil
	}
	seen := make(map[any]bool, len(keys))
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
