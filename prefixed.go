package bkv

import "iter"

// Prefixed returns a view of st confined to keys under the framed
// namespace. The view implements Storage, so containers and further nested
// views compose on top of it. Keys passed in and yielded back are relative
// to the namespace.
func Prefixed(st Storage, namespace []byte) Storage {
	return &prefixedStorage{st: st, prefix: frame(namespace)}
}

type prefixedStorage struct {
	st     Storage
	prefix []byte
}

func (p *prefixedStorage) Get(key []byte) ([]byte, error) {
	return p.st.Get(concat(p.prefix, key))
}

func (p *prefixedStorage) Set(key, value []byte) error {
	return p.st.Set(concat(p.prefix, key), value)
}

func (p *prefixedStorage) Remove(key []byte) error {
	return p.st.Remove(concat(p.prefix, key))
}

func (p *prefixedStorage) Scan(start, end []byte, order Order) iter.Seq2[[]byte, []byte] {
	return scanPrefix(p.st, p.prefix, start, end, order)
}

// scanPrefix scans the keys beginning with prefix, with optional bounds
// relative to the prefix, and yields keys with the prefix stripped. The
// upper bound for an unbounded end follows the prefixUpperBound rule,
// including the unbounded-above case for an all-0xFF prefix.
func scanPrefix(st Storage, prefix, start, end []byte, order Order) iter.Seq2[[]byte, []byte] {
	lower := concat(prefix, start)
	var upper []byte
	if end != nil {
		upper = concat(prefix, end)
	} else {
		upper = prefixUpperBound(prefix)
	}
	return func(yield func([]byte, []byte) bool) {
		for k, v := range st.Scan(lower, upper, order) {
			if !yield(k[len(prefix):], v) {
				return
			}
		}
	}
}
