package bkv

import (
	"fmt"
	"iter"
)

// Order selects the direction of a scan.
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	switch o {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// KV is a decoded primary entry yielded by container scans.
type KV[T any] struct {
	Key   []byte
	Value T
}

// Storage is a flat ordered byte-keyed store (Bolt, in-memory, etc.).
// Containers are stateless views over a Storage and keep all their state in
// it.
//
// Get returns nil when the key is absent. Remove of an absent key is a
// no-op. Scan yields entries with start <= key < end in the requested
// order; a nil bound leaves that side unbounded. Yielded keys and values
// are copies, safe to retain across iterations.
//
// Each call is atomic on its own and a completed write is visible to every
// subsequent call on the same Storage. No transactional guarantees span
// calls.
type Storage interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Remove(key []byte) error
	Scan(start, end []byte, order Order) iter.Seq2[[]byte, []byte]
}
