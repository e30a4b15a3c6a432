package bkv

import (
	"bytes"
	"iter"
	"slices"
	"sync"

	"github.com/google/btree"
)

type memItem struct {
	key   []byte
	value []byte
}

func (i *memItem) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(*memItem).key) < 0
}

// MemStorage is a transient in-memory Storage, intended for tests and
// ephemeral state. Use NewMemStorage; the zero value has no tree.
//
// Raw access is safe for concurrent use. Scan copies the matching range up
// front, so an in-flight scan keeps yielding the state it observed when
// iteration started even if the store is mutated between pulls.
type MemStorage struct {
	mu   sync.RWMutex
	tree *btree.BTree
}

func NewMemStorage() *MemStorage {
	return &MemStorage{tree: btree.New(32)}
}

func (s *MemStorage) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it := s.tree.Get(&memItem{key: key})
	if it == nil {
		return nil, nil
	}
	return slices.Clone(it.(*memItem).value), nil
}

func (s *MemStorage) Set(key, value []byte) error {
	v := slices.Clone(value)
	if v == nil {
		v = []byte{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.ReplaceOrInsert(&memItem{key: slices.Clone(key), value: v})
	return nil
}

func (s *MemStorage) Remove(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Delete(&memItem{key: key})
	return nil
}

func (s *MemStorage) Scan(start, end []byte, order Order) iter.Seq2[[]byte, []byte] {
	return func(yield func([]byte, []byte) bool) {
		items := s.collect(start, end)
		if order == Descending {
			slices.Reverse(items)
		}
		for _, it := range items {
			if !yield(it.key, it.value) {
				return
			}
		}
	}
}

// collect clones every entry in [start, end), ascending.
func (s *MemStorage) collect(start, end []byte) []memItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []memItem
	add := func(i btree.Item) bool {
		it := i.(*memItem)
		if end != nil && bytes.Compare(it.key, end) >= 0 {
			return false
		}
		items = append(items, memItem{key: slices.Clone(it.key), value: slices.Clone(it.value)})
		return true
	}
	if start != nil {
		s.tree.AscendGreaterOrEqual(&memItem{key: start}, add)
	} else {
		s.tree.Ascend(add)
	}
	return items
}
