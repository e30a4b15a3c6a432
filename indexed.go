package bkv

import "iter"

// Indexer derives the secondary index key of a stored value. It must be a
// pure, deterministic function of the value alone: markers are recomputed
// from values during every mutation, and an indexer whose output drifts for
// the same value leaves the index out of sync with primary data.
type Indexer[T any] func(v T) []byte

var (
	pkTag  = []byte("pk")
	idxTag = []byte("idx")
)

// indexMarker is the value stored under every index entry. Presence of the
// key is the whole fact; the value carries no payload.
var indexMarker = []byte{}

// IndexedBucket is a typed key-value collection with a single non-unique
// secondary index maintained alongside the primary data.
//
// Primary entries live under frame(ns) ++ frame("pk") ++ pk, markers under
// frame(ns) ++ frame("idx") ++ frame(indexKey) ++ pk. Framing keeps the two
// sub-spaces disjoint from each other and from every other namespace no
// matter what bytes keys and namespaces contain.
//
// The index is a pure cache over primary data: Reindex can drop and rebuild
// it at any time. Every write goes through Replace, so a primary write is
// always paired with the matching marker delta; there is no entry point
// that stores a value while skipping index maintenance.
//
// An IndexedBucket is a stateless view and assumes it is the only writer of
// its namespace for as long as it is used.
type IndexedBucket[T any] struct {
	view[T]
	prefixPK  []byte
	prefixIdx []byte
	indexer   Indexer[T]
}

// NewIndexed creates an indexed view of the given namespace within st.
func NewIndexed[T any](st Storage, namespace []byte, indexer Indexer[T], opt Options) *IndexedBucket[T] {
	if indexer == nil {
		panic("bkv: nil indexer")
	}
	return &IndexedBucket[T]{
		view:      newView[T](st, namespace, opt),
		prefixPK:  framed(namespace, pkTag),
		prefixIdx: framed(namespace, idxTag),
		indexer:   indexer,
	}
}

// Load returns the value stored under pk, or ErrNotFound.
func (b *IndexedBucket[T]) Load(pk []byte) (T, error) {
	var v T
	raw, err := b.st.Get(concat(b.prefixPK, pk))
	if err != nil {
		return v, err
	}
	if raw == nil {
		return v, bucketErrf(b.ns, pk, ErrNotFound, "load")
	}
	err = b.unmarshal(raw, &v)
	return v, err
}

// MayLoad returns the stored value, or nil when pk is empty. Decode and
// store failures still surface.
func (b *IndexedBucket[T]) MayLoad(pk []byte) (*T, error) {
	raw, err := b.st.Get(concat(b.prefixPK, pk))
	if err != nil || raw == nil {
		return nil, err
	}
	var v T
	if err := b.unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Save stores v under pk, replacing any previous value and moving the index
// marker when the index key changes. Costs one extra read to discover the
// currently stored value.
func (b *IndexedBucket[T]) Save(pk []byte, v T) error {
	old, err := b.MayLoad(pk)
	if err != nil {
		return err
	}
	return b.Replace(pk, &v, old)
}

// Remove deletes the value under pk together with its index marker.
// Removing an empty pk is a no-op.
func (b *IndexedBucket[T]) Remove(pk []byte) error {
	old, err := b.MayLoad(pk)
	if err != nil {
		return err
	}
	return b.Replace(pk, nil, old)
}

// Replace is the low-level mutation everything else goes through. It
// removes the marker of oldData if given, then either stores data (marker
// first, then the primary entry) or, when data is nil, deletes the primary
// entry. With both nil it does nothing.
//
// oldData MUST be the value currently stored under pk, or nil when pk is
// empty. A wrong oldData silently leaves a stale marker behind; this is a
// documented contract, not a checked precondition. Prefer Save, Remove and
// Update, which look the old value up themselves.
func (b *IndexedBucket[T]) Replace(pk []byte, data, oldData *T) error {
	if oldData != nil {
		if err := b.removeFromIndex(b.indexer(*oldData), pk); err != nil {
			return err
		}
	}
	if data != nil {
		raw := b.marshal(*data)
		idx := b.indexer(*data)
		if err := b.addToIndex(idx, pk); err != nil {
			return err
		}
		b.log.Debugw("save", "pk", hexstr(pk), "idx", hexstr(idx))
		return b.st.Set(concat(b.prefixPK, pk), raw)
	}
	if oldData != nil {
		b.log.Debugw("remove", "pk", hexstr(pk))
		return b.st.Remove(concat(b.prefixPK, pk))
	}
	return nil
}

// Update loads the current value, applies action to it (nil when pk is
// empty) and stores the result, keeping the index consistent. An error
// returned by action aborts the update with no side effects and propagates
// as-is, so domain validation failures and storage failures share one
// channel.
//
// The old marker is removed here and the final write runs as
// Replace(pk, &v, nil), deliberately without the old value: it has already
// been dealt with, and handing it to Replace again (or calling Save, which
// rediscovers it) would process the old index twice.
func (b *IndexedBucket[T]) Update(pk []byte, action func(old *T) (T, error)) (T, error) {
	var zero T
	old, err := b.MayLoad(pk)
	if err != nil {
		return zero, err
	}
	// Index key of the old value, captured before action gets a chance to
	// mutate old in place.
	var oldIdx []byte
	hasOld := old != nil
	if hasOld {
		oldIdx = b.indexer(*old)
	}
	v, err := action(old)
	if err != nil {
		return zero, err
	}
	if hasOld {
		if err := b.removeFromIndex(oldIdx, pk); err != nil {
			return zero, err
		}
	}
	if err := b.Replace(pk, &v, nil); err != nil {
		return zero, err
	}
	return v, nil
}

// indexEntryKey returns the absolute storage key of the marker for
// (idx, pk).
func (b *IndexedBucket[T]) indexEntryKey(idx, pk []byte) []byte {
	out := make([]byte, 0, len(b.prefixIdx)+2+len(idx)+len(pk))
	out = append(out, b.prefixIdx...)
	out = appendFrame(out, idx)
	return append(out, pk...)
}

// addToIndex writes the presence marker for (idx, pk). Writing a marker
// that already exists changes nothing.
func (b *IndexedBucket[T]) addToIndex(idx, pk []byte) error {
	return b.st.Set(b.indexEntryKey(idx, pk), indexMarker)
}

// removeFromIndex deletes the marker for (idx, pk). Absent markers are
// ignored.
func (b *IndexedBucket[T]) removeFromIndex(idx, pk []byte) error {
	return b.st.Remove(b.indexEntryKey(idx, pk))
}

// PKsByIndex returns the primary keys whose stored value currently maps to
// idx. The sequence is lazy and always ascends in byte order, regardless of
// the order values were inserted in.
func (b *IndexedBucket[T]) PKsByIndex(idx []byte) iter.Seq[[]byte] {
	prefix := concat(b.prefixIdx, frame(idx))
	return func(yield func([]byte) bool) {
		for pk := range scanPrefix(b.st, prefix, nil, nil, Ascending) {
			if !yield(pk) {
				return
			}
		}
	}
}

// ItemsByIndex resolves PKsByIndex through the primary space. Markers never
// hold values, so every match costs one primary read. A failing read is
// yielded as an error item at its position and the sequence continues.
func (b *IndexedBucket[T]) ItemsByIndex(idx []byte) iter.Seq2[KV[T], error] {
	return func(yield func(KV[T], error) bool) {
		for pk := range b.PKsByIndex(idx) {
			v, err := b.Load(pk)
			if err != nil {
				if !yield(KV[T]{Key: pk}, err) {
					return
				}
				continue
			}
			if !yield(KV[T]{Key: pk, Value: v}, nil) {
				return
			}
		}
	}
}

// Range scans primary entries between the optional pk bounds, start
// inclusive and end exclusive, in the requested order. An entry that fails
// to decode is yielded with a DataError in the error position and the scan
// continues past it.
func (b *IndexedBucket[T]) Range(start, end []byte, order Order) iter.Seq2[KV[T], error] {
	return decodeSeq(&b.view, scanPrefix(b.st, b.prefixPK, start, end, order))
}

// Reindex drops every marker in the index sub-space and rebuilds them from
// primary data. Markers are derived state, so this recovers from any index
// corruption, including one caused by a wrong oldData handed to Replace.
//
// Both phases materialize what they found before writing: a backend scan
// may hold a read transaction open for the whole iteration (BoltStorage
// does), and a same-goroutine write under an open scan can deadlock when
// the data file has to grow.
func (b *IndexedBucket[T]) Reindex() error {
	var stale [][]byte
	for k := range b.st.Scan(b.prefixIdx, prefixUpperBound(b.prefixIdx), Ascending) {
		stale = append(stale, k)
	}
	for _, k := range stale {
		if err := b.st.Remove(k); err != nil {
			return err
		}
	}
	type entry struct {
		idx, pk []byte
	}
	var entries []entry
	for kv, err := range b.Range(nil, nil, Ascending) {
		if err != nil {
			return err
		}
		entries = append(entries, entry{idx: b.indexer(kv.Value), pk: kv.Key})
	}
	for _, e := range entries {
		if err := b.addToIndex(e.idx, e.pk); err != nil {
			return err
		}
	}
	b.log.Debugw("reindex", "entries", len(entries))
	return nil
}
