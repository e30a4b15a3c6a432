package bkv

import "iter"

// Bucket is a typed key-value collection scoped to a namespace. Values live
// under frame(ns) ++ pk. See IndexedBucket for the variant that maintains a
// secondary index.
//
// Namespaces must not be shared between container kinds over the same
// store; the sub-spaces of a Bucket and an IndexedBucket with an equal
// namespace are not disjoint.
type Bucket[T any] struct {
	view[T]
	prefix []byte
}

// NewBucket creates a view of the given namespace within st.
func NewBucket[T any](st Storage, namespace []byte, opt Options) *Bucket[T] {
	return &Bucket[T]{
		view:   newView[T](st, namespace, opt),
		prefix: frame(namespace),
	}
}

// Save stores v under pk, replacing any previous value.
func (b *Bucket[T]) Save(pk []byte, v T) error {
	raw := b.marshal(v)
	b.log.Debugw("save", "pk", hexstr(pk))
	return b.st.Set(concat(b.prefix, pk), raw)
}

// Remove deletes the value under pk. Removing an empty pk is a no-op.
func (b *Bucket[T]) Remove(pk []byte) error {
	b.log.Debugw("remove", "pk", hexstr(pk))
	return b.st.Remove(concat(b.prefix, pk))
}

// Load returns the value stored under pk, or ErrNotFound.
func (b *Bucket[T]) Load(pk []byte) (T, error) {
	var v T
	raw, err := b.st.Get(concat(b.prefix, pk))
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
func (b *Bucket[T]) MayLoad(pk []byte) (*T, error) {
	raw, err := b.st.Get(concat(b.prefix, pk))
	if err != nil || raw == nil {
		return nil, err
	}
	var v T
	if err := b.unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Update loads the current value, applies action to it (nil when pk is
// empty) and saves the result. An error from action aborts the update
// unchanged and propagates as-is.
func (b *Bucket[T]) Update(pk []byte, action func(old *T) (T, error)) (T, error) {
	var zero T
	old, err := b.MayLoad(pk)
	if err != nil {
		return zero, err
	}
	v, err := action(old)
	if err != nil {
		return zero, err
	}
	return v, b.Save(pk, v)
}

// Range scans stored values between the optional pk bounds, start inclusive
// and end exclusive, in the requested order. An entry that fails to decode
// is yielded with a DataError in the error position and the scan continues
// past it.
func (b *Bucket[T]) Range(start, end []byte, order Order) iter.Seq2[KV[T], error] {
	return decodeSeq(&b.view, scanPrefix(b.st, b.prefix, start, end, order))
}
