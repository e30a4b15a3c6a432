package bkv

import (
	"fmt"
	"iter"
	"slices"

	"go.uber.org/zap"

	"github.com/bkvdb/bkv/codec"
)

// view is the part shared by every typed container: the backing store, the
// namespace and the value codec. A view holds no data of its own; all
// state lives in the store and outlives the view.
type view[T any] struct {
	st    Storage
	ns    []byte
	codec codec.Codec
	log   *zap.SugaredLogger
}

func newView[T any](st Storage, namespace []byte, opt Options) view[T] {
	if st == nil {
		panic("bkv: nil storage")
	}
	return view[T]{
		st:    st,
		ns:    slices.Clone(namespace),
		codec: opt.codec(),
		log:   opt.logger().Sugar().With("ns", string(namespace)),
	}
}

// marshal encodes v for storage. A failure means the value type cannot be
// handled by the codec at all, which is a programmer error, so it panics.
func (w *view[T]) marshal(v T) []byte {
	raw, err := w.codec.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("bkv: failed to encode %T using %s: %w", v, w.codec.Name(), err))
	}
	return raw
}

func (w *view[T]) unmarshal(raw []byte, v *T) error {
	if err := w.codec.Unmarshal(raw, v); err != nil {
		return dataErrf(raw, err, "failed to decode %s into %T", w.codec.Name(), v)
	}
	return nil
}

// decodeSeq decodes a raw scan into typed entries. An entry with malformed
// bytes is yielded with a DataError in the error position and the scan
// carries on past it.
func decodeSeq[T any](w *view[T], raw iter.Seq2[[]byte, []byte]) iter.Seq2[KV[T], error] {
	return func(yield func(KV[T], error) bool) {
		for k, data := range raw {
			var v T
			if err := w.unmarshal(data, &v); err != nil {
				if !yield(KV[T]{Key: k}, err) {
					return
				}
				continue
			}
			if !yield(KV[T]{Key: k, Value: v}, nil) {
				return
			}
		}
	}
}
