package bkv

// Singleton stores one typed value at the fixed key frame(ns).
type Singleton[T any] struct {
	view[T]
	key []byte
}

// NewSingleton creates a view of the single value stored under namespace.
func NewSingleton[T any](st Storage, namespace []byte, opt Options) *Singleton[T] {
	return &Singleton[T]{
		view: newView[T](st, namespace, opt),
		key:  frame(namespace),
	}
}

// Save stores v, replacing any previous value.
func (s *Singleton[T]) Save(v T) error {
	raw := s.marshal(v)
	s.log.Debugw("save")
	return s.st.Set(s.key, raw)
}

// Remove deletes the value. Removing an unset singleton is a no-op.
func (s *Singleton[T]) Remove() error {
	s.log.Debugw("remove")
	return s.st.Remove(s.key)
}

// Load returns the stored value, or ErrNotFound.
func (s *Singleton[T]) Load() (T, error) {
	var v T
	raw, err := s.st.Get(s.key)
	if err != nil {
		return v, err
	}
	if raw == nil {
		return v, bucketErrf(s.ns, nil, ErrNotFound, "load")
	}
	err = s.unmarshal(raw, &v)
	return v, err
}

// MayLoad returns the stored value, or nil when unset.
func (s *Singleton[T]) MayLoad() (*T, error) {
	raw, err := s.st.Get(s.key)
	if err != nil || raw == nil {
		return nil, err
	}
	var v T
	if err := s.unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Update applies action to the current value (nil when unset) and saves the
// result. An error from action aborts the update unchanged.
func (s *Singleton[T]) Update(action func(old *T) (T, error)) (T, error) {
	var zero T
	old, err := s.MayLoad()
	if err != nil {
		return zero, err
	}
	v, err := action(old)
	if err != nil {
		return zero, err
	}
	return v, s.Save(v)
}
