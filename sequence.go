package bkv

// Sequence issues monotonically increasing uint64 values, persisting the
// last issued value in a Singleton.
type Sequence struct {
	s *Singleton[uint64]
}

func NewSequence(st Storage, namespace []byte, opt Options) *Sequence {
	return &Sequence{s: NewSingleton[uint64](st, namespace, opt)}
}

// Next increments the sequence and returns the new value. The first call
// returns 1.
func (q *Sequence) Next() (uint64, error) {
	return q.s.Update(func(old *uint64) (uint64, error) {
		if old == nil {
			return 1, nil
		}
		return *old + 1, nil
	})
}

// Current returns the last value issued by Next, or 0 before the first
// call.
func (q *Sequence) Current() (uint64, error) {
	v, err := q.s.MayLoad()
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}
