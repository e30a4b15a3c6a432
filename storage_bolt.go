package bkv

import (
	"bytes"
	"fmt"
	"iter"
	"slices"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var boltDataBucket = []byte("data")

// BoltStorage is a Storage persisted in a single Bolt database file. Every
// call runs in its own Bolt transaction; a scan holds one read transaction
// for the whole iteration and yields copies because Bolt memory is only
// valid inside the transaction.
//
// Scans see a stable Bolt snapshot. Writing to the same BoltStorage from
// inside an open scan is undefined at this layer and must be avoided.
type BoltStorage struct {
	bdb *bbolt.DB
	log *zap.SugaredLogger
}

// BoltOptions configure OpenBolt. The zero value is suitable for
// production use.
type BoltOptions struct {
	Logger    *zap.Logger
	IsTesting bool
	MmapSize  int
}

// OpenBolt opens or creates a Bolt database file and prepares the data
// bucket.
func OpenBolt(path string, opt BoltOptions) (*BoltStorage, error) {
	bopt := new(bbolt.Options)
	*bopt = *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
		bopt.InitialMmapSize = 1024 * 1024 * 5
	} else {
		// generous mmap headroom so long read transactions rarely force a
		// remap on file growth
		bopt.InitialMmapSize = 1024 * 1024 * 1024
		bopt.FreelistType = bbolt.FreelistMapType
	}
	if opt.MmapSize != 0 {
		bopt.InitialMmapSize = opt.MmapSize
	}

	bdb, err := bbolt.Open(path, 0666, bopt)
	if err != nil {
		return nil, fmt.Errorf("bkv: %w", err)
	}
	err = bdb.Update(func(btx *bbolt.Tx) error {
		_, err := btx.CreateBucketIfNotExists(boltDataBucket)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("bkv: %w", err)
	}

	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BoltStorage{bdb: bdb, log: logger.Sugar()}
	s.log.Debugw("bolt open", "path", path)
	return s, nil
}

// Bolt returns the underlying Bolt database.
func (s *BoltStorage) Bolt() *bbolt.DB { return s.bdb }

func (s *BoltStorage) Close() error {
	s.log.Debugw("bolt close", "path", s.bdb.Path())
	return s.bdb.Close()
}

func (s *BoltStorage) Get(key []byte) ([]byte, error) {
	var out []byte
	err := s.bdb.View(func(btx *bbolt.Tx) error {
		v := btx.Bucket(boltDataBucket).Get(key)
		if v != nil {
			out = slices.Clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BoltStorage) Set(key, value []byte) error {
	return s.bdb.Update(func(btx *bbolt.Tx) error {
		return btx.Bucket(boltDataBucket).Put(key, value)
	})
}

func (s *BoltStorage) Remove(key []byte) error {
	return s.bdb.Update(func(btx *bbolt.Tx) error {
		return btx.Bucket(boltDataBucket).Delete(key)
	})
}

func (s *BoltStorage) Scan(start, end []byte, order Order) iter.Seq2[[]byte, []byte] {
	return func(yield func([]byte, []byte) bool) {
		err := s.bdb.View(func(btx *bbolt.Tx) error {
			c := btx.Bucket(boltDataBucket).Cursor()
			if order == Descending {
				for k, v := boltSeekBack(c, end); k != nil && (start == nil || bytes.Compare(k, start) >= 0); k, v = c.Prev() {
					if !yield(slices.Clone(k), slices.Clone(v)) {
						return nil
					}
				}
			} else {
				for k, v := boltSeekForward(c, start); k != nil && (end == nil || bytes.Compare(k, end) < 0); k, v = c.Next() {
					if !yield(slices.Clone(k), slices.Clone(v)) {
						return nil
					}
				}
			}
			return nil
		})
		ensure(err)
	}
}

func boltSeekForward(c *bbolt.Cursor, start []byte) ([]byte, []byte) {
	if start == nil {
		return c.First()
	}
	return c.Seek(start)
}

// boltSeekBack positions c at the last key strictly below the exclusive end
// bound, or at the last key when end is nil.
func boltSeekBack(c *bbolt.Cursor, end []byte) ([]byte, []byte) {
	if end == nil {
		return c.Last()
	}
	k, _ := c.Seek(end)
	if k == nil {
		return c.Last()
	}
	return c.Prev()
}
