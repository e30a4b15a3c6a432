package bkv

import (
	"errors"
	"strings"
	"testing"
)

func TestDataError_ErrorAndUnwrap(t *testing.T) {
	t.Run("small data", func(t *testing.T) {
		inner := errors.New("inner")
		err := dataErrf([]byte{0xAA, 0xBB}, inner, "oops")
		var de *DataError
		if !errors.As(err, &de) {
			t.Fatalf("err = %T, wanted *DataError", err)
		}
		if !errors.Is(err, inner) {
			t.Fatalf("errors.Is(err, inner) = false, wanted true")
		}
		s := err.Error()
		if !strings.Contains(s, "oops") || !strings.Contains(s, "inner") || !strings.Contains(s, "(2)") || !strings.Contains(s, "aabb") {
			t.Fatalf("err.Error() = %q, wanted message with oops/inner/(2)/aabb", s)
		}
	})

	t.Run("large data includes prefix+suffix", func(t *testing.T) {
		data := make([]byte, 200)
		for i := range data {
			data[i] = byte(i)
		}
		err := dataErrf(data, nil, "oops")
		s := err.Error()
		if !strings.Contains(s, "(200)") || !strings.Contains(s, "...") {
			t.Fatalf("err.Error() = %q, wanted message with (200) and ...", s)
		}
	})
}

func TestBucketError_ErrorAndUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := bucketErrf([]byte("tokens"), []byte("k"), inner, "oops %d", 1)
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is(err, inner) = false, wanted true")
	}
	s := err.Error()
	if !strings.Contains(s, "\"tokens\"") || !strings.Contains(s, "\"k\"") || !strings.Contains(s, "oops 1") || !strings.Contains(s, "inner") {
		t.Fatalf("err.Error() = %q, wanted namespace/key/msg/inner", s)
	}

	s = (&BucketError{Namespace: []byte("T"), Err: inner}).Error()
	if !strings.Contains(s, "\"T\": inner") {
		t.Fatalf("BucketError.Error() = %q, wanted %q", s, "\"T\": inner")
	}

	err = bucketErrf([]byte("tokens"), nil, ErrNotFound, "load")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("errors.Is(err, ErrNotFound) = false, wanted true")
	}
	if strings.Contains(err.Error(), "/") {
		t.Fatalf("err.Error() = %q, wanted no key part for a nil key", err.Error())
	}
}
