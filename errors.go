package bkv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("key not found")

// DataError reports stored bytes the codec failed to decode.
type DataError struct {
	Data []byte
	Err  error
	Msg  string
}

func dataErrf(data []byte, err error, format string, args ...any) error {
	return &DataError{data, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x", e.Msg, e.Err, n, e.Data)
		}
		return fmt.Sprintf("%s: (%d) %x", e.Msg, n, e.Data)
	}
	p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: (%d) %x...%x", e.Msg, e.Err, n, p, s)
	}
	return fmt.Sprintf("%s: (%d) %x...%x", e.Msg, n, p, s)
}

// BucketError carries the namespace and key a container-level failure
// happened under. Backing store errors are never wrapped in it; they pass
// through container calls unchanged.
type BucketError struct {
	Namespace []byte
	Key       []byte
	Msg       string
	Err       error
}

func bucketErrf(ns, key []byte, err error, format string, args ...any) error {
	return &BucketError{ns, key, fmt.Sprintf(format, args...), err}
}

func (e *BucketError) Unwrap() error {
	return e.Err
}

func (e *BucketError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%q", e.Namespace)
	if e.Key != nil {
		fmt.Fprintf(&buf, "/%q", e.Key)
	}
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
		if e.Err != nil {
			buf.WriteString(": ")
			buf.WriteString(e.Err.Error())
		}
	} else if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}
