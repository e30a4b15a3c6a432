package bkv

import (
	"encoding/binary"
	"fmt"
)

const maxFrameLen = 0xFFFF

// frame returns seg prefixed with its length as 2 bytes big-endian. Framed
// segments concatenate unambiguously: a framed sequence can never be a
// prefix of a different framed sequence.
func frame(seg []byte) []byte {
	return appendFrame(make([]byte, 0, 2+len(seg)), seg)
}

func appendFrame(dst, seg []byte) []byte {
	if len(seg) > maxFrameLen {
		panic(fmt.Errorf("bkv: segment of %d bytes exceeds the frame limit", len(seg)))
	}
	dst = binary.BigEndian.AppendUint16(dst, uint16(len(seg)))
	return append(dst, seg...)
}

// framed concatenates the framed form of every segment.
func framed(segs ...[]byte) []byte {
	n := 0
	for _, seg := range segs {
		n += 2 + len(seg)
	}
	out := make([]byte, 0, n)
	for _, seg := range segs {
		out = appendFrame(out, seg)
	}
	return out
}

// concat joins a precomputed prefix with an unframed tail.
func concat(prefix, tail []byte) []byte {
	out := make([]byte, 0, len(prefix)+len(tail))
	out = append(out, prefix...)
	return append(out, tail...)
}

// prefixUpperBound returns the smallest key greater than every key starting
// with prefix, for use as an exclusive scan bound. Bytes at 0xFF have no
// successor of the same length, so trailing 0xFF bytes are stripped and the
// last remaining byte is incremented; incrementing only the final byte is
// not a valid bound for any prefix ending in 0xFF. When the whole prefix is
// 0xFF bytes there is no finite bound and nil is returned: the scan must
// run unbounded above. The input is never modified.
func prefixUpperBound(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xFF {
			out := make([]byte, i+1)
			copy(out, prefix[:i+1])
			out[i]++
			return out
		}
	}
	return nil
}
