// Package codec provides pluggable value serialization for bkv containers.
//
// Containers store values as opaque bytes produced by a Codec and never
// inspect them. Switching the codec of an existing container is a breaking
// change: bytes written by one codec are not readable by another, and
// nothing in the stored layout records which codec produced them.
package codec

import "fmt"

// Codec encodes and decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec containers use when none is configured.
var Default Codec = Msgpack{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "msgpack":
		return Msgpack{}, true
	case "json":
		return JSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal encodes v with c, or with Default when c is nil, and panics
// on failure.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
