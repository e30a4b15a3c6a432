package bkv

import (
	"go.uber.org/zap"

	"github.com/bkvdb/bkv/codec"
)

// Options configure a container. The zero value selects codec.Default and
// a no-op logger.
type Options struct {
	Codec  codec.Codec
	Logger *zap.Logger
}

func (opt Options) codec() codec.Codec {
	if opt.Codec != nil {
		return opt.Codec
	}
	return codec.Default
}

func (opt Options) logger() *zap.Logger {
	if opt.Logger != nil {
		return opt.Logger
	}
	return zap.NewNop()
}
