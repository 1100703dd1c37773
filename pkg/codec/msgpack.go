package codec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/birdayz/rle/pkg/rle"
)

// MsgpackCodec encodes runs as a msgpack array of {char, count} maps.
type MsgpackCodec struct{}

func (MsgpackCodec) Marshal(runs []rle.Run) ([]byte, error) {
	return msgpack.Marshal(toWire(runs))
}

func (MsgpackCodec) Unmarshal(data []byte) ([]rle.Run, error) {
	var wire []WireRun
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", rle.ErrInvalidEncoding, err)
	}
	return fromWire(wire)
}
