package codec

import (
	"fmt"

	"github.com/linkedin/goavro/v2"

	"github.com/birdayz/rle/pkg/rle"
)

// RunsSchema is the Avro schema of an encoded run sequence.
const RunsSchema = `{
  "type": "array",
  "items": {
    "type": "record",
    "name": "Run",
    "namespace": "rle",
    "fields": [
      {"name": "char", "type": "string"},
      {"name": "count", "type": "long"}
    ]
  }
}`

// AvroCodec encodes runs as Avro binary data using RunsSchema.
type AvroCodec struct {
	codec *goavro.Codec
}

func NewAvroCodec() *AvroCodec {
	c, err := goavro.NewCodec(RunsSchema)
	if err != nil {
		panic(fmt.Sprintf("invalid runs schema: %v", err))
	}
	return &AvroCodec{codec: c}
}

func (a *AvroCodec) Marshal(runs []rle.Run) ([]byte, error) {
	native := make([]any, len(runs))
	for i, r := range runs {
		native[i] = map[string]any{
			"char":  string(r.Char),
			"count": int64(r.Count),
		}
	}
	return a.codec.BinaryFromNative(nil, native)
}

func (a *AvroCodec) Unmarshal(data []byte) ([]rle.Run, error) {
	native, rest, err := a.codec.NativeFromBinary(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rle.ErrInvalidEncoding, err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after avro data", rle.ErrInvalidEncoding, len(rest))
	}

	items, ok := native.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected avro value %T", rle.ErrInvalidEncoding, native)
	}
	runs := make([]rle.Run, 0, len(items))
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: run %d: unexpected avro value %T", rle.ErrInvalidEncoding, i, item)
		}
		char, _ := rec["char"].(string)
		count, _ := rec["count"].(int64)
		r, err := checkRun(i, char, count)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}
