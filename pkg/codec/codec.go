package codec

import (
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/birdayz/rle/pkg/rle"
)

// Codec converts a run sequence to and from a wire format.
type Codec interface {
	Marshal(runs []rle.Run) ([]byte, error)
	Unmarshal(data []byte) ([]rle.Run, error)
}

var codecs = map[string]Codec{
	"text":    TextCodec{},
	"json":    JSONCodec{},
	"msgpack": MsgpackCodec{},
	"avro":    NewAvroCodec(),
}

// ForName returns the codec registered under name.
func ForName(name string) (Codec, error) {
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q, must be one of: %v", name, Names())
	}
	return c, nil
}

// Names lists the registered codecs in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TextCodec is the a2b3c4 form produced by rle.Encode.
type TextCodec struct{}

func (TextCodec) Marshal(runs []rle.Run) ([]byte, error) {
	return []byte(rle.Format(runs)), nil
}

func (TextCodec) Unmarshal(data []byte) ([]rle.Run, error) {
	return rle.Parse(string(data))
}

// WireRun is the structured representation shared by the json and msgpack
// codecs.
type WireRun struct {
	Char  string `json:"char" msgpack:"char"`
	Count int    `json:"count" msgpack:"count"`
}

// JSONCodec encodes runs as [{"char":"a","count":2},...].
type JSONCodec struct{}

func (JSONCodec) Marshal(runs []rle.Run) ([]byte, error) {
	return json.Marshal(toWire(runs))
}

func (JSONCodec) Unmarshal(data []byte) ([]rle.Run, error) {
	var wire []WireRun
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", rle.ErrInvalidEncoding, err)
	}
	return fromWire(wire)
}

func toWire(runs []rle.Run) []WireRun {
	wire := make([]WireRun, len(runs))
	for i, r := range runs {
		wire[i] = WireRun{Char: string(r.Char), Count: r.Count}
	}
	return wire
}

func fromWire(wire []WireRun) ([]rle.Run, error) {
	runs := make([]rle.Run, 0, len(wire))
	for i, w := range wire {
		r, err := checkRun(i, w.Char, int64(w.Count))
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

// checkRun rejects runs that could not have come out of rle.Parse.
func checkRun(i int, char string, count int64) (rle.Run, error) {
	if utf8.RuneCountInString(char) != 1 {
		return rle.Run{}, fmt.Errorf("%w: run %d: char %q must be a single character", rle.ErrInvalidEncoding, i, char)
	}
	c, _ := utf8.DecodeRuneInString(char)
	if c >= '0' && c <= '9' {
		return rle.Run{}, fmt.Errorf("%w: run %d: char %q is a digit", rle.ErrInvalidEncoding, i, char)
	}
	if count < 0 || int64(int(count)) != count {
		return rle.Run{}, fmt.Errorf("%w: run %d: count %d out of range", rle.ErrInvalidEncoding, i, count)
	}
	return rle.Run{Char: c, Count: int(count)}, nil
}
