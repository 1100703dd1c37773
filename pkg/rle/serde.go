package rle

import "fmt"

// Encoder is the byte oriented form of Encode. Input that is not valid UTF-8
// fails with ErrInvalidUTF8.
type Encoder struct{}

func (Encoder) Encode(in []byte) ([]byte, error) {
	s := string(in)
	if err := ValidateInput(s); err != nil {
		return nil, err
	}
	return []byte(Encode(s)), nil
}

// ValidateInput reports an error wrapping ErrInvalidUTF8 when s cannot be
// encoded without loss.
func ValidateInput(s string) error {
	if off := firstInvalidUTF8(s); off >= 0 {
		return fmt.Errorf("%w: invalid byte 0x%02x at offset %d", ErrInvalidUTF8, s[off], off)
	}
	return nil
}

// Decoder is the byte oriented form of Decode. A positive MaxLen bounds the
// size of the decoded output in bytes and replaces MaxDecodedLen.
type Decoder struct {
	MaxLen int
}

func (d Decoder) Decode(in []byte) ([]byte, error) {
	runs, err := Parse(string(in))
	if err != nil {
		return nil, err
	}
	return d.Expand(runs)
}

// Expand checks the size limit before expanding runs.
func (d Decoder) Expand(runs []Run) ([]byte, error) {
	limit := MaxDecodedLen
	if d.MaxLen > 0 {
		limit = d.MaxLen
	}
	if _, err := decodedLen(runs, limit); err != nil {
		return nil, err
	}
	return []byte(Expand(runs)), nil
}
