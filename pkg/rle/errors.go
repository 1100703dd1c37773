package rle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEncoding is matched by every error returned for input that is
	// not a sequence of (character, digits) pairs.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrTooLarge is returned when the decoded output would exceed the
	// configured limit or MaxDecodedLen.
	ErrTooLarge = errors.New("decoded output too large")

	// ErrInvalidUTF8 is returned by Encoder for input that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")
)

// InvalidEncodingError reports the first malformed position of an encoded
// string.
type InvalidEncodingError struct {
	// Offset is the byte offset into the encoded input.
	Offset int
	Reason string
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("invalid encoding at offset %d: %s", e.Offset, e.Reason)
}

func (e *InvalidEncodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}

func invalid(offset int, format string, args ...any) error {
	return &InvalidEncodingError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
