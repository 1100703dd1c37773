package rle

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxDecodedLen bounds the output of Decode, and of a Decoder without MaxLen,
// in bytes.
const MaxDecodedLen = 1 << 30

// Run is a maximal repetition of one character.
type Run struct {
	Char  rune
	Count int
}

func (r Run) String() string {
	var b strings.Builder
	writeRun(&b, r)
	return b.String()
}

// Encode replaces every run of s with the character followed by the decimal
// length of the run. Digits contained in s are copied as they are and make the
// result ambiguous to Decode. s is read as UTF-8: every invalid byte counts as
// U+FFFD, so such input does not survive a round trip. Encoder rejects it.
func Encode(s string) string {
	var (
		b       strings.Builder
		cur     Run
		started bool
	)
	for _, c := range s {
		if started && c == cur.Char {
			cur.Count++
			continue
		}
		if started {
			writeRun(&b, cur)
		}
		cur, started = Run{Char: c, Count: 1}, true
	}
	// The last run is still open after the loop.
	if started {
		writeRun(&b, cur)
	}
	return b.String()
}

// Runs partitions s into its runs, left to right. Adjacent runs never share a
// character.
func Runs(s string) []Run {
	var runs []Run
	for _, c := range s {
		if n := len(runs); n > 0 && runs[n-1].Char == c {
			runs[n-1].Count++
			continue
		}
		runs = append(runs, Run{Char: c, Count: 1})
	}
	return runs
}

// Format serializes runs the same way Encode does. Runs are written as given;
// they are not merged.
func Format(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		writeRun(&b, r)
	}
	return b.String()
}

// Parse reads an encoded string back into its runs. The whole input must match
// (non-digit character, one or more digits)*; the first violation is returned
// as an *InvalidEncodingError.
func Parse(s string) ([]Run, error) {
	var (
		runs    []Run
		cur     rune
		charAt  int
		pending bool
		digits  = -1 // offset of the first digit of the pending count
	)

	closeRun := func(end int) error {
		if digits < 0 {
			return invalid(charAt, "character %q has no count", cur)
		}
		n, err := strconv.Atoi(s[digits:end])
		if err != nil {
			return invalid(digits, "count %q out of range", s[digits:end])
		}
		runs = append(runs, Run{Char: cur, Count: n})
		return nil
	}

	for i, c := range s {
		if isDigit(c) {
			if !pending {
				return nil, invalid(i, "count without a preceding character")
			}
			if digits < 0 {
				digits = i
			}
			continue
		}
		if pending {
			if err := closeRun(i); err != nil {
				return nil, err
			}
		}
		cur, charAt, pending, digits = c, i, true, -1
	}
	if pending {
		if err := closeRun(len(s)); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Expand writes each run's character Count times. It panics if the result
// would not fit in memory; use DecodedLen to check first.
func Expand(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		if r.Count <= 0 {
			continue
		}
		b.WriteString(strings.Repeat(string(r.Char), r.Count))
	}
	return b.String()
}

// DecodedLen returns the size in bytes of Expand(runs). It fails with
// ErrTooLarge when the size exceeds MaxDecodedLen.
func DecodedLen(runs []Run) (int, error) {
	return decodedLen(runs, MaxDecodedLen)
}

// total never exceeds limit, so limit-total cannot overflow.
func decodedLen(runs []Run, limit int) (int, error) {
	total := 0
	for _, r := range runs {
		if r.Count <= 0 {
			continue
		}
		width := len(string(r.Char))
		if r.Count > (limit-total)/width {
			return 0, fmt.Errorf("%w: exceeds limit of %d bytes", ErrTooLarge, limit)
		}
		total += r.Count * width
	}
	return total, nil
}

// Decode reverses Encode.
func Decode(s string) (string, error) {
	runs, err := Parse(s)
	if err != nil {
		return "", err
	}
	if _, err := DecodedLen(runs); err != nil {
		return "", err
	}
	return Expand(runs), nil
}

// HasDigits reports whether s contains an ASCII digit, in which case
// Decode(Encode(s)) is not guaranteed to return s.
func HasDigits(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// firstInvalidUTF8 returns the offset of the first byte of s that is not part
// of a valid UTF-8 sequence, or -1.
func firstInvalidUTF8(s string) int {
	for i, c := range s {
		if c == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return -1
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func writeRun(b *strings.Builder, r Run) {
	b.WriteRune(r.Char)
	b.WriteString(strconv.Itoa(r.Count))
}
