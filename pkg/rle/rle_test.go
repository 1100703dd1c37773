package rle

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"", ""},
		{"a", "a1"},
		{"aaaaaaa", "a7"},
		{"aabbbcccc", "a2b3c4"},
		{strings.Repeat("x", 12), "x12"},
		{"abab", "a1b1a1b1"},
		{"ééß", "é2ß1"},
		{"  !", " 2!1"},
	} {
		require.Equal(t, tc.want, Encode(tc.in), "Encode(%q)", tc.in)
	}
}

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"", ""},
		{"a1", "a"},
		{"a2b3c4", "aabbbcccc"},
		{"x12", strings.Repeat("x", 12)},
		{"@5Q2D3s4", "@@@@@QQDDDssss"},
		{"é2ß1", "ééß"},
		{"a0b2", "bb"},
		{"a02", "aa"},
	} {
		got, err := Decode(tc.in)
		require.NoError(t, err, "Decode(%q)", tc.in)
		require.Equal(t, tc.want, got, "Decode(%q)", tc.in)
	}
}

func TestDecode_InvalidEncoding(t *testing.T) {
	for _, tc := range []struct {
		in     string
		offset int
	}{
		{"5", 0},
		{"a", 0},
		{"ab1", 0},
		{"a1b", 2},
		{"a12b3c", 5},
		{"a1b99999999999999999999999", 3},
	} {
		_, err := Decode(tc.in)
		require.Error(t, err, "Decode(%q)", tc.in)
		require.ErrorIs(t, err, ErrInvalidEncoding)

		var ie *InvalidEncodingError
		require.True(t, errors.As(err, &ie))
		require.Equal(t, tc.offset, ie.Offset, "Decode(%q): %v", tc.in, err)
	}
}

func TestRuns(t *testing.T) {
	got := Runs("aabbbcccca")
	want := []Run{{'a', 2}, {'b', 3}, {'c', 4}, {'a', 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Runs mismatch (-want +got):\n%s", diff)
	}
	require.Nil(t, Runs(""))
}

func TestParse(t *testing.T) {
	got, err := Parse("a2b10c1")
	require.NoError(t, err)
	want := []Run{{'a', 2}, {'b', 10}, {'c', 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_MatchesEncode(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", "zzzzzzzzzzzzzzzzzzz"} {
		require.Equal(t, Encode(s), Format(Runs(s)))
	}
}

func TestRoundTrip(t *testing.T) {
	const alphabet = "abcxyz !?é_"
	letters := []rune(alphabet)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		var b strings.Builder
		for n := rng.IntN(40); n > 0; n-- {
			c := letters[rng.IntN(len(letters))]
			for k := rng.IntN(15) + 1; k > 0; k-- {
				b.WriteRune(c)
			}
		}
		s := b.String()
		require.False(t, HasDigits(s))

		got, err := Decode(Encode(s))
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestEncodeDecode_Idempotent(t *testing.T) {
	for _, e := range []string{"a3b1c9", "x1", "é2a5 3"} {
		decoded, err := Decode(e)
		require.NoError(t, err)
		require.Equal(t, e, Encode(decoded))
	}
}

func TestDigitsAreAmbiguous(t *testing.T) {
	require.True(t, HasDigits("a1"))
	require.False(t, HasDigits("abc"))

	enc := Encode("a1")
	require.Equal(t, "a111", enc)

	got, err := Decode(enc)
	require.NoError(t, err)
	require.NotEqual(t, "a1", got)
	require.Len(t, got, 111)
}

func TestDecodedLen(t *testing.T) {
	n, err := DecodedLen([]Run{{'a', 3}, {'é', 2}, {'b', 0}})
	require.NoError(t, err)
	require.Equal(t, 3+4, n)

	_, err = DecodedLen([]Run{{'a', math.MaxInt}, {'b', 1}})
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestDecoder_MaxLen(t *testing.T) {
	d := Decoder{MaxLen: 3}

	out, err := d.Decode([]byte("a3"))
	require.NoError(t, err)
	require.Equal(t, "aaa", string(out))

	_, err = d.Decode([]byte("a4"))
	require.ErrorIs(t, err, ErrTooLarge)
	require.NotErrorIs(t, err, ErrInvalidEncoding)

	_, err = d.Decode([]byte("4"))
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestDecode_HugeCount(t *testing.T) {
	for _, in := range []string{"a99999999999999999", "a1073741825", "a536870912b536870913"} {
		_, err := Decode(in)
		require.ErrorIs(t, err, ErrTooLarge, in)
		require.NotErrorIs(t, err, ErrInvalidEncoding, in)

		_, err = Decoder{}.Decode([]byte(in))
		require.ErrorIs(t, err, ErrTooLarge, in)
	}

	n, err := DecodedLen([]Run{{'a', MaxDecodedLen}})
	require.NoError(t, err)
	require.Equal(t, MaxDecodedLen, n)

	// Two-byte runes count twice.
	_, err = DecodedLen([]Run{{'é', MaxDecodedLen/2 + 1}})
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = Decoder{MaxLen: MaxDecodedLen + 1}.Decode([]byte("é1"))
	require.NoError(t, err)
}

func TestEncoder_InvalidUTF8(t *testing.T) {
	_, err := Encoder{}.Encode([]byte("ab\xff\xfe"))
	require.ErrorIs(t, err, ErrInvalidUTF8)
	require.ErrorContains(t, err, "offset 2")

	// Distinct inputs would otherwise share one encoding.
	require.Equal(t, Encode("\xff\xfe"), Encode("\uFFFD\uFFFD"))

	out, err := Encoder{}.Encode([]byte("\uFFFD\uFFFDé"))
	require.NoError(t, err)
	require.Equal(t, "\uFFFD2é1", string(out))

	require.NoError(t, ValidateInput(""))
	require.ErrorIs(t, ValidateInput("x\xc3"), ErrInvalidUTF8)
}

func TestEncoder(t *testing.T) {
	out, err := Encoder{}.Encode([]byte("aabbbcccc"))
	require.NoError(t, err)
	require.Equal(t, "a2b3c4", string(out))
}

func TestRunString(t *testing.T) {
	require.Equal(t, "x12", Run{Char: 'x', Count: 12}.String())
}
