/*
Package rle implements a textual run-length encoding.

Each maximal run of an identical character is written as the character
followed by the decimal length of the run:

	aabbbcccc  <->  a2b3c4
	xxxxxxxxxxxx  <->  x12

Characters are runes; counts are ASCII decimal digits. Literal digits in the
input are not escaped, so the round trip Decode(Encode(s)) == s only holds for
inputs without ASCII digits. Use HasDigits to detect the ambiguous case.

All functions are pure and safe for concurrent use.
*/
package rle
