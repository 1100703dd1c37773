// Package strutil contains small string transformations.
package strutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// IsPalindrome reports whether s reads the same in both directions, ignoring
// case.
func IsPalindrome(s string) bool {
	lower := strings.ToLower(s)
	return lower == Reverse(lower)
}

// CountVowels counts the ASCII vowels in s, ignoring case.
func CountVowels(s string) int {
	n := 0
	for _, c := range strings.ToLower(s) {
		if strings.ContainsRune("aeiou", c) {
			n++
		}
	}
	return n
}

// TitleCase upper-cases the first letter of every space separated word.
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func RemoveSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// DigitsOnly drops everything but ASCII digits.
func DigitsOnly(s string) string {
	return keep(s, isDigit)
}

// LettersOnly drops everything but ASCII letters.
func LettersOnly(s string) string {
	return keep(s, isLetter)
}

// SnakeToCamel converts foo_bar_baz to fooBarBaz. Empty segments are dropped.
func SnakeToCamel(s string) string {
	var b strings.Builder
	first := true
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		if first {
			b.WriteString(part)
			first = false
			continue
		}
		b.WriteString(upperFirst(part))
	}
	return b.String()
}

// CamelToTitle converts fooBarBaz to Foo Bar Baz.
func CamelToTitle(s string) string {
	var b strings.Builder
	for i, c := range s {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(c))
		case unicode.IsUpper(c):
			b.WriteByte(' ')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Dedup keeps the first occurrence of every rune.
func Dedup(s string) string {
	seen := make(map[rune]struct{})
	var b strings.Builder
	for _, c := range s {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		b.WriteRune(c)
	}
	return b.String()
}

// LongestWord returns the first of the longest space separated words.
func LongestWord(s string) string {
	longest := ""
	for _, w := range strings.Split(s, " ") {
		if utf8.RuneCountInString(w) > utf8.RuneCountInString(longest) {
			longest = w
		}
	}
	return longest
}

// SeparateLettersAndDigits inserts a space wherever a letter is followed by a
// digit or a digit by a letter: abc123xyz becomes abc 123 xyz.
func SeparateLettersAndDigits(s string) string {
	var (
		b    strings.Builder
		prev rune
	)
	for i, c := range s {
		if i > 0 && ((isLetter(prev) && isDigit(c)) || (isDigit(prev) && isLetter(c))) {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
		prev = c
	}
	return b.String()
}

func upperFirst(w string) string {
	c, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return w
	}
	return string(unicode.ToUpper(c)) + w[size:]
}

func keep(s string, pred func(rune) bool) string {
	return strings.Map(func(c rune) rune {
		if pred(c) {
			return c
		}
		return -1
	}, s)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
