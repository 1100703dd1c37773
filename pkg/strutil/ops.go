package strutil

import (
	"sort"
	"strconv"
)

// Op is a named transformation exposed on the command line.
type Op struct {
	Name  string
	Short string
	Fn    func(string) string
}

var ops = []Op{
	{"reverse", "Reverse the characters", Reverse},
	{"palindrome", "Print true if the text is a palindrome", func(s string) string {
		return strconv.FormatBool(IsPalindrome(s))
	}},
	{"vowels", "Count the vowels", func(s string) string {
		return strconv.Itoa(CountVowels(s))
	}},
	{"title", "Upper-case the first letter of every word", TitleCase},
	{"nospace", "Remove all spaces", RemoveSpaces},
	{"digits", "Keep only digits", DigitsOnly},
	{"letters", "Keep only letters", LettersOnly},
	{"snake-to-camel", "Convert snake_case to camelCase", SnakeToCamel},
	{"camel-to-title", "Convert camelCase to Title Case", CamelToTitle},
	{"dedup", "Keep the first occurrence of every character", Dedup},
	{"longest-word", "Print the longest word", LongestWord},
	{"split-digits", "Separate runs of letters and digits with a space", SeparateLettersAndDigits},
}

// Ops returns all operations sorted by name.
func Ops() []Op {
	out := make([]Op, len(ops))
	copy(out, ops)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
