package strutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransformations(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"reverse", Reverse, "hello", "olleh"},
		{"reverse unicode", Reverse, "aé", "éa"},
		{"title", TitleCase, "hello world from go", "Hello World From Go"},
		{"title double space", TitleCase, "a  b", "A  B"},
		{"nospace", RemoveSpaces, " H e l l o ", "Hello"},
		{"digits", DigitsOnly, "123-456-7890", "1234567890"},
		{"letters", LettersOnly, "mix3dC4se!", "mixdCse"},
		{"snake", SnakeToCamel, "foo_bar_baz", "fooBarBaz"},
		{"snake empty parts", SnakeToCamel, "_foo__bar_", "fooBar"},
		{"camel", CamelToTitle, "fooBarBaz", "Foo Bar Baz"},
		{"camel empty", CamelToTitle, "", ""},
		{"dedup", Dedup, "aa$$2wwewwsd!@@!!000jfjdhyusj", "a$2wesd!@0jfhyu"},
		{"longest", LongestWord, "Java JavaScript React ReactNative", "ReactNative"},
		{"split digits", SeparateLettersAndDigits, "abc123xyz", "abc 123 xyz"},
		{"split digits symbols", SeparateLettersAndDigits, "a-1", "a-1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.fn(tc.in))
		})
	}
}

func TestIsPalindrome(t *testing.T) {
	require.True(t, IsPalindrome("Racecar"))
	require.True(t, IsPalindrome(""))
	require.False(t, IsPalindrome("hello"))
}

func TestCountVowels(t *testing.T) {
	require.Equal(t, 3, CountVowels("Hello World"))
	require.Equal(t, 0, CountVowels(""))
}

func TestOps(t *testing.T) {
	all := Ops()
	require.Len(t, all, len(ops))
	for i := 1; i < len(all); i++ {
		require.Less(t, all[i-1].Name, all[i].Name)
	}

	byName := map[string]Op{}
	for _, op := range all {
		byName[op.Name] = op
	}
	require.Equal(t, "true", byName["palindrome"].Fn("level"))
	require.Equal(t, "4", byName["vowels"].Fn("audio"))
}
