package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryScreen_Valid(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "ordinary question", query: "How do I open an account?", want: true},
		{name: "single word", query: "fees", want: true},
		{name: "repeated letter", query: "aaaa", want: false},
		{name: "repeated unit", query: "asdasdasd", want: false},
		{name: "all consonants", query: "xyzxyzxyz", want: false},
		{name: "all vowels", query: "aeiou", want: false},
		{name: "syllable chain", query: "dabajaka", want: false},
		{name: "run of four", query: "hellooooo", want: false},
		{name: "empty", query: "", want: false},
		{name: "digits only", query: "12345 !!!", want: false},
		{name: "single letters are not tokens", query: "a b c", want: false},
		{name: "function word alone", query: "no", want: true},
		{name: "one good word among noise", query: "qqqq zzzz trading", want: true},
		{name: "mixed case", query: "LOGIN Problem", want: true},
		{name: "letters glued to digits", query: "abc123", want: false},
	}

	var screen QueryScreen
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, screen.Valid(tc.query))
		})
	}
}

func TestRepeatedUnit(t *testing.T) {
	assert.True(t, repeatedUnit("abababab", 3))
	assert.True(t, repeatedUnit("zzz", 3))
	assert.False(t, repeatedUnit("abab", 3))
	assert.False(t, repeatedUnit("banana", 3))
	assert.False(t, repeatedUnit("account", 3))
}
