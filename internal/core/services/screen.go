package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/sercha-assist/internal/logger"
)

// queryToken matches alphabetic runs of at least two letters.
var queryToken = regexp.MustCompile(`\b[a-zA-Z]{2,}\b`)

var (
	syllableRun  = regexp.MustCompile(`^(da|ba|ja|ka|la|ma|na|pa|ra|sa|ta|wa|za){2,}$`)
	allVowels    = regexp.MustCompile(`^[aeiou]+$`)
	allConsonant = regexp.MustCompile(`^[bcdfghjklmnpqrstvwxyz]+$`)
)

// functionWords are accepted regardless of the gibberish rules.
var functionWords = map[string]struct{}{
	"i": {}, "a": {}, "is": {}, "it": {}, "to": {}, "do": {}, "go": {}, "no": {},
}

// QueryScreen decides whether a query contains at least one plausible word.
// It is used both by the index before embedding and by the answer cascade
// before any model is invoked.
type QueryScreen struct{}

// Valid reports whether at least one token of query is accepted.
func (QueryScreen) Valid(query string) bool {
	if hasWord(query) {
		return true
	}
	logger.Info("Query rejected as gibberish: %q", query)
	return false
}

// hasWord reports whether text contains at least one accepted token.
func hasWord(text string) bool {
	for _, tok := range queryToken.FindAllString(strings.ToLower(text), -1) {
		if acceptToken(tok) {
			return true
		}
	}
	return false
}

func acceptToken(tok string) bool {
	if _, ok := functionWords[tok]; ok {
		return true
	}
	if gibberish(tok) {
		return false
	}
	return distinctRunes(tok) >= 2
}

// gibberish applies the rejection patterns to a lowercase token.
func gibberish(tok string) bool {
	return hasRun(tok, 4) ||
		syllableRun.MatchString(tok) ||
		allVowels.MatchString(tok) ||
		allConsonant.MatchString(tok) ||
		repeatedUnit(tok, 3)
}

// hasRun reports whether any character repeats n or more times in a row.
func hasRun(s string, n int) bool {
	count := 0
	var prev rune = -1
	for _, r := range s {
		if r == prev {
			count++
		} else {
			prev, count = r, 1
		}
		if count >= n {
			return true
		}
	}
	return false
}

// repeatedUnit reports whether s is a shorter unit repeated at least min times,
// as in "asdasdasd".
func repeatedUnit(s string, min int) bool {
	n := len(s)
	for size := 1; size*min <= n; size++ {
		if n%size != 0 {
			continue
		}
		if strings.Repeat(s[:size], n/size) == s {
			return true
		}
	}
	return false
}

func distinctRunes(s string) int {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}
