// Package scoring implements the fuzzy relevance scorer used to rank
// completion candidates against the live query.
package scoring

import (
	"strings"
	"unicode"
)

// Value is the numeric relevance score of a candidate. Higher is better.
type Value uint32

// Settings holds the weights used by Score. All weights are non-negative;
// raising any of them never lowers a candidate's score.
type Settings struct {
	// LetterMatch is the flat credit for every matched character.
	LetterMatch Value
	// SubsequentBonus is extra credit when a matched character immediately
	// follows the previously matched character in the candidate.
	SubsequentBonus Value
	// WordStartBonus is extra credit when a matched character falls on a
	// word boundary of the candidate.
	WordStartBonus Value
}

// DefaultSettings are the weights used when no configuration overrides them.
func DefaultSettings() Settings {
	return Settings{
		LetterMatch:     1,
		WordStartBonus:  2,
		SubsequentBonus: 3,
	}
}

// Match reports whether query is a subsequence of candidate,
// case-insensitively. Whitespace in the query is ignored, so a query
// containing spaces still matches candidates without them. An empty query
// matches everything.
func Match(query, candidate string) bool {
	rest := strings.ToLower(candidate)
	for _, q := range strings.ToLower(query) {
		if unicode.IsSpace(q) {
			continue
		}
		i := strings.IndexRune(rest, q)
		if i < 0 {
			return false
		}
		rest = rest[i+len(string(q)):]
	}
	return true
}

// Score computes the relevance of candidate for query under the given
// weights. The result is 0 when either string is empty, when the query is
// longer than the candidate, or when no character of the query matches.
//
// The score is the best value over all subsequence alignments of the query
// within the candidate, computed by dynamic programming over case-folded
// characters. For each (query index i, candidate index j) two values are
// tracked: the best score if candidate[j] is used as the match for query[i]
// ("take"), and the best score if it is not ("leave"). Only the previous
// query row is needed, so memory stays linear in the candidate length.
func Score(candidate, query string, s Settings) Value {
	q := foldQuery(query)
	c := []rune(strings.ToLower(candidate))
	m, n := len(q), len(c)
	if m == 0 || n == 0 || m > n {
		return 0
	}

	starts := wordStarts(candidate)

	prevTake := make([]Value, n)
	prevLeave := make([]Value, n)
	curTake := make([]Value, n)
	curLeave := make([]Value, n)

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			curTake[j] = 0
			if q[i] == c[j] {
				var fromPrev Value
				if i > 0 && j > 0 {
					var carry Value
					if prevTake[j-1] > 0 {
						carry = prevTake[j-1] + s.SubsequentBonus
					}
					fromPrev = max(carry, prevLeave[j-1])
				}
				curTake[j] = s.LetterMatch + fromPrev
				if starts[j] {
					curTake[j] += s.WordStartBonus
				}
			}
			if j == 0 {
				curLeave[j] = 0
			} else {
				curLeave[j] = max(curTake[j-1], curLeave[j-1])
			}
		}
		prevTake, curTake = curTake, prevTake
		prevLeave, curLeave = curLeave, prevLeave
	}

	return max(prevTake[n-1], prevLeave[n-1])
}

// foldQuery lowercases the query and drops whitespace, mirroring Match.
func foldQuery(query string) []rune {
	out := make([]rune, 0, len(query))
	for _, r := range strings.ToLower(query) {
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// wordStarts marks the candidate positions that begin a word: an
// alphanumeric rune at index 0, or an alphanumeric rune directly after a
// non-alphanumeric one. Runs of separators (spaces, punctuation, path
// separators) therefore mark the next letter as a boundary.
func wordStarts(candidate string) []bool {
	runes := []rune(candidate)
	starts := make([]bool, len(runes))
	for i, r := range runes {
		if !isWordRune(r) {
			continue
		}
		starts[i] = i == 0 || !isWordRune(runes[i-1])
	}
	return starts
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
