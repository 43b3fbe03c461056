// Package fuzzy ranks candidate strings against a free-text query for
// "did you mean" suggestions and autocomplete.
package fuzzy

import (
	"math"
	"sort"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Score tiers
const (
	ScoreExact     = 100
	ScorePrefix    = 90
	ScoreSubstring = 80
	ScoreDistance  = 70

	// MinScore is the highest score that is still discarded
	MinScore = 20

	// DefaultLimit is used when callers pass a non-positive limit
	DefaultLimit = 5

	// AutocompleteLimit is the most choices a chat platform accepts per autocomplete response
	AutocompleteLimit = 25
)

// Match is a scored candidate.
type Match[T any] struct {
	Item  T
	Score int
	key   string
}

// Normalize lower-cases s, decomposes it (NFKD) and strips combining marks,
// so "Élixir" and "elixir" compare equal.
func Normalize(s string) string {
	t := transform.Chain(
		cases.Lower(language.Und),
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Levenshtein returns the edit distance between the normalized forms of a and b.
func Levenshtein(a, b string) int {
	return distance([]rune(Normalize(a)), []rune(Normalize(b)))
}

func distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// ScoreText scores an already-normalized candidate against an already-normalized query.
func ScoreText(query, candidate string) int {
	q, c := []rune(query), []rune(candidate)

	tier := 0
	switch {
	case query == candidate:
		tier = ScoreExact
	case hasPrefix(c, q):
		tier = ScorePrefix
	case contains(c, q):
		tier = ScoreSubstring
	}

	longest := max(len(q), len(c), 1)
	ratio := 1 - float64(distance(q, c))/float64(longest)
	return max(tier, int(math.Round(ratio*ScoreDistance)))
}

// Rank scores every item and returns those above MinScore, best first.
// Ties are broken by normalized text ascending.
func Rank[T any](query string, items []T, text func(T) string) []Match[T] {
	q := Normalize(query)

	matches := make([]Match[T], 0, len(items))
	for _, item := range items {
		key := Normalize(text(item))
		score := ScoreText(q, key)
		if score <= MinScore {
			continue
		}
		matches = append(matches, Match[T]{Item: item, Score: score, key: key})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].key < matches[j].key
	})
	return matches
}

// Suggest returns at most limit items ranked by similarity to query.
func Suggest[T any](query string, items []T, text func(T) string, limit int) []T {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := Rank(query, items, text)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]T, len(ranked))
	for i, m := range ranked {
		out[i] = m.Item
	}
	return out
}

// Strings is Suggest for plain string candidates.
func Strings(query string, candidates []string, limit int) []string {
	return Suggest(query, candidates, func(s string) string { return s }, limit)
}

func hasPrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}

func contains(s, sub []rune) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if hasPrefix(s[i:], sub) {
			return true
		}
	}
	return false
}
