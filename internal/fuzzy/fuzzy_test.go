package fuzzy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Potion", "potion"},
		{"ÉLIXIR", "elixir"},
		{"Crème Brûlée", "creme brulee"},
		{"ﬁre", "fire"}, // compatibility ligature
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"potoin", "potion", 2},
		{"Potion", "POTION", 0},
		{"café", "cafe", 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.a, tt.b), func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestScoreText(t *testing.T) {
	assert.Equal(t, ScoreExact, ScoreText("potion", "potion"))
	assert.Equal(t, ScorePrefix, ScoreText("pot", "potion"))
	assert.Equal(t, ScoreSubstring, ScoreText("tio", "potion"))
	// distance 2 over length 6: round(70 * 4/6) = 47
	assert.Equal(t, 47, ScoreText("potoin", "potion"))
	// empty query is a prefix of everything
	assert.Equal(t, ScorePrefix, ScoreText("", "potion"))
	assert.Equal(t, ScoreExact, ScoreText("", ""))
}

func TestSuggest_TypoFindsItem(t *testing.T) {
	catalog := []string{"Potion", "Sword", "Shield", "Elixir"}

	got := Strings("potoin", catalog, 5)

	require.NotEmpty(t, got)
	assert.Equal(t, "Potion", got[0])
}

func TestSuggest_OrderingAndTieBreak(t *testing.T) {
	catalog := []string{"Sword of Dawn", "Sword", "Broadsword", "swordfish"}

	got := Strings("sword", catalog, 10)

	// exact first, then prefixes alphabetically by normalized text, then substring
	assert.Equal(t, []string{"Sword", "Sword of Dawn", "swordfish", "Broadsword"}, got)
}

func TestSuggest_DiscardsWeakMatches(t *testing.T) {
	got := Strings("zzzzzz", []string{"Potion", "Elixir"}, 5)
	assert.Empty(t, got)
}

func TestSuggest_RespectsLimit(t *testing.T) {
	catalog := make([]string, 40)
	for i := range catalog {
		catalog[i] = fmt.Sprintf("Potion %02d", i)
	}

	assert.Len(t, Strings("potion", catalog, 3), 3)
	assert.Len(t, Strings("potion", catalog, 0), DefaultLimit)
	assert.Len(t, Strings("potion", catalog, AutocompleteLimit), AutocompleteLimit)
}

func TestSuggest_GenericItems(t *testing.T) {
	type item struct {
		Name  string
		Price int64
	}
	items := []item{{"Health Potion", 50}, {"Mana Potion", 40}, {"Shield", 100}}

	got := Suggest("mana", items, func(i item) string { return i.Name }, 1)

	require.Len(t, got, 1)
	assert.Equal(t, int64(40), got[0].Price)
}

func TestRank_ExposesScores(t *testing.T) {
	ranked := Rank("elixir", []string{"Élixir", "Elixir of Life"}, func(s string) string { return s })

	require.Len(t, ranked, 2)
	assert.Equal(t, ScoreExact, ranked[0].Score)
	assert.Equal(t, "Élixir", ranked[0].Item)
	assert.Equal(t, ScorePrefix, ranked[1].Score)
}

func BenchmarkSuggest(b *testing.B) {
	catalog := make([]string, 200)
	for i := range catalog {
		catalog[i] = fmt.Sprintf("Catalog Item Number %d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Strings("catalog itme 42", catalog, AutocompleteLimit)
	}
}
