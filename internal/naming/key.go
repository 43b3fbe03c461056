package naming

import (
	"strings"

	"golang.org/x/text/cases"
)

// Clean trims s and collapses internal whitespace runs to a single space.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Key is the case-insensitive identity of an item or shop name.
// Two names with equal keys are the same item.
func Key(s string) string {
	return cases.Fold().String(Clean(s))
}

// Equal reports whether a and b name the same item.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
