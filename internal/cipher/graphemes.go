package cipher

import (
	"strings"

	"github.com/rivo/uniseg"
)

// graphemeFilter validates text cluster by cluster, keeping the clusters
// accepted by keep for the suggestion.
func graphemeFilter(text string, keep func(cluster string) bool) ValidationResult {
	var (
		b   strings.Builder
		bad bool
	)
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if keep(cluster) {
			b.WriteString(cluster)
			continue
		}
		bad = true
	}
	if !bad {
		return valid()
	}
	return ValidationResult{Suggestion: b.String()}
}

// mapGraphemes rewrites each grapheme cluster through fn.
func mapGraphemes(text string, fn func(cluster string) string) string {
	var b strings.Builder
	b.Grow(len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		b.WriteString(fn(g.Str()))
	}
	return b.String()
}
