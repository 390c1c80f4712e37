package mcp

import (
	"strings"
	"unicode"
)

// DashName converts a model-issued tool name from mixed-case word-joining to
// the dash-separated convention the transport expects. A dash is inserted at
// lower→upper boundaries and at upper→upper-then-lower boundaries, and the
// result is lowercased:
//
//	viewLocationGoogleMaps → view-location-google-maps
//	HTTPSProxy             → https-proxy
//
// The rename is deterministic and one-way; applying it to its own output is
// a no-op, and the output never contains uppercase characters.
func DashName(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextIsLower) {
				b.WriteRune('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
