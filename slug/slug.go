// Package slug derives URL-safe identifiers from display names and resolves
// collisions against a set of slugs that are already taken.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// disallowed matches anything that is not a word character, space or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9_\s-]`)
	// separators collapses runs of whitespace and hyphens.
	separators = regexp.MustCompile(`[-\s]+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Café au Lait, 2026!" -> "cafe-au-lait-2026"
func Generate(s string) string {
	result := toASCII(s)
	result = strings.ToLower(result)
	result = disallowed.ReplaceAllString(result, "")
	result = strings.TrimSpace(result)
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-_")
}

// Next returns base if it is not in taken, otherwise the first of base-1,
// base-2, ... that is free. With maxLen > 0 every result fits in maxLen
// bytes; base is shortened to make room for the suffix.
func Next(base string, taken map[string]struct{}, maxLen int) string {
	if maxLen > 0 {
		base = Truncate(base, maxLen)
	}
	if _, used := taken[base]; !used {
		return base
	}
	for n := 1; ; n++ {
		suffix := "-" + strconv.Itoa(n)
		stem := base
		if maxLen > 0 && len(stem)+len(suffix) > maxLen {
			stem = Truncate(base, maxLen-len(suffix))
		}
		candidate := stem + suffix
		if _, used := taken[candidate]; !used {
			return candidate
		}
	}
}

// Truncate cuts a slug to at most n bytes without leaving a trailing
// separator. Slugs are ASCII, so byte and rune counts agree.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	return strings.TrimRight(s[:n], "-_")
}

// Base returns the slug for name, or fallback when name has no usable characters.
func Base(name, fallback string) string {
	if s := Generate(name); s != "" {
		return s
	}
	return fallback
}

func toASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}
