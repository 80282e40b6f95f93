// Package slug derives URL-safe identifiers from translated titles and
// resolves collisions against the slugs already present in a collection.
package slug

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
	validSlug    = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Generate normalises text into a lowercase hyphenated slug. Titles written
// entirely in non-Latin scripts collapse to an empty string; callers are
// expected to use Fallback in that case.
func Generate(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// MakeUnique returns base unchanged when it is absent from existing, otherwise
// the first of base-1, base-2, ... that is absent. The result is only unique
// with respect to the supplied set; the database unique index is the backstop
// for concurrent creates that read the same set.
func MakeUnique(base string, existing map[string]struct{}) string {
	if _, taken := existing[base]; !taken {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}

// IsValid reports whether s is a well-formed slug: lowercase alphanumeric
// segments joined by single hyphens.
func IsValid(s string) bool {
	return validSlug.MatchString(s)
}

// Fallback builds a random slug for the given entity kind. Used when Generate
// produces an empty string, which happens for titles without Latin letters or
// digits.
func Fallback(kind string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", kind, id[:8])
}
