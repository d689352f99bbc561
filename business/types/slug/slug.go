// Package slug represents the url friendly identifier of a tenant.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the longest slug accepted. It keeps slugs usable as a DNS label.
const MaxLength = 63

// Slug represents a normalized tenant slug.
type Slug struct {
	value string
}

// String returns the value of the slug.
func (s Slug) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Slug) Equal(s2 Slug) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Slug) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// IsZero reports whether the slug is empty.
func (s Slug) IsZero() bool {
	return s.value == ""
}

// =============================================================================

var slugRegEx = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var lower = cases.Lower(language.Und)

// Normalize trims the value, folds diacritics and lowercases it. It does not
// validate the result.
func Normalize(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, strings.TrimSpace(value))
	if err != nil {
		folded = strings.TrimSpace(value)
	}

	return lower.String(folded)
}

// Parse normalizes the value and returns a slug if the result complies with
// the rules for a slug.
func Parse(value string) (Slug, error) {
	v := Normalize(value)

	if len(v) == 0 || len(v) > MaxLength {
		return Slug{}, fmt.Errorf("invalid slug %q: must be between 1 and %d characters", value, MaxLength)
	}

	if !slugRegEx.MatchString(v) {
		return Slug{}, fmt.Errorf("invalid slug %q: only lowercase letters, digits and single hyphens", value)
	}

	return Slug{v}, nil
}

// MustParse parses the string value and returns a slug if the value complies
// with the rules for a slug. If an error occurs the function panics.
func MustParse(value string) Slug {
	s, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return s
}

// FromName derives a slug from a display name, turning every run of
// characters not allowed in a slug into a single hyphen.
func FromName(value string) (Slug, error) {
	v := Normalize(value)

	var b strings.Builder
	sep := true
	for _, r := range v {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			sep = false
		case !sep:
			b.WriteByte('-')
			sep = true
		}
	}

	out := strings.TrimSuffix(b.String(), "-")
	if len(out) > MaxLength {
		out = strings.TrimSuffix(out[:MaxLength], "-")
	}

	return Parse(out)
}
