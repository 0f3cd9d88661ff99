// Package slug turns human-readable titles into URL-safe identifiers and
// resolves collisions with an incrementing numeric suffix.
//
//	slug.Make("Board Meeting", 200)       // "board-meeting"
//	slug.Make("Café résumé", 200)         // "cafe-resume"
//
// Unique checks candidates through a caller-supplied ExistsFunc, so the
// package has no knowledge of the storage layer. The check is not atomic:
// two concurrent callers may both receive the same candidate, and the
// storage layer's unique index decides which write wins.
package slug

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxLength matches the width of the slug columns.
const DefaultMaxLength = 200

// maxAttempts bounds the suffix loop so a misbehaving ExistsFunc cannot spin forever.
const maxAttempts = 10000

// ErrExhausted is returned when no free candidate was found within maxAttempts.
var ErrExhausted = errors.New("slug: no free candidate")

// ExistsFunc reports whether candidate is already taken.
type ExistsFunc func(candidate string) (bool, error)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9_\s-]`)
	separators = regexp.MustCompile(`[\s-]+`)
)

// Make lowercases and transliterates s to ASCII, drops punctuation, joins
// words with single hyphens and truncates the result to maxLength runes.
// A maxLength of zero or less means DefaultMaxLength.
func Make(s string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	value := toASCII(s)
	value = strings.ToLower(value)
	value = disallowed.ReplaceAllString(value, "")
	value = separators.ReplaceAllString(value, "-")
	value = strings.Trim(value, "-_")

	return truncate(value, maxLength)
}

// Unique returns base when it is free, otherwise the first free value of
// base-1, base-2, ... . The base is shortened as needed so that every
// candidate fits in maxLength.
func Unique(base string, maxLength int, exists ExistsFunc) (string, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	base = truncate(base, maxLength)

	taken, err := exists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for counter := 1; counter <= maxAttempts; counter++ {
		suffix := "-" + strconv.Itoa(counter)
		candidate := truncate(base, maxLength-len(suffix)) + suffix

		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w for %q", ErrExhausted, base)
}

// Generate slugifies text and makes it unique. When text has no usable
// characters, fallback is slugified instead so the result is never empty.
func Generate(text, fallback string, maxLength int, exists ExistsFunc) (string, error) {
	base := Make(text, maxLength)
	if base == "" {
		base = Make(fallback, maxLength)
	}
	if base == "" {
		base = "item"
	}
	return Unique(base, maxLength, exists)
}

func toASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

func truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(value) <= limit {
		return value
	}
	return strings.TrimRight(value[:limit], "-_")
}
