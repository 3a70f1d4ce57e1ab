package utils

import (
	"regexp"
	"strings"
)

// MaxSlugLength bounds the slug part of artifact filenames
const MaxSlugLength = 50

// FallbackSlug is used when a name has nothing left after normalization
const FallbackSlug = "unknown_product"

var (
	whitespaceRegex = regexp.MustCompile(`\s`)
	disallowedRegex = regexp.MustCompile(`[^A-Za-z0-9 _-]`)
	separatorRegex  = regexp.MustCompile(`[ _-]+`)
)

// NormalizeName derives the filesystem-safe slug of a product name:
// characters outside [A-Za-z0-9 _-] are dropped, runs of spaces, hyphens and
// underscores become one underscore, the result is lower-cased and cut to
// MaxSlugLength. Example: "Custom Father's Day Photo Shirt for Dad" ->
// "custom_fathers_day_photo_shirt_for_dad".
func NormalizeName(name string) string {
	s := whitespaceRegex.ReplaceAllString(name, " ")
	s = disallowedRegex.ReplaceAllString(s, "")
	s = separatorRegex.ReplaceAllString(s, "_")
	s = strings.Trim(strings.ToLower(s), "_")

	// input is ASCII at this point, byte truncation is safe
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "_")
	}
	if s == "" {
		return FallbackSlug
	}
	return s
}
