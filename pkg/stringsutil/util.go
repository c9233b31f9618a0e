package stringsutil

import (
	"regexp"
	"strings"
)

var (
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9]+`)
)

// Humanize turns a CamelCase, snake_case or kebab-case identifier into
// lower-cased space-separated words.
func Humanize(name string) string {
	s := camelBoundary.ReplaceAllString(name, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.TrimSpace(strings.ToLower(s))
}

// Slugify collapses an identifier into a URL-safe token: lower-cased,
// with every run of non-alphanumeric characters replaced by a single dash.
func Slugify(name string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}

	return result
}
