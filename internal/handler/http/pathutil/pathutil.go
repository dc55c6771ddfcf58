// Package pathutil provides helpers for extracting IDs from URL paths and
// normalizing dynamic paths for metrics labels.
package pathutil

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID removes prefix from path and parses the remainder as a positive
// int64. ExtractID("/articles/123", "/articles/") returns 123.
func ExtractID(path, prefix string) (int64, error) {
	idStr := strings.TrimPrefix(path, prefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// pathPatterns maps dynamic routes to stable templates. Evaluated in order.
var pathPatterns = []struct {
	pattern  *regexp.Regexp
	template string
}{
	{regexp.MustCompile(`^/articles/\d+$`), "/articles/:id"},
}

// NormalizePath collapses ID-carrying paths to a template form so metric
// label cardinality stays bounded. /articles/123 becomes /articles/:id;
// static paths pass through unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
