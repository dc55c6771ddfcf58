// Package article provides use cases for listing, creating and generating
// news articles. Persistence is delegated to the article repository.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is not positive.
	ErrInvalidArticleID = errors.New("invalid article ID")
)
