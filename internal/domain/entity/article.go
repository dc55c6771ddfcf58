// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and Account, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Article represents a news article entity in the system.
// It contains the article's headline, summary text, and optional author and image metadata.
type Article struct {
	ID          int64
	Title       string
	Summary     string
	Author      string // empty when the article has no attributed author
	Image       string // URL of the preview image, may be empty
	PublishedAt time.Time
}
