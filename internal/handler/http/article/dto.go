// Package article provides HTTP handlers for the article endpoints.
package article

import (
	"time"

	"newswire/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Author      string    `json:"author,omitempty"`
	Image       string    `json:"image,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Summary:     a.Summary,
		Author:      a.Author,
		Image:       a.Image,
		PublishedAt: a.PublishedAt,
	}
}
