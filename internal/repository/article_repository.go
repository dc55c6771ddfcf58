// Package repository declares the persistence interfaces the use cases depend on.
// Concrete implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"newswire/internal/domain/entity"
)

// ArticleRepository is the persistence port for articles.
// The feed core depends only on Create and List.
type ArticleRepository interface {
	// List retrieves all articles, most recent first.
	List(ctx context.Context) ([]*entity.Article, error)
	// Get retrieves a single article by ID.
	// Returns (nil, nil) if the article does not exist.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// Create persists a new article and fills in its assigned ID.
	Create(ctx context.Context, article *entity.Article) error
	// Count returns the total number of stored articles.
	Count(ctx context.Context) (int64, error)
}
