package article

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/sync/errgroup"

	"newswire/internal/domain/entity"
	"newswire/internal/observability/metrics"
	"newswire/internal/repository"
)

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Title       string
	Summary     string
	Author      string
	Image       string
	PublishedAt time.Time
}

// Service provides article management use cases.
// It handles business logic for article operations and delegates persistence to the repository.
type Service struct {
	Repo repository.ArticleRepository
}

// List retrieves all articles, most recent first.
// Returns an error if the repository operation fails.
func (s *Service) List(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// Create persists a new article with the provided input.
// It validates the title and image URL before creating the article.
// Returns a ValidationError if any input field is invalid.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	if err := entity.ValidateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := entity.ValidateImageURL(in.Image); err != nil {
		return nil, fmt.Errorf("validate image: %w", err)
	}
	if in.PublishedAt.IsZero() {
		in.PublishedAt = time.Now()
	}

	art := &entity.Article{
		Title:       in.Title,
		Summary:     in.Summary,
		Author:      in.Author,
		Image:       in.Image,
		PublishedAt: in.PublishedAt,
	}
	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.updateTotalGauge(ctx)
	return art, nil
}

// Generate creates and persists a synthetic article with fabricated content.
// Roughly half of the generated articles carry an author attribution.
func (s *Service) Generate(ctx context.Context) (*entity.Article, error) {
	in := CreateInput{
		Title:   gofakeit.Sentence(8),
		Summary: gofakeit.Paragraph(1, 10, 12, " "),
		Image:   fmt.Sprintf("https://picsum.photos/seed/%d/600/400", gofakeit.Number(1, 10000)),
	}
	if gofakeit.Bool() {
		in.Author = gofakeit.Name()
	}

	art, err := s.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("generate article: %w", err)
	}
	metrics.ArticlesGeneratedTotal.Inc()
	return art, nil
}

// generateParallelism bounds concurrent generation within a batch so a large
// batch cannot exhaust the connection pool.
const generateParallelism = 5

// GenerateBatch generates count articles in parallel and returns the ones
// that were persisted. A failed generation aborts the remainder of the batch
// but articles already persisted stay persisted.
func (s *Service) GenerateBatch(ctx context.Context, count int) ([]*entity.Article, error) {
	if count <= 0 {
		return nil, fmt.Errorf("batch count must be positive, got %d", count)
	}

	generated := make([]*entity.Article, count)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(generateParallelism)

	for i := 0; i < count; i++ {
		eg.Go(func() error {
			art, err := s.Generate(egCtx)
			if err != nil {
				return err
			}
			generated[i] = art
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		// Keep whatever made it in before the failure.
		kept := generated[:0]
		for _, art := range generated {
			if art != nil {
				kept = append(kept, art)
			}
		}
		return kept, fmt.Errorf("generate batch: %w", err)
	}
	return generated, nil
}

// updateTotalGauge refreshes the articles_total gauge after a write.
// Failures only cost metric freshness, they never fail the write.
func (s *Service) updateTotalGauge(ctx context.Context) {
	if total, err := s.Repo.Count(ctx); err == nil {
		metrics.ArticlesTotal.Set(float64(total))
	}
}
