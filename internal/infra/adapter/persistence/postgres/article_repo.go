package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newswire/internal/domain/entity"
	"newswire/internal/repository"
)

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func (repo *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	const query = `
SELECT id, title, summary, COALESCE(author, ''), COALESCE(image, ''), published_at
FROM articles
ORDER BY published_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 100)
	for rows.Next() {
		var article entity.Article
		if err := rows.Scan(&article.ID, &article.Title, &article.Summary,
			&article.Author, &article.Image, &article.PublishedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, &article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT id, title, summary, COALESCE(author, ''), COALESCE(image, ''), published_at
FROM articles
WHERE id = $1`
	var article entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&article.ID, &article.Title,
		&article.Summary, &article.Author, &article.Image, &article.PublishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &article, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (title, summary, author, image, published_at)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, article.Title, article.Summary,
		article.Author, article.Image, article.PublishedAt).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
