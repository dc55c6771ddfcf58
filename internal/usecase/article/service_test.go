package article_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/domain/entity"
	artUC "newswire/internal/usecase/article"
)

// Minimal in-memory ArticleRepository. Locked because GenerateBatch
// writes concurrently.
type stubRepo struct {
	mu     sync.Mutex
	data   map[int64]*entity.Article
	nextID int64
	err    error // set to force repository failures
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Article{}, nextID: 1}
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*entity.Article, 0, len(s.data))
	for _, a := range s.data {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[id], s.err
}

func (s *stubRepo) Create(_ context.Context, a *entity.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	a.ID = s.nextID
	s.nextID++
	s.data[a.ID] = a
	return nil
}

func (s *stubRepo) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.data)), s.err
}

func TestCreate(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}

	art, err := svc.Create(context.Background(), artUC.CreateInput{
		Title:   "Quarterly results surprise analysts",
		Summary: "A longer body of text.",
		Image:   "https://picsum.photos/seed/42/600/400",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), art.ID)
	assert.False(t, art.PublishedAt.IsZero(), "PublishedAt should default to now")
}

func TestCreateValidation(t *testing.T) {
	svc := artUC.Service{Repo: newStub()}

	tests := []struct {
		name  string
		input artUC.CreateInput
	}{
		{name: "empty title", input: artUC.CreateInput{Title: "", Summary: "x"}},
		{name: "bad image URL", input: artUC.CreateInput{Title: "ok", Image: "not a url"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.Error(t, err)
		})
	}
}

func TestCreateRepoError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("connection refused")
	svc := artUC.Service{Repo: repo}

	_, err := svc.Create(context.Background(), artUC.CreateInput{Title: "ok"})
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.err)
}

func TestListMostRecentFirst(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}

	base := time.Now()
	for i, title := range []string{"oldest", "middle", "newest"} {
		_, err := svc.Create(context.Background(), artUC.CreateInput{
			Title:       title,
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	articles, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, "newest", articles[0].Title)
	assert.Equal(t, "oldest", articles[2].Title)
}

func TestGet(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}

	created, err := svc.Create(context.Background(), artUC.CreateInput{Title: "findable"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "findable", got.Title)

	_, err = svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, artUC.ErrInvalidArticleID)

	_, err = svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, artUC.ErrArticleNotFound)
}

func TestGenerate(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}

	art, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, art.Title)
	assert.NotEmpty(t, art.Summary)
	assert.Contains(t, art.Image, "https://picsum.photos/seed/")
	assert.NotZero(t, art.ID)
}

func TestGenerateBatch(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}

	generated, err := svc.GenerateBatch(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, generated, 8)

	stored, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 8)
}

func TestGenerateBatchRejectsNonPositiveCount(t *testing.T) {
	svc := artUC.Service{Repo: newStub()}

	_, err := svc.GenerateBatch(context.Background(), 0)
	assert.Error(t, err)
}

func TestGenerateBatchRepoError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("connection refused")
	svc := artUC.Service{Repo: repo}

	generated, err := svc.GenerateBatch(context.Background(), 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.err)
	assert.Empty(t, generated)
}
