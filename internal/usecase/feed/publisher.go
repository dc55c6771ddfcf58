// Package feed implements the real-time feed publisher. On join it replays the
// article backlog to the new member before any live broadcast reaches it; on
// article creation it fans the article summary out to every member; inbound
// text messages are relayed verbatim as opaque passthrough.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"newswire/internal/broadcast"
	"newswire/internal/domain/entity"
	"newswire/internal/observability/metrics"
	"newswire/internal/repository"
	"newswire/internal/resilience/circuitbreaker"
)

// ArticleSummary is the broadcast projection of an article. It is immutable
// once constructed and never carries the full body.
type ArticleSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

type articleMessage struct {
	Article ArticleSummary `json:"article"`
}

type textMessage struct {
	Message string `json:"message"`
}

// Registry is the narrow port the publisher uses to reach live connections.
type Registry interface {
	Send(handle broadcast.Handle, msg []byte) error
	Broadcast(msg []byte)
}

// Publisher fans newly created articles out to connected clients and replays
// backlog on join. Persistence commit and broadcast are sequential, not
// atomic; a miss between the two is resolved by the client's next backlog
// replay on reconnect.
type Publisher struct {
	articles repository.ArticleRepository
	registry Registry
	breaker  *circuitbreaker.CircuitBreaker
}

// NewPublisher creates a feed publisher over the given article store and
// connection registry. Backlog fetches run through a circuit breaker so a
// failing store cannot stall every join.
func NewPublisher(articles repository.ArticleRepository, registry Registry) *Publisher {
	return &Publisher{
		articles: articles,
		registry: registry,
		breaker:  circuitbreaker.New(circuitbreaker.BacklogFetchConfig()),
	}
}

// Summarize projects an article into its broadcast payload.
func Summarize(art *entity.Article) ArticleSummary {
	return ArticleSummary{ID: art.ID, Title: art.Title, Image: art.Image}
}

// ReplayBacklog sends every existing article to a newly joined member, most
// recent first, one message per article. A send failure means the connection
// is gone; replay stops and the error propagates so the caller can drop the
// connection. No live broadcast can be observed by the member before the
// messages queued here.
func (p *Publisher) ReplayBacklog(ctx context.Context, handle broadcast.Handle) error {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.articles.List(ctx)
	})
	if err != nil {
		return fmt.Errorf("fetch backlog: %w", err)
	}
	articles := result.([]*entity.Article)

	metrics.FeedBacklogArticles.Observe(float64(len(articles)))

	for _, art := range articles {
		msg, err := json.Marshal(articleMessage{Article: Summarize(art)})
		if err != nil {
			return fmt.Errorf("encode backlog article %d: %w", art.ID, err)
		}
		if err := p.registry.Send(handle, msg); err != nil {
			return fmt.Errorf("replay article %d: %w", art.ID, err)
		}
	}
	return nil
}

// Publish broadcasts a newly persisted article's summary to all members.
// Delivery is best-effort; individual peer failures are absorbed by the
// registry and never surface here.
func (p *Publisher) Publish(art *entity.Article) {
	msg, err := json.Marshal(articleMessage{Article: Summarize(art)})
	if err != nil {
		slog.Error("failed to encode article broadcast",
			slog.Int64("article_id", art.ID),
			slog.Any("error", err))
		return
	}
	p.registry.Broadcast(msg)
	slog.Debug("article published to feed",
		slog.Int64("article_id", art.ID),
		slog.String("title", art.Title))
}

// RelayText broadcasts a client-sent text message verbatim to all members.
// The content is opaque passthrough, never interpreted.
func (p *Publisher) RelayText(text string) {
	msg, err := json.Marshal(textMessage{Message: text})
	if err != nil {
		slog.Error("failed to encode text relay", slog.Any("error", err))
		return
	}
	p.registry.Broadcast(msg)
}
