package article

import (
	"log/slog"
	"net/http"

	"newswire/internal/domain/entity"
	"newswire/internal/handler/http/requestid"
	"newswire/internal/handler/http/respond"
	artUC "newswire/internal/usecase/article"
)

// Publisher pushes a freshly stored article to connected feed clients.
type Publisher interface {
	Publish(art *entity.Article)
}

// GenerateHandler creates a synthetic article and announces it on the live
// feed. The generated article is stored first so that clients joining later
// still see it in the backlog.
type GenerateHandler struct {
	Svc       *artUC.Service
	Publisher Publisher
	Logger    *slog.Logger
}

func (h GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With(slog.String("request_id", requestid.FromContext(r.Context())))

	art, err := h.Svc.Generate(r.Context())
	if err != nil {
		logger.Error("article generation failed", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	if h.Publisher != nil {
		h.Publisher.Publish(art)
	}

	logger.Info("article generated",
		slog.Int64("article_id", art.ID),
		slog.String("title", art.Title))

	respond.JSON(w, http.StatusCreated, toDTO(art))
}
