package article

import (
	"log/slog"
	"net/http"
	"time"

	"newswire/internal/handler/http/requestid"
	"newswire/internal/handler/http/respond"
	artUC "newswire/internal/usecase/article"
)

// ListHandler returns all stored articles, most recent first.
type ListHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := h.Logger.With(slog.String("request_id", requestid.FromContext(ctx)))

	articles, err := h.Svc.List(ctx)
	if err != nil {
		logger.Error("failed to list articles", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toDTO(a))
	}

	logger.Info("article list served",
		slog.Int("count", len(dtos)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusOK, dtos)
}
