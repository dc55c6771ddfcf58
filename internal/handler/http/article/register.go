package article

import (
	"log/slog"
	"net/http"

	"newswire/internal/handler/http/auth"
	accUC "newswire/internal/usecase/account"
	artUC "newswire/internal/usecase/article"
)

// Register wires the article endpoints onto the mux. Reading articles is
// public; only creation requires a valid bearer credential.
func Register(mux *http.ServeMux, svc *artUC.Service, accounts *accUC.Service, pub Publisher, logger *slog.Logger) {
	authz := auth.Authz(accounts)

	mux.Handle("GET /articles", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /articles/", GetHandler{Svc: svc})
	mux.Handle("POST /generate-news", authz(GenerateHandler{
		Svc:       svc,
		Publisher: pub,
		Logger:    logger,
	}))
}
