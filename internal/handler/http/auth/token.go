package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newswire/internal/handler/http/requestid"
	"newswire/internal/handler/http/respond"
	accUC "newswire/internal/usecase/account"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenHandler exchanges a username/password pair for a bearer credential.
// Every failure mode is reported as the same 401 so callers cannot probe
// which usernames exist.
type TokenHandler struct {
	Svc *accUC.Service
}

func (h TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	credential, err := h.Svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accUC.ErrInvalidCredentials) {
			logger.Warn("authentication failed",
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			respond.SafeError(w, http.StatusUnauthorized, accUC.ErrInvalidCredentials)
			return
		}
		logger.Error("authentication error", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("authentication successful",
		slog.String("username", req.Username),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusOK, tokenResponse{
		AccessToken: credential,
		TokenType:   "bearer",
	})
}
