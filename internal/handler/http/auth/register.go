package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newswire/internal/handler/http/requestid"
	"newswire/internal/handler/http/respond"
	accUC "newswire/internal/usecase/account"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterHandler creates an account from a username and password pair.
type RegisterHandler struct {
	Svc *accUC.Service
}

func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := h.Svc.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, accUC.ErrDuplicateIdentity) {
			respond.SafeError(w, http.StatusConflict, errors.New("username already exists"))
			return
		}
		logger.Warn("registration rejected", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	logger.Info("account registered", slog.String("username", req.Username))
	w.WriteHeader(http.StatusCreated)
}
