package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"newswire/internal/handler/http/requestid"
	"newswire/internal/handler/http/respond"
	"newswire/internal/service/token"
	accUC "newswire/internal/usecase/account"
)

// ErrMissingCredential is returned when the Authorization header carries no
// bearer token.
var ErrMissingCredential = errors.New("missing bearer token")

// Authz returns middleware that requires a valid bearer credential on every
// request. The resolved account is stored in the request context.
//
// All rejection causes, whether the token is malformed, forged, expired, or
// references a deleted account, collapse into the same 401 response. The
// precise cause is only logged server side.
func Authz(svc *accUC.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, err := BearerCredential(r)
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
				return
			}

			account, err := svc.Resolve(r.Context(), credential)
			if err != nil {
				if errors.Is(err, token.ErrRejected) {
					slog.Warn("credential rejected",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("cause", err.Error()))
					respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
					return
				}
				respond.SafeError(w, http.StatusInternalServerError, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), account)))
		})
	}
}

// BearerCredential extracts the bearer token from the Authorization header.
func BearerCredential(r *http.Request) (string, error) {
	const prefix = "Bearer "
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, prefix) {
		return "", ErrMissingCredential
	}
	credential := strings.TrimPrefix(authz, prefix)
	if credential == "" {
		return "", ErrMissingCredential
	}
	return credential, nil
}
