package auth

import (
	"net/http"

	accUC "newswire/internal/usecase/account"
)

// Register wires the account endpoints onto the mux. Both routes are public,
// they are how clients obtain credentials in the first place.
func Register(mux *http.ServeMux, svc *accUC.Service) {
	mux.Handle("POST /auth/register", RegisterHandler{Svc: svc})
	mux.Handle("POST /auth/token", TokenHandler{Svc: svc})
}
