package article

import (
	"errors"
	"net/http"

	"newswire/internal/handler/http/pathutil"
	"newswire/internal/handler/http/respond"
	artUC "newswire/internal/usecase/article"
)

// GetHandler returns a single article by ID.
type GetHandler struct {
	Svc *artUC.Service
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid article id"))
		return
	}

	art, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, artUC.ErrArticleNotFound) {
			respond.SafeError(w, http.StatusNotFound, errors.New("article not found"))
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(art))
}
