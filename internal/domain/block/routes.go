package block

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns block router, mounted under /users
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	// "me" is matched before the {id} pattern below.
	r.Get("/me/blocked", h.ListBlocked)
	r.Post("/{id}/block", h.Block)
	r.Delete("/{id}/block", h.Unblock)

	return r
}
