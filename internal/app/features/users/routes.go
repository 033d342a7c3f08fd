package users

import (
	"github.com/corsit/clubsite/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the admin user management subrouter. Every route requires
// an admin bearer token.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireAdmin)
	r.Get("/", h.ServeList)
	r.Put("/{id}", h.ServeUpdate)
	r.Delete("/{id}", h.ServeDelete)
	return r
}
