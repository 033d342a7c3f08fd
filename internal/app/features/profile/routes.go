// internal/app/features/profile/routes.go
package profile

import (
	"github.com/corsit/clubsite/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /profile. Every endpoint
// requires a signed-in caller.
func Routes(h *Handler, tokens *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireSignedIn)
	r.Get("/", h.ServeGet)
	r.Put("/", h.ServeUpdate)
	r.Put("/password", h.ServePassword)
	r.Post("/photo", h.ServePhoto)
	r.Post("/project-photo", h.ServeProjectPhoto)
	return r
}
