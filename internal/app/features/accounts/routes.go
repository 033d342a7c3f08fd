// internal/app/features/accounts/routes.go
package accounts

import "github.com/go-chi/chi/v5"

// Routes attaches the public signup and login endpoints to the given
// router. Both paths are root-level, so the feature registers onto the
// parent router instead of returning a mountable subrouter.
func Routes(r chi.Router, h *Handler) {
	r.Post("/signup", h.ServeSignup)
	r.Post("/login", h.ServeLogin)
}
