package team

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for the public team page.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	return r
}
