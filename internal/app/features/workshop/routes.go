// internal/app/features/workshop/routes.go
package workshop

import (
	"github.com/corsit/clubsite/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes attaches the workshop endpoints to the given router. The paths
// are root-level, so the feature registers onto the parent router instead
// of returning a mountable subrouter.
func Routes(r chi.Router, h *Handler, tokens *auth.Manager) {
	r.Post("/workshop-register", h.ServeRegister)

	r.Route("/workshop-registrations", func(r chi.Router) {
		r.Use(tokens.RequireAdmin)
		r.Get("/", h.ServeList)
		r.Put("/{id}/verify", h.ServeVerify)
		r.Delete("/{id}", h.ServeDelete)
		r.Get("/export/{id}", h.ServeExportPDF)
		r.Get("/export-all", h.ServeExportCSV)
	})
}
