// internal/app/features/workshop/delete.go
package workshop

import (
	"errors"
	"net/http"

	registrationstore "github.com/corsit/clubsite/internal/app/store/registrations"
	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type deleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ServeDelete handles DELETE /workshop-registrations/{id} (admin only).
// The team number of a deleted registration is never reused.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "registration not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "registration delete")
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, registrationstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "registration not found")
			return
		}
		httpjson.WriteTaxonomy(w, h.Log, "registration delete", err)
		return
	}

	h.Log.Info("registration deleted", zap.String("registration_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, deleteResponse{ID: id.Hex(), Deleted: true})
}
