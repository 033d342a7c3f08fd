package users

import (
	"errors"
	"net/http"

	userstore "github.com/corsit/clubsite/internal/app/store/users"
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

// ServeDelete handles DELETE /admin/users/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin user delete")
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.WriteTaxonomy(w, h.Log, "admin user delete", err)
		return
	}

	h.Log.Info("user deleted by admin", zap.String("user_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, deleteResponse{ID: id.Hex(), Deleted: true})
}
