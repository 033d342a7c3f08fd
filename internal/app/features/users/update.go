package users

import (
	"errors"
	"net/http"

	userstore "github.com/corsit/clubsite/internal/app/store/users"
	"github.com/corsit/clubsite/internal/app/system/htmlsanitize"
	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type updateRequest struct {
	Name               string `json:"name"`
	Designation        string `json:"designation"`
	AdminAuthenticated bool   `json:"admin_authenticated"`
	IsAdmin            bool   `json:"is_admin"`
}

// ServeUpdate handles PUT /admin/users/{id}.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if htmlsanitize.Strip(req.Name) == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin user update")
	defer cancel()

	u, err := h.Users.UpdateByAdmin(ctx, id, userstore.AdminUpdate{
		Name:               htmlsanitize.Strip(req.Name),
		Designation:        htmlsanitize.Strip(req.Designation),
		AdminAuthenticated: req.AdminAuthenticated,
		IsAdmin:            req.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.WriteTaxonomy(w, h.Log, "admin user update", err)
		return
	}

	h.Log.Info("user updated by admin",
		zap.String("user_id", u.ID.Hex()),
		zap.Bool("admin_authenticated", u.AdminAuthenticated),
		zap.Bool("is_admin", u.IsAdmin))

	httpjson.Write(w, http.StatusOK, toAdminView(*u))
}
