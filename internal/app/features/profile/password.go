// internal/app/features/profile/password.go
package profile

import (
	"errors"
	"net/http"

	userstore "github.com/corsit/clubsite/internal/app/store/users"
	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type passwordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ServePassword handles PUT /profile/password. The current password must
// be re-proven before the hash is replaced.
func (h *Handler) ServePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := currentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req passwordRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.NewPassword) < minPasswordLen {
		httpjson.WriteError(w, http.StatusBadRequest, "new password must be at least 8 characters")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "password change")
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.WriteTaxonomy(w, h.Log, "password change lookup", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		httpjson.WriteError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "password hash", err)
		return
	}
	if err := h.Users.SetPassword(ctx, id, string(hash)); err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "password change", err)
		return
	}

	h.Log.Info("password changed", zap.String("user_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]bool{"updated": true})
}
