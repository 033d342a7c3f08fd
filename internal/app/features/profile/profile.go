// internal/app/features/profile/profile.go
package profile

import (
	"errors"
	"net/http"

	userstore "github.com/corsit/clubsite/internal/app/store/users"
	"github.com/corsit/clubsite/internal/app/system/auth"
	"github.com/corsit/clubsite/internal/app/system/htmlsanitize"
	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID resolves the caller's ObjectID from the request context.
// The middleware guarantees a user is present; a malformed id means the
// token subject was not one of ours.
func currentUserID(r *http.Request) (primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeGet handles GET /profile.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := currentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "profile fetch")
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.WriteTaxonomy(w, h.Log, "profile fetch", err)
		return
	}

	httpjson.Write(w, http.StatusOK, u)
}

type updateRequest struct {
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	USN                string `json:"usn"`
	Year               string `json:"year"`
	Designation        string `json:"designation"`
	Description        string `json:"description"`
	GitHub             string `json:"github"`
	LinkedIn           string `json:"linkedin"`
	Instagram          string `json:"instagram"`
	ProjectDescription string `json:"project_description"`
	AbacusURL          string `json:"abacus_url"`
}

// ServeUpdate handles PUT /profile. Free-text fields are sanitized before
// they are persisted; single-line fields are stripped of markup entirely.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := currentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if htmlsanitize.Strip(req.Name) == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "profile update")
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, id, userstore.ProfileUpdate{
		Name:               htmlsanitize.Strip(req.Name),
		Phone:              htmlsanitize.Strip(req.Phone),
		USN:                htmlsanitize.Strip(req.USN),
		Year:               htmlsanitize.Strip(req.Year),
		Designation:        htmlsanitize.Strip(req.Designation),
		Description:        htmlsanitize.Sanitize(req.Description),
		GitHub:             htmlsanitize.Strip(req.GitHub),
		LinkedIn:           htmlsanitize.Strip(req.LinkedIn),
		Instagram:          htmlsanitize.Strip(req.Instagram),
		ProjectDescription: htmlsanitize.Sanitize(req.ProjectDescription),
		AbacusURL:          htmlsanitize.Strip(req.AbacusURL),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.WriteTaxonomy(w, h.Log, "profile update", err)
		return
	}

	httpjson.Write(w, http.StatusOK, u)
}
