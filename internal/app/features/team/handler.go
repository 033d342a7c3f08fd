// Package team serves the public team page data: the profiles an admin
// has approved for display, with credential and contact surfaces removed.
package team

import (
	"context"
	"net/http"

	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/corsit/clubsite/internal/domain/models"
	"go.uber.org/zap"
)

// UserStore is the persistence capability set the feature needs.
type UserStore interface {
	ListVisible(ctx context.Context) ([]models.User, error)
}

type Handler struct {
	Users UserStore
	Log   *zap.Logger
}

func NewHandler(users UserStore, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// memberCard is the public projection of a profile. Email, phone, and any
// account flags are deliberately absent.
type memberCard struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Designation        string `json:"designation,omitempty"`
	Description        string `json:"description,omitempty"`
	GitHub             string `json:"github,omitempty"`
	LinkedIn           string `json:"linkedin,omitempty"`
	Instagram          string `json:"instagram,omitempty"`
	PhotoURL           string `json:"photo_url,omitempty"`
	ProjectPhotoURL    string `json:"project_photo_url,omitempty"`
	ProjectDescription string `json:"project_description,omitempty"`
	AbacusURL          string `json:"abacus_url,omitempty"`
}

// ServeList handles GET /team.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "team page list")
	defer cancel()

	users, err := h.Users.ListVisible(ctx)
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "team page list", err)
		return
	}

	cards := make([]memberCard, 0, len(users))
	for _, u := range users {
		cards = append(cards, memberCard{
			ID:                 u.ID.Hex(),
			Name:               u.Name,
			Designation:        u.Designation,
			Description:        u.Description,
			GitHub:             u.GitHub,
			LinkedIn:           u.LinkedIn,
			Instagram:          u.Instagram,
			PhotoURL:           u.PhotoURL,
			ProjectPhotoURL:    u.ProjectPhotoURL,
			ProjectDescription: u.ProjectDescription,
			AbacusURL:          u.AbacusURL,
		})
	}

	httpjson.Write(w, http.StatusOK, map[string][]memberCard{"team": cards})
}
