// Package users is the admin-facing user management surface: listing every
// account, editing moderation fields, and removing accounts.
package users

import (
	"context"

	userstore "github.com/corsit/clubsite/internal/app/store/users"
	"github.com/corsit/clubsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserStore is the persistence capability set the feature needs.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	UpdateByAdmin(ctx context.Context, id primitive.ObjectID, upd userstore.AdminUpdate) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Handler struct {
	Users UserStore
	Log   *zap.Logger
}

func NewHandler(users UserStore, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}
