// Package accounts implements signup and login. Passwords are stored as
// bcrypt hashes; a successful call returns a signed bearer token.
package accounts

import (
	"context"

	"github.com/corsit/clubsite/internal/app/system/auth"
	"github.com/corsit/clubsite/internal/domain/models"
	"go.uber.org/zap"
)

// UserStore is the persistence capability set the feature needs.
type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Handler struct {
	Users  UserStore
	Tokens *auth.Manager
	Log    *zap.Logger
}

func NewHandler(users UserStore, tokens *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Tokens: tokens, Log: logger}
}
