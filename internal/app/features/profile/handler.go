// Package profile implements self-service member profile management:
// viewing and editing the profile, changing the password, and uploading
// profile/project media through the media-storage collaborator.
package profile

import (
	"context"

	userstore "github.com/corsit/clubsite/internal/app/store/users"
	"github.com/corsit/clubsite/internal/app/system/media"
	"github.com/corsit/clubsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserStore is the persistence capability set the feature needs.
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd userstore.ProfileUpdate) (*models.User, error)
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
	SetPhotoURL(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error)
	SetProjectPhotoURL(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error)
}

type Handler struct {
	Users UserStore
	Media media.Store
	Log   *zap.Logger

	UploadFolder   string
	MaxUploadBytes int64
}

func NewHandler(users UserStore, mediaStore media.Store, uploadFolder string, maxUploadBytes int64, logger *zap.Logger) *Handler {
	return &Handler{
		Users:          users,
		Media:          mediaStore,
		Log:            logger,
		UploadFolder:   uploadFolder,
		MaxUploadBytes: maxUploadBytes,
	}
}
