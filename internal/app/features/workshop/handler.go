// Package workshop implements the team-registration flow: public
// registration with sequential team-number allocation, the admin
// grouped-by-team listing, payment verification, and the PDF/CSV exports.
package workshop

import (
	"context"

	"github.com/corsit/clubsite/internal/app/system/media"
	"github.com/corsit/clubsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Repository is the persistence capability set the feature needs. The
// Mongo-backed implementation lives in store/registrations; tests inject
// an in-memory fake.
type Repository interface {
	MaxTeamNumber(ctx context.Context) (int, error)
	Insert(ctx context.Context, reg *models.WorkshopRegistration) error
	List(ctx context.Context) ([]models.WorkshopRegistration, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.WorkshopRegistration, error)
	SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) (*models.WorkshopRegistration, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Handler holds the dependencies for all workshop endpoints.
type Handler struct {
	Repo  Repository
	Media media.Store
	Log   *zap.Logger

	ScreenshotFolder string
	MaxUploadBytes   int64
}

// NewHandler constructs a workshop Handler. mediaStore may be nil when the
// media collaborator is not configured; screenshot uploads then fail with
// a server error instead of being silently dropped.
func NewHandler(repo Repository, mediaStore media.Store, screenshotFolder string, maxUploadBytes int64, logger *zap.Logger) *Handler {
	return &Handler{
		Repo:             repo,
		Media:            mediaStore,
		Log:              logger,
		ScreenshotFolder: screenshotFolder,
		MaxUploadBytes:   maxUploadBytes,
	}
}
