// internal/app/features/profile/photo.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/corsit/clubsite/internal/app/system/httpjson"
	"github.com/corsit/clubsite/internal/app/system/media"
	"github.com/corsit/clubsite/internal/app/system/timeouts"
	"github.com/corsit/clubsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var photoFormats = []string{"jpg", "jpeg", "png", "webp"}

// ServePhoto handles POST /profile/photo: a multipart form with a "photo"
// file. The stored URL replaces any previous one.
func (h *Handler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	h.servePhotoUpload(w, r, "photo", "c_fill,w_600,h_600", h.Users.SetPhotoURL)
}

// ServeProjectPhoto handles POST /profile/project-photo: a multipart form
// with a "photo" file for the member's project showcase.
func (h *Handler) ServeProjectPhoto(w http.ResponseWriter, r *http.Request) {
	h.servePhotoUpload(w, r, "photo", "c_limit,w_1600", h.Users.SetProjectPhotoURL)
}

func (h *Handler) servePhotoUpload(
	w http.ResponseWriter,
	r *http.Request,
	field, transformation string,
	persist func(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error),
) {
	id, ok := currentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(h.MaxUploadBytes + (1 << 20)); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "request body must be a multipart form within the size limit")
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "a photo file is required")
		return
	}
	defer file.Close()

	if err := media.CheckFormat(header.Filename, photoFormats); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if header.Size > h.MaxUploadBytes {
		httpjson.WriteError(w, http.StatusBadRequest, "photo exceeds the upload size limit")
		return
	}
	if h.Media == nil {
		httpjson.WriteTaxonomy(w, h.Log, "photo upload", errors.New("media storage is not configured"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "photo upload")
	defer cancel()

	url, err := h.Media.Upload(ctx, file, header.Filename, media.UploadOptions{
		Folder:         h.UploadFolder,
		AllowedFormats: photoFormats,
		MaxBytes:       h.MaxUploadBytes,
		Transformation: transformation,
	})
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "photo upload", err)
		return
	}

	u, err := persist(ctx, id, url)
	if err != nil {
		httpjson.WriteTaxonomy(w, h.Log, "photo url persist", err)
		return
	}

	h.Log.Info("photo uploaded", zap.String("user_id", id.Hex()), zap.String("url", url))
	httpjson.Write(w, http.StatusOK, u)
}
