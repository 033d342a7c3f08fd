// internal/app/system/media/cloudinary.go
package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cloudinary implements Store against the Cloudinary upload API.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
	log *zap.Logger
}

// NewCloudinary builds a Cloudinary store from a cloudinary:// URL.
func NewCloudinary(url string, logger *zap.Logger) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Cloudinary{cld: cld, log: logger}, nil
}

// Upload streams the file to Cloudinary and returns the durable HTTPS URL.
// Format checking happens here as well as at the collaborator; MaxBytes is
// enforced by the caller via http.MaxBytesReader before the stream starts.
func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, filename string, opts UploadOptions) (string, error) {
	if len(opts.AllowedFormats) > 0 {
		if err := CheckFormat(filename, opts.AllowedFormats); err != nil {
			return "", err
		}
	}

	params := uploader.UploadParams{
		Folder:         opts.Folder,
		PublicID:       uniquePublicID(filename),
		AllowedFormats: api.CldAPIArray(opts.AllowedFormats),
		Transformation: opts.Transformation,
	}

	res, err := c.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	c.log.Info("media uploaded",
		zap.String("folder", opts.Folder),
		zap.String("public_id", res.PublicID),
		zap.Int("bytes", res.Bytes),
	)
	return res.SecureURL, nil
}

// uniquePublicID derives a collision-free public ID from the original
// filename, keeping a readable stem for the Cloudinary console.
func uniquePublicID(filename string) string {
	stem := filename
	if i := strings.LastIndexByte(stem, '.'); i > 0 {
		stem = stem[:i]
	}
	stem = sanitizeStem(stem)
	if stem == "" {
		stem = "upload"
	}
	return fmt.Sprintf("%s-%s", uuid.New().String()[:8], stem)
}

func sanitizeStem(s string) string {
	var b strings.Builder
	for i := 0; i < len(s) && b.Len() < 40; i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
