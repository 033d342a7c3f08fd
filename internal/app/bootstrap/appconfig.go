// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, request limits). AppConfig is everything specific to the
// club site: database connection, token signing, and the media-storage
// collaborator.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer-token configuration
	JWTSecret string        // HMAC signing key for bearer tokens (must be strong in production)
	JWTExpiry time.Duration // Token lifetime (e.g., 72h)

	// Media storage (Cloudinary)
	CloudinaryURL    string // cloudinary://<key>:<secret>@<cloud> URL; blank disables uploads
	UploadFolder     string // Folder for profile/project media
	ScreenshotFolder string // Folder for payment screenshots
	MaxUploadMB      int    // Per-file upload limit in megabytes
}
