// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accountsfeature "github.com/corsit/clubsite/internal/app/features/accounts"
	healthfeature "github.com/corsit/clubsite/internal/app/features/health"
	profilefeature "github.com/corsit/clubsite/internal/app/features/profile"
	teamfeature "github.com/corsit/clubsite/internal/app/features/team"
	usersfeature "github.com/corsit/clubsite/internal/app/features/users"
	workshopfeature "github.com/corsit/clubsite/internal/app/features/workshop"
	registrationstore "github.com/corsit/clubsite/internal/app/store/registrations"
	userstore "github.com/corsit/clubsite/internal/app/store/users"
	"github.com/corsit/clubsite/internal/app/system/auth"
	"github.com/corsit/clubsite/internal/app/system/media"
)

// BuildHandler assembles the full HTTP surface: stores, the token manager,
// the media store, and every feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewManager(appCfg.JWTSecret, appCfg.JWTExpiry, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Cloudinary is optional outside production: with no URL configured the
	// upload endpoints respond with an explanatory error instead of panicking.
	var mediaStore media.Store
	if appCfg.CloudinaryURL != "" {
		mediaStore, err = media.NewCloudinary(appCfg.CloudinaryURL, logger)
		if err != nil {
			logger.Error("cloudinary init failed", zap.Error(err))
			return nil, err
		}
	} else {
		logger.Warn("cloudinary_url not set; media uploads disabled")
	}

	users := userstore.New(deps.MongoDatabase)
	registrations := registrationstore.New(deps.MongoDatabase)

	maxUploadBytes := int64(appCfg.MaxUploadMB) << 20

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public team page.
	teamHandler := teamfeature.NewHandler(users, logger)
	r.Mount("/team", teamfeature.Routes(teamHandler))

	// Signup and login live at the root.
	accountsHandler := accountsfeature.NewHandler(users, tokens, logger)
	accountsfeature.Routes(r, accountsHandler)

	// Signed-in member profile management.
	profileHandler := profilefeature.NewHandler(users, mediaStore,
		appCfg.UploadFolder, maxUploadBytes, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, tokens))

	// Workshop registration: one public endpoint, the rest admin-only.
	workshopHandler := workshopfeature.NewHandler(registrations, mediaStore,
		appCfg.ScreenshotFolder, maxUploadBytes, logger)
	workshopfeature.Routes(r, workshopHandler, tokens)

	// Admin user management.
	usersHandler := usersfeature.NewHandler(users, logger)
	r.Mount("/admin/users", usersfeature.Routes(usersHandler, tokens))

	logger.Info("routes built",
		zap.String("env", coreCfg.Env),
		zap.Bool("media_enabled", mediaStore != nil))

	return r, nil
}
