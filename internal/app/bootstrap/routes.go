// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/meditrip/internal/app/content"
	aboutfeature "github.com/dalemusser/meditrip/internal/app/features/about"
	apifeature "github.com/dalemusser/meditrip/internal/app/features/api"
	blogfeature "github.com/dalemusser/meditrip/internal/app/features/blog"
	contactfeature "github.com/dalemusser/meditrip/internal/app/features/contact"
	errorsfeature "github.com/dalemusser/meditrip/internal/app/features/errors"
	galleryfeature "github.com/dalemusser/meditrip/internal/app/features/gallery"
	healthfeature "github.com/dalemusser/meditrip/internal/app/features/health"
	homefeature "github.com/dalemusser/meditrip/internal/app/features/home"
	servicesfeature "github.com/dalemusser/meditrip/internal/app/features/services"
	"github.com/dalemusser/meditrip/internal/app/store/submissions"
	"github.com/dalemusser/meditrip/internal/app/system/cms"
	"github.com/dalemusser/meditrip/internal/app/system/flash"
	"github.com/dalemusser/meditrip/internal/app/system/mailer"
	"github.com/dalemusser/meditrip/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. MediTrip boots the template engine,
// builds the CMS client and content service, and mounts the public pages,
// the JSON API, health and metrics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	registerMetrics(logger)

	cmsClient, err := cms.New(appCfg.cmsConfig(), logger.Named("cms"))
	if err != nil {
		logger.Error("cms client init failed", zap.Error(err))
		return nil, err
	}
	svc, err := content.NewService(cmsClient, appCfg.collections(), logger.Named("content"))
	if err != nil {
		logger.Error("content service init failed", zap.Error(err))
		return nil, err
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	flashMgr, err := flash.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("flash session init failed", zap.Error(err))
		return nil, err
	}

	csrfMW, err := csrfMiddleware(appCfg, secure, logger.Named("csrf"))
	if err != nil {
		logger.Error("csrf init failed", zap.Error(err))
		return nil, err
	}

	contactHandler := contactfeature.NewHandler(contactConfig(appCfg, deps, cmsClient, flashMgr, logger), logger.Named("contact"))

	r := chi.NewRouter()

	// Set before mounting so subrouters inherit it.
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, cmsClient, logger)
	if deps.MongoDatabase != nil {
		healthHandler.Journal = submissions.New(deps.MongoDatabase)
	}
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", promhttp.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(svc, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	aboutHandler := aboutfeature.NewHandler(svc, logger)
	r.Mount("/about", aboutfeature.Routes(aboutHandler))

	servicesHandler := servicesfeature.NewHandler(svc, logger)
	r.Mount("/services", servicesfeature.Routes(servicesHandler))

	blogHandler := blogfeature.NewHandler(svc, logger)
	r.Mount("/blog", blogfeature.Routes(blogHandler))

	galleryHandler := galleryfeature.NewHandler(svc, logger)
	r.Mount("/gallery", galleryfeature.Routes(galleryHandler))

	r.With(csrfMW).Mount("/contact", contactfeature.Routes(contactHandler))

	// JSON API, readable cross-origin
	apiHandler := apifeature.NewHandler(svc, logger)
	r.Route("/api", func(r chi.Router) {
		r.Use(apifeature.CORS())
		r.Mount("/posts", apifeature.Routes(apiHandler))
		r.Mount("/contact", contactfeature.APIRoutes(contactHandler))
	})

	return r, nil
}

// contactConfig wires the contact form's collaborators. The journal and the
// limiter are left nil when disabled.
func contactConfig(appCfg AppConfig, deps DBDeps, cmsClient *cms.Client, flashMgr *flash.Manager, logger *zap.Logger) contactfeature.Config {
	cfg := contactfeature.Config{
		CMS:        cmsClient,
		Collection: appCfg.ContactCollectionID,
		Mailer:     mailer.New(appCfg.mailerConfig(), logger.Named("mailer")),
		NotifyTo:   appCfg.ContactNotificationTo,
		Flash:      flashMgr,
	}
	if deps.MongoDatabase != nil {
		cfg.Journal = submissions.New(deps.MongoDatabase)
	}
	if appCfg.ContactRateLimit > 0 {
		cfg.Limiter = ratelimit.New(appCfg.ContactRateLimit, time.Hour)
	}
	// Validated in ValidateConfig.
	cfg.Proxies, _ = ratelimit.ParseTrustedProxies(appCfg.TrustedProxies)
	return cfg
}
