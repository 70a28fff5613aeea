package wire

import (
	"context"
	"net/http"
	"time"

	"user-account/internal/adaptor"
	"user-account/internal/data/repository"
	"user-account/internal/usecase"
	"user-account/pkg/imagestore"
	"user-account/pkg/mailer"
	"user-account/pkg/middleware"
	"user-account/pkg/token"
	"user-account/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the assembled HTTP router
type App struct {
	Router *chi.Mux
}

// Options lets callers swap the outbound collaborators, mostly for tests.
// Nil fields fall back to the production implementations.
type Options struct {
	Mailer   mailer.Dispatcher
	Tokens   token.Codec
	Registry *prometheus.Registry
}

// Wiring builds every service and handler and mounts the routes.
func Wiring(repo *repository.Repository, db Pinger, config *utils.Config, logger *zap.Logger, opts Options) *App {
	if opts.Mailer == nil {
		opts.Mailer = mailer.NewSMTPMailer(config.Email, logger)
	}
	if opts.Tokens == nil {
		opts.Tokens = token.NewJWTCodec()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	images := imagestore.New(config.Upload.MaxFileSize, config.Upload.Dir, logger)

	service := usecase.NewService(usecase.Deps{
		Repo:   repo,
		Images: images,
		Tokens: opts.Tokens,
		Mailer: opts.Mailer,
	}, config, logger)
	handler := adaptor.NewHandler(service, images.MaxFileSize(), logger)

	router := setupRouter(handler, db, config, logger, opts.Registry)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	db Pinger,
	config *utils.Config,
	logger *zap.Logger,
	registry *prometheus.Registry,
) *chi.Mux {
	r := chi.NewRouter()

	metrics := middleware.NewMetrics(registry)

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.Activation.ClientURL))
	r.Use(metrics.Handler)

	r.Route("/api/users", func(r chi.Router) {
		wireRegister(r, handler.Register, config, logger)
		wireUser(r, handler.User)
	})

	r.Get("/health", health(db, logger))
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusNotFound, "route not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, "method not allowed", nil, nil)
	})

	return r
}

func health(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, "database unavailable", nil, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	}
}
