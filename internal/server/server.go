package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/api"
	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

// Options carries the optional collaborators of a Server.
type Options struct {
	// Redis backs the shared rate limiter. Without it limits are per process.
	Redis redis.Cmdable
	// Store receives recipe images. Without it the upload route is not served.
	Store  service.ObjectStore
	Logger *slog.Logger
}

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	logger *slog.Logger
}

// New wires services, handlers and middleware into a gin engine.
func New(cfg *config.Config, db *gorm.DB, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestTimeout(cfg.RequestTimeout),
	)
	router.NoRoute(middleware.NotFound())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	recipes := service.NewRecipeService(db)
	deps := api.Dependencies{
		Recipes:      recipes,
		RecipeTypes:  service.NewRecipeTypeService(db),
		Users:        service.NewUserService(db),
		Identity:     service.NewIdentityService(cfg.IdentitySecret, cfg.IdentityIssuer),
		WriteLimiter: newWriteLimiter(cfg, opts.Redis),
		Ping:         func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	}
	if opts.Store != nil {
		deps.Images = service.NewRecipeImageService(db, opts.Store)
	}
	api.RegisterRoutes(router, deps)

	return &Server{
		cfg:    cfg,
		router: router,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: cfg.RequestTimeout,
		},
	}
}

func newWriteLimiter(cfg *config.Config, client redis.Cmdable) middleware.Limiter {
	limits := middleware.RateLimitConfig{
		Window:    cfg.RateLimitWindow,
		Limit:     cfg.RateLimitMax,
		KeyPrefix: "rate_limit:recipe_writes",
	}
	if client != nil {
		return middleware.NewRedisLimiter(client, limits)
	}
	return middleware.NewLocalLimiter(limits)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "addr", s.http.Addr, "environment", s.cfg.Environment.String())
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down server")
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
