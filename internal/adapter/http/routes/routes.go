package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "quote_negotiation/docs" // swag init output
	"quote_negotiation/internal/adapter/http/dto/request"
	"quote_negotiation/internal/adapter/http/handlers"
	"quote_negotiation/internal/adapter/http/middleware"
	"quote_negotiation/internal/config"
	"quote_negotiation/internal/infrastructure/logging"
	"quote_negotiation/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

// Server owns the router and every resource opened for it.
type Server struct {
	cfg    config.Config
	log    zerolog.Logger
	router *gin.Engine
	deps   *dependencies
}

// New connects storage and the notifier selected by cfg and builds the router.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	deps, err := newDependencies(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	uc := usecase.NewQuoteRequestUseCase(deps.repo, deps.notifier, logger, usecase.Options{
		CounterMessageMaxLength: cfg.CounterMessageMaxLength,
	})
	router, err := NewRouter(cfg, logger, handlers.NewQuoteRequestHandler(uc))
	if err != nil {
		deps.close(ctx)
		return nil, err
	}

	return &Server{cfg: cfg, log: logging.Component(logger, "http"), router: router, deps: deps}, nil
}

// NewRouter registers middlewares and every route on a fresh engine.
func NewRouter(cfg config.Config, logger zerolog.Logger, quoteRequestHandler *handlers.QuoteRequestHandler) (*gin.Engine, error) {
	if err := request.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	setMiddlewares(router, cfg, logging.Component(logger, "http"))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRequestRoutes(v1, middleware.Authenticate(cfg.JWTSecret, cfg.JWTIssuer), quoteRequestHandler)
	return router, nil
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains requests and pending
// notifications before closing storage.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Str("storage", s.cfg.StorageDriver).
			Str("notifier", s.cfg.NotifierDriver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	s.log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error().Err(err).Msg("http shutdown failed")
	}
	s.deps.close(shutdownCtx)
	return serveErr
}

func setMiddlewares(router *gin.Engine, cfg config.Config, logger zerolog.Logger) {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = true
	}

	router.Use(middleware.AccessLog(logger))
	router.Use(middleware.Recover(logger))
	router.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowed["*"] || allowed[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
