package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/auth"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/config"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/middleware"
)

// App is the HTTP application: the gin engine plus the handlers it
// routes to.
type App struct {
	config  *config.Config
	logger  zerolog.Logger
	engine  *gin.Engine
	game    *GameHandler
	feed    *FeedHandler
	httpSrv *http.Server
}

// Options bundles the collaborators an App needs.
type Options struct {
	Config      *config.Config
	Logger      zerolog.Logger
	GameHandler *GameHandler
	FeedHandler *FeedHandler
}

// New creates the application and registers its middleware and routes.
func New(opts Options) *App {
	if opts.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		config: opts.Config,
		logger: opts.Logger,
		engine: gin.New(),
		game:   opts.GameHandler,
		feed:   opts.FeedHandler,
	}

	app.useCommonMiddlewares()
	app.registerRoutes()

	return app
}

func (a *App) useCommonMiddlewares() {
	a.engine.Use(middleware.Recovery(a.logger))
	a.engine.Use(middleware.TraceID())
	a.engine.Use(middleware.Logging(a.logger))
	if a.config.Server.EnableCORS {
		a.engine.Use(middleware.CORS())
	}
}

func (a *App) registerRoutes() {
	a.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := a.engine.Group("/api/roulette")
	{
		api.GET("/balance", a.game.Balance)
		api.POST("/spin", a.game.Spin)
		api.GET("/history", a.game.History)
		api.GET("/fairness/commitment", a.game.Commitment)
		api.GET("/fairness/last-round", a.game.LastRound)
		api.GET("/rounds/ws", a.feed.Stream)

		// Reset wipes the ledger; gate it when a secret is set.
		api.POST("/reset", auth.JWTMiddleware(a.config.JWT.Secret, a.logger), a.game.Reset)
	}
}

// Engine exposes the gin engine for tests.
func (a *App) Engine() *gin.Engine {
	return a.engine
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then
// shuts down gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.RunWithContext(ctx)
}

// RunWithContext starts the HTTP server and shuts it down when ctx is
// cancelled.
func (a *App) RunWithContext(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.config.Server.Port)
	a.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      a.engine,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", addr).Msg("HTTP server starting")
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("HTTP server shutdown failed")
		return err
	}
	return nil
}
