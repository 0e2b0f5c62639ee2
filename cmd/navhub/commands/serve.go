package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/navhub-dev/navhub/db"
	"github.com/navhub-dev/navhub/internal/auth"
	"github.com/navhub-dev/navhub/internal/router"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. The database is migrated on startup and, unless
database.autoSeed is false, the admin account and default search engines are
created when missing.

Examples:
  navhub serve
  navhub serve --config /etc/navhub/config.yaml
  PORT=8080 JWT_SECRET=change-me navhub serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	conn, closeDB, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoSeed {
		if err := db.Seed(ctx, conn, cfg.Admin.Username, cfg.Admin.Password, log); err != nil {
			return err
		}
	}

	secret, source, err := auth.ResolveSecret(cfg.Auth.JWTSecret, cfg.Auth.SecretFile)
	if err != nil {
		log.Warn("token secret could not be persisted, using fallback", zap.Error(err))
	}
	if source == auth.SecretFromFallback {
		log.Warn("using insecure fallback token secret; set JWT_SECRET in production")
	} else {
		log.Info("token secret resolved", zap.String("source", string(source)))
	}

	tokens, err := auth.NewTokenService(secret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := router.NewRouter(router.Dependencies{
		Config: cfg,
		DB:     conn,
		Tokens: tokens,
		Logger: log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
