package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/form-service/internal/handlers"
	"github.com/SAP-F-2025/form-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/form-service/internal/services"
	"github.com/SAP-F-2025/form-service/internal/utils"
	"github.com/SAP-F-2025/form-service/internal/validator"
	"github.com/SAP-F-2025/form-service/pkg"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP form store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		migrate, err := cmd.Flags().GetBool("migrate")
		if err != nil {
			return err
		}
		return serve(ctx, migrate)
	},
}

func serve(ctx context.Context, migrate bool) error {
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	repo := postgres.NewRepository(db)
	if migrate {
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
	}

	formCache, closeCache := pkg.NewFormCache(ctx, cfg, logger)
	defer closeCache()
	if migrate {
		if err := formCache.Flush(ctx); err != nil {
			logger.Warn("Failed to flush form cache", "error", err)
		}
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(repo, formCache, publisher, validator.New(), logger)

	var parser handlers.TokenParser
	if cfg.Auth.Enabled {
		parser = handlers.NewCasdoorTokenParser(cfg.Auth)
		logger.Info("Author authentication enabled", "endpoint", cfg.Auth.Endpoint)
	}
	router := handlers.NewHandlerManager(serviceManager, parser, utils.NewSlogLogger(logger)).NewRouter()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "Run database migrations before serving")
}
