package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/handlers"
	"github.com/KANAL1234/business-erp-system-sub002/internal/middleware"
	"github.com/KANAL1234/business-erp-system-sub002/internal/platform/config"
	"github.com/KANAL1234/business-erp-system-sub002/internal/platform/metrics"
	"github.com/KANAL1234/business-erp-system-sub002/internal/repositories/database/pgsql"
	"github.com/KANAL1234/business-erp-system-sub002/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// @title ERP Ledger API
// @version 1.0
// @description General ledger posting service: manual journal entries, automatic posting of business events, document numbering and trial balance.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	roleCodes, err := services.LoadRoleCodes(cfg.AccountRolesFile)
	if err != nil {
		return err
	}

	ledgerMetrics := metrics.NewLedger()
	repos := pgsql.NewRepositoryProvider(dbPool)
	svc := services.NewServiceContainer(cfg, repos, roleCodes, ledgerMetrics)

	// Every posting rule depends on its role accounts; refuse to start without them.
	if err := svc.Directory.ResolveRoles(ctx); err != nil {
		return err
	}
	if err := svc.Sequence.SeedFromExisting(ctx); err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}
	r.Use(middleware.RateLimit(rateLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, svc, dbPool, ledgerMetrics.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Outbox.Enabled {
		g.Go(func() error {
			return svc.Outbox.Run(gctx)
		})
	}

	return g.Wait()
}
