package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sparetrackhq/sparetrack-backend/api/routes"
	"github.com/sparetrackhq/sparetrack-backend/internal/attachments"
	"github.com/sparetrackhq/sparetrack-backend/internal/authn"
	"github.com/sparetrackhq/sparetrack-backend/internal/equipment"
	"github.com/sparetrackhq/sparetrack-backend/pkg/config"
	"github.com/sparetrackhq/sparetrack-backend/pkg/db"
	"github.com/sparetrackhq/sparetrack-backend/pkg/db/models"
	"github.com/sparetrackhq/sparetrack-backend/pkg/logger"
	"github.com/sparetrackhq/sparetrack-backend/pkg/mail"
	"github.com/sparetrackhq/sparetrack-backend/pkg/metrics"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbCfg := cfg.DB
	authDBCfg := cfg.AuthDB.Pool()
	if cfg.FeatureFlags.UseSQLite {
		dbCfg.Driver = "sqlite"
		authDBCfg.Driver = "sqlite"
	}

	equipmentDB, err := db.New(ctx, dbCfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap equipment database", err)
		os.Exit(1)
	}
	defer closeQuietly(logg, equipmentDB, "equipment database")

	authDB, err := db.New(ctx, authDBCfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap auth database", err)
		os.Exit(1)
	}
	defer closeQuietly(logg, authDB, "auth database")

	if cfg.App.IsDev() && cfg.FeatureFlags.AutoMigrate {
		if err := equipmentDB.DB().AutoMigrate(&models.Equipment{}); err != nil {
			logg.Error(ctx, "failed to migrate equipment schema", err)
			os.Exit(1)
		}
		if err := authDB.DB().AutoMigrate(&models.Login{}, &models.Employee{}); err != nil {
			logg.Error(ctx, "failed to migrate auth schema", err)
			os.Exit(1)
		}
	}

	store, err := attachments.NewStore(cfg.Uploads.Dir)
	if err != nil {
		logg.Error(ctx, "failed to prepare upload directories", err)
		os.Exit(1)
	}

	equipmentRepo := equipment.NewRepository(equipmentDB.DB())
	equipmentService, err := equipment.NewService(equipmentRepo)
	if err != nil {
		logg.Error(ctx, "failed to create equipment service", err)
		os.Exit(1)
	}

	attachmentService, err := attachments.NewService(equipmentRepo, store, logg)
	if err != nil {
		logg.Error(ctx, "failed to create attachment service", err)
		os.Exit(1)
	}

	var mailer authn.Mailer
	if cfg.Mail.SendgridAPIKey == "" && cfg.App.IsDev() {
		logg.Warn(ctx, "no sendgrid key configured, OTP mail will only be logged")
		mailer = mail.NewLogSender(logg)
	} else {
		mailClient, err := mail.New(cfg.Mail)
		if err != nil {
			logg.Error(ctx, "failed to create mail client", err)
			os.Exit(1)
		}
		mailer = mailClient
	}

	authService, err := authn.NewService(authn.ServiceParams{
		Repo:   authn.NewRepository(authDB.DB()),
		Mailer: mailer,
		Config: cfg.Auth,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	addr := cfg.App.Host + ":" + cfg.App.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			httpMetrics,
			equipmentService,
			attachmentService,
			authService,
			store.Root(),
			equipmentDB,
			authDB,
		),
	}

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
		"tls":  cfg.TLS.Enabled(),
	})
	logg.Info(startCtx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		if cfg.TLS.Enabled() {
			errCh <- server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func closeQuietly(logg *logger.Logger, client *db.Client, name string) {
	if err := client.Close(); err != nil {
		logg.Error(context.Background(), "error closing "+name, err)
	}
}
