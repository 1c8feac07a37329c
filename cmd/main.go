package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/okonst/portfolio-server/internal/api/rest/handler"
	"github.com/okonst/portfolio-server/internal/api/rest/middleware"
	"github.com/okonst/portfolio-server/internal/api/rest/server"
	"github.com/okonst/portfolio-server/internal/config"
	"github.com/okonst/portfolio-server/internal/identity"
	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/mail"
	"github.com/okonst/portfolio-server/internal/repository/postgres"
	"github.com/okonst/portfolio-server/internal/secret"
	"github.com/okonst/portfolio-server/internal/service"
	storage "github.com/okonst/portfolio-server/internal/storage/minio"
	"github.com/okonst/portfolio-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer conn.Close()

	userRepo := postgres.NewUserRepository(conn)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(conn)
	settingsRepo := postgres.NewSettingsRepository(conn)
	projectRepo := postgres.NewProjectRepository(conn)

	encryptionKey, err := cfg.Auth.EncryptionKey()
	if err != nil {
		logger.Fatal("failed to load encryption key", "error", err)
	}
	cipher, err := secret.NewCipher(encryptionKey)
	if err != nil {
		logger.Fatal("failed to initialize secret cipher", "error", err)
	}

	tokenManager, err := token.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}

	verifier, err := identity.NewBcryptVerifier(userRepo, cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("failed to initialize credential verifier", "error", err)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	settingsService := service.NewSettings(settingsRepo, cipher, cfg.Settings.CacheTTL, logger)
	mailer := mail.NewSMTP(settingsService, logger)
	sessionService := service.NewSession(tokenManager, refreshTokenRepo, userRepo, conn, cfg.Auth.RefreshTokenTTL, logger)
	accountService := service.NewAccount(userRepo, verifier, sessionService, tokenManager, mailer, conn,
		cfg.Auth.FrontendBaseURL, logger)
	projectService := service.NewProject(projectRepo, storageClient, logger)

	authenticate := middleware.NewAuthenticate(tokenManager, logger)
	srv := server.New(
		fmt.Sprintf(":%s", cfg.HTTP.Port),
		cfg.HTTP.ReadTimeout,
		cfg.HTTP.WriteTimeout,
		authenticate,
		server.Handlers{
			Auth:     handler.NewAuth(accountService, sessionService, logger),
			Account:  handler.NewAccount(accountService, logger),
			Project:  handler.NewProject(projectService, logger),
			Settings: handler.NewSettings(settingsService, logger),
		},
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", srv.Address())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	logAppVersion(logger)

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion(l *logger.Logger) {
	l.Info("Build info",
		"version", buildVersion,
		"date", buildDate,
		"commit", buildCommit)
}
