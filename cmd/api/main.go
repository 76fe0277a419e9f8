package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ccpc-cuj/membership-backend/api/routes"
	"github.com/ccpc-cuj/membership-backend/internal/config"
	"github.com/ccpc-cuj/membership-backend/internal/handlers"
	"github.com/ccpc-cuj/membership-backend/internal/logger"
	"github.com/ccpc-cuj/membership-backend/internal/metrics"
	mongorepo "github.com/ccpc-cuj/membership-backend/internal/repositories/mongodb"
	"github.com/ccpc-cuj/membership-backend/internal/services"
	"github.com/ccpc-cuj/membership-backend/pkg/emailgateway"
	"github.com/ccpc-cuj/membership-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Debug().Msg(".env file not found, using environment variables")
	}

	// The driver connects lazily, so the server comes up even when MongoDB does not.
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI, mongodb.Options{
		ServerSelectionTimeout: cfg.MongoDB.ServerSelectionTimeout,
		SocketTimeout:          cfg.MongoDB.SocketTimeout,
		OperationTimeout:       cfg.MongoDB.OperationTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid MongoDB configuration")
	}

	dbName := cfg.MongoDB.Database
	if dbName == "" {
		dbName = mongodb.DatabaseFromURI(cfg.MongoDB.URI)
	}
	db := mongoClient.Database(dbName)

	memberRepo := mongorepo.NewMemberRepository(db)
	settingRepo := mongorepo.NewSettingRepository(db)
	emailLogRepo := mongorepo.NewEmailLogRepository(db)

	m := metrics.New()

	emailService := services.NewEmailService(newGateway(cfg.Email, log), log, m, cfg.Email.Timeout)
	memberService := services.NewMemberService(memberRepo, emailService, log, m, cfg.Email.Timeout)
	settingsService := services.NewSettingsService(settingRepo, log)
	emailLogService := services.NewEmailLogService(emailLogRepo, log)
	broadcastService := services.NewBroadcastService(memberRepo, emailService, emailLogService, log)
	authService, err := services.NewAdminAuthService(cfg.Admin.Token, cfg.Admin.Emails, cfg.Admin.Passwords, cfg.Admin.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare admin credentials")
	}
	if cfg.Admin.Token == "" {
		log.Warn().Msg("ADMIN_TOKEN is not set; admin routes will refuse every request")
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mongoClient.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("MongoDB unreachable, serving without it for now")
			return
		}
		log.Info().Str("database", dbName).Msg("connected to MongoDB")
		if err := memberRepo.EnsureIndexes(ctx); err != nil {
			log.Error().Err(err).Msg("creating member indexes")
		}
		if err := settingRepo.EnsureIndexes(ctx); err != nil {
			log.Error().Err(err).Msg("creating setting indexes")
		}
		settingsService.Init(ctx)
	}()

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		RegistrationHandler: handlers.NewRegistrationHandler(memberService, log),
		AdminHandler:        handlers.NewAdminHandler(authService, memberService, broadcastService),
		LegacyHandler:       handlers.NewLegacyHandler(authService, memberService, settingsService),
		EmailHandler:        handlers.NewEmailHandler(broadcastService, emailLogService),
		AdminVerifier:       authService.TokenVerifier(),
		Metrics:             m,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("disconnecting from MongoDB")
	}

	log.Info().Msg("server exited")
}

// newGateway picks the Brevo API when a key is configured. EMAIL_MOCK logs messages
// instead of sending them; without either, every send fails.
func newGateway(cfg config.EmailConfig, log zerolog.Logger) emailgateway.Gateway {
	if cfg.Mock {
		log.Warn().Msg("EMAIL_MOCK is set, messages will only be logged")
		return emailgateway.NewLogGateway(log)
	}
	if cfg.APIKey == "" {
		log.Warn().Msg("email provider not configured, every send will fail")
		return emailgateway.NewUnconfiguredGateway(log)
	}
	return emailgateway.NewBrevoGateway(cfg.APIURL, cfg.APIKey, emailgateway.Address{
		Email: cfg.From,
		Name:  cfg.SenderName,
	}, cfg.Timeout)
}
