package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fnitalia/community-hub/config"
	"github.com/fnitalia/community-hub/db"
	"github.com/fnitalia/community-hub/handlers"
	"github.com/fnitalia/community-hub/live"
	"github.com/fnitalia/community-hub/repositories"
	"github.com/fnitalia/community-hub/routes"
	"github.com/fnitalia/community-hub/services"
	"github.com/fnitalia/community-hub/storage"
)

const (
	dbConnectTimeout    = 5 * time.Second
	shutdownTimeout     = 15 * time.Second
	statusWatchInterval = 30 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}

	hub := live.NewHub(logger)
	go hub.Run()

	// Repositories
	userRepo := repositories.NewPostgresUserRepository(database)
	newsRepo := repositories.NewPostgresNewsRepository(database)
	tournamentRepo := repositories.NewPostgresTournamentRepository(database)
	playerRepo := repositories.NewPostgresPlayerRepository(database)
	campaignRepo := repositories.NewPostgresCampaignRepository(database)
	predictionRepo := repositories.NewPostgresPredictionRepository(database)
	subscriberRepo := repositories.NewPostgresSubscriberRepository(database)

	// Services
	authService := services.NewAuthService(userRepo)
	newsService := services.NewNewsService(newsRepo, uploader)
	tournamentService := services.NewTournamentService(tournamentRepo, uploader, hub, logger)
	playerService := services.NewPlayerService(playerRepo, uploader)
	campaignService := services.NewCampaignService(campaignRepo, tournamentRepo)
	predictionService := services.NewPredictionService(predictionRepo, campaignRepo, hub)
	emailService := services.NewEmailService(cfg)
	newsletterService := services.NewNewsletterService(subscriberRepo, emailService, logger)
	dashboardService := services.NewDashboardService(
		newsRepo, tournamentRepo, playerRepo, campaignRepo, predictionRepo, subscriberRepo,
	)

	// Handlers
	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService, []byte(cfg.JWTSecretKey)),
		News:       handlers.NewNewsHandler(newsService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Player:     handlers.NewPlayerHandler(playerService),
		Campaign:   handlers.NewCampaignHandler(campaignService),
		Prediction: handlers.NewPredictionHandler(predictionService),
		Newsletter: handlers.NewNewsletterHandler(newsletterService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService),
		Websocket:  handlers.NewWebsocketHandler(hub, logger),
	}

	router := routes.SetupRoutes(h, []byte(cfg.JWTSecretKey), cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go watchTournamentStatuses(watchCtx, tournamentService, logger)

	go func() {
		logger.Info("starting server", slog.Int("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	stopWatch()
	hub.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// watchTournamentStatuses periodically re-derives every tournament's status
// and pushes transitions to the live channel.
func watchTournamentStatuses(ctx context.Context, svc services.TournamentService, logger *slog.Logger) {
	ticker := time.NewTicker(statusWatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.BroadcastStatusTransitions(ctx); err != nil {
				logger.Error("tournament status watch failed", slog.Any("error", err))
			}
		}
	}
}
