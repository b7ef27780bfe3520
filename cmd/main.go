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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/soccerhub/backend/config"
	"github.com/soccerhub/backend/db"
	"github.com/soccerhub/backend/fixtures"
	"github.com/soccerhub/backend/handlers"
	"github.com/soccerhub/backend/repositories"
	api "github.com/soccerhub/backend/routes"
	"github.com/soccerhub/backend/services"
	"github.com/soccerhub/backend/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewR2Uploader(storage.R2Config{
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
		logger.Info("R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, crest uploads disabled")
	}

	wsHub := fixtures.NewHub(logger)
	go wsHub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	organizationRepo := repositories.NewPostgresOrganizationRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	divisionRepo := repositories.NewPostgresDivisionRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	logger.Info("repositories initialized")

	locker := services.NewDivisionLocker()

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey)
	organizationService := services.NewOrganizationService(organizationRepo)
	tournamentService := services.NewTournamentService(tournamentRepo, logger)
	teamService := services.NewTeamService(teamRepo, uploader, logger)
	playerService := services.NewPlayerService(playerRepo)
	venueService := services.NewVenueService(venueRepo)
	standingService := services.NewStandingService(standingRepo, divisionRepo, teamRepo, uploader)
	matchService := services.NewMatchService(
		dbConn,
		matchRepo,
		divisionRepo,
		tournamentRepo,
		standingService,
		locker,
		wsHub,
		logger,
	)
	divisionService := services.NewDivisionService(
		dbConn,
		divisionRepo,
		tournamentRepo,
		teamRepo,
		venueRepo,
		matchRepo,
		standingRepo,
		standingService,
		locker,
		wsHub,
		logger,
	)
	logger.Info("services initialized")

	statusScheduler, err := services.NewStatusScheduler(tournamentService, cfg.StatusInterval, logger)
	if err != nil {
		logger.Error("failed to create status scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	statusScheduler.Start()
	defer func() {
		if err := statusScheduler.Shutdown(); err != nil {
			logger.Error("failed to shut down status scheduler", slog.Any("error", err))
		}
	}()
	logger.Info("tournament status scheduler started", slog.Duration("interval", cfg.StatusInterval))

	authHandler := handlers.NewAuthHandler(authService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService, tournamentService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, divisionService)
	divisionHandler := handlers.NewDivisionHandler(divisionService, standingService)
	teamHandler := handlers.NewTeamHandler(teamService, playerService, matchService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	venueHandler := handlers.NewVenueHandler(venueService)
	matchHandler := handlers.NewMatchHandler(matchService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, divisionService, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		organizationHandler,
		tournamentHandler,
		divisionHandler,
		teamHandler,
		playerHandler,
		venueHandler,
		matchHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
