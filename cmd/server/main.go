package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nba-gm-sim/matchengine/internal/api"
	"github.com/nba-gm-sim/matchengine/internal/api/middleware"
	"github.com/nba-gm-sim/matchengine/internal/batch"
	"github.com/nba-gm-sim/matchengine/internal/cache"
	matchconfig "github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/league"
	"github.com/nba-gm-sim/matchengine/internal/live"
	"github.com/nba-gm-sim/matchengine/internal/scheduler"
	"github.com/nba-gm-sim/matchengine/internal/store"
	"github.com/nba-gm-sim/matchengine/pkg/config"
	"github.com/nba-gm-sim/matchengine/pkg/database"
	"github.com/nba-gm-sim/matchengine/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger()
	structuredLogger.WithFields(logrus.Fields{
		"version":      "1.0.0",
		"environment":  cfg.Env,
		"database_url": cfg.DatabaseURL,
		"redis_url":    cfg.RedisURL,
	}).Info("Starting nba-gm-matchengine")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.AutoMigrate(store.AllModels...); err != nil {
		logrus.Fatalf("Failed to auto-migrate: %v", err)
	}
	repo := store.NewRepository(db.DB)

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	cacheService := cache.NewService(redisClient, structuredLogger)

	replayHub := live.NewHub(structuredLogger)
	go replayHub.Run()

	leagueState := domain.NewLeagueState()
	ingestor := league.NewIngestor(leagueState)
	ingestor.InvalidateCache = func(teamIDs []string) {
		cacheService.InvalidateTeams(context.Background(), leagueState.ActiveSeasonID, domain.PhaseRegular, teamIDs)
	}

	runner := batch.NewRunner(matchconfig.Default(), cfg.SimulationWorkers, cfg.BatchCircuitThreshold, cfg.BatchCircuitTimeout, structuredLogger)

	cronScheduler := scheduler.New(structuredLogger)
	if _, err := cronScheduler.ScheduleDailySlate(cfg.CronSlateSpec, func() {
		structuredLogger.Info("daily slate trigger fired")
	}); err != nil {
		logrus.Warnf("failed to schedule daily slate: %v", err)
	}
	cronScheduler.Start()
	defer cronScheduler.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS))

	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, db.DB, repo, cacheService, replayHub, runner, ingestor, cfg)

	logrus.Info("=== REGISTERED ROUTES ===")
	for _, route := range router.Routes() {
		logrus.Infof("%s %s", route.Method, route.Path)
	}
	logrus.Info("=========================")

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
