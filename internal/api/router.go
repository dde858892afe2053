package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nba-gm-sim/matchengine/internal/api/handlers"
	"github.com/nba-gm-sim/matchengine/internal/api/middleware"
	"github.com/nba-gm-sim/matchengine/internal/batch"
	"github.com/nba-gm-sim/matchengine/internal/cache"
	"github.com/nba-gm-sim/matchengine/internal/league"
	"github.com/nba-gm-sim/matchengine/internal/live"
	"github.com/nba-gm-sim/matchengine/internal/store"
	"github.com/nba-gm-sim/matchengine/pkg/config"
)

// SetupRoutes wires the health, simulation, league, and websocket handlers
// onto the given router group.
func SetupRoutes(group *gin.RouterGroup, db *gorm.DB, repo *store.Repository, cacheSvc *cache.Service, hub *live.Hub, runner *batch.Runner, ingestor *league.Ingestor, cfg *config.Config) {
	healthHandler := handlers.NewHealthHandler(db, cacheSvc.Client())
	simulationHandler := handlers.NewSimulationHandler(repo, cacheSvc, hub, runner)
	leagueHandler := handlers.NewLeagueHandler(ingestor, repo, cacheSvc)
	wsHandler := handlers.NewWebSocketHandler(hub)

	group.GET("/healthz", healthHandler.GetHealth)
	group.GET("/readyz", healthHandler.GetReady)

	games := group.Group("/games")
	games.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		games.POST("/simulate", simulationHandler.SimulateGame)
	}
	group.GET("/games/:game_id", simulationHandler.GetGameResult)

	leagues := group.Group("/leagues")
	{
		leagues.GET("/:season_id/standings", leagueHandler.GetStandings)

		ingest := leagues.Group("/:season_id/ingest")
		ingest.Use(middleware.AuthRequired(cfg.JWTSecret), middleware.RequireRole("admin", "batch-runner"))
		ingest.POST("", leagueHandler.IngestGameResult)
	}

	ws := group.Group("/ws")
	ws.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		ws.GET("/games/:game_id", wsHandler.HandleGameReplay)
	}
}
