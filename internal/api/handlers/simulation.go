package handlers

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nba-gm-sim/matchengine/internal/batch"
	"github.com/nba-gm-sim/matchengine/internal/cache"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/live"
	"github.com/nba-gm-sim/matchengine/internal/store"
	"github.com/nba-gm-sim/matchengine/pkg/utils"
)

// SimulationHandler runs single games synchronously through the shared
// circuit-breaker runner and pushes the result onto the replay hub.
type SimulationHandler struct {
	repo   *store.Repository
	cache  *cache.Service
	hub    *live.Hub
	runner *batch.Runner
}

func NewSimulationHandler(repo *store.Repository, cacheSvc *cache.Service, hub *live.Hub, runner *batch.Runner) *SimulationHandler {
	return &SimulationHandler{repo: repo, cache: cacheSvc, hub: hub, runner: runner}
}

type simulateRequest struct {
	GameID   string       `json:"game_id" binding:"required"`
	Date     string       `json:"date" binding:"required"`
	SeasonID string       `json:"season_id" binding:"required"`
	Phase    string       `json:"phase" binding:"required"`
	Home     *domain.Team `json:"home" binding:"required"`
	Away     *domain.Team `json:"away" binding:"required"`
	Seed     int64        `json:"seed"`
}

// SimulateGame runs one game and returns its finalized GameResultV2.
func (h *SimulationHandler) SimulateGame(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body", err.Error())
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	job := batch.Job{
		Ctx: domain.GameContext{
			GameID: req.GameID, Date: req.Date, SeasonID: req.SeasonID,
			Phase: req.Phase, HomeTeamID: req.Home.TeamID, AwayTeamID: req.Away.TeamID,
		},
		Home: req.Home, Away: req.Away, Seed: seed,
	}

	results, err := h.runner.RunSlate(c.Request.Context(), []batch.Job{job}, nil)
	if err != nil {
		utils.SendInternalError(c, "simulation failed: "+err.Error())
		return
	}
	result := results[0]
	if result.Err != nil {
		utils.SendInternalError(c, "simulation failed: "+result.Err.Error())
		return
	}

	if err := h.repo.SaveGameResult(*result.V2); err != nil {
		utils.SendInternalError(c, "failed to persist game result: "+err.Error())
		return
	}
	h.cache.SetWithRetry(context.Background(), cache.GameResultKey(req.GameID), result.V2, cache.GameResultTTL)

	h.hub.BroadcastFrame(live.ReplayFrame{
		Type: "game_complete", GameID: req.GameID,
		Data: map[string]interface{}{"final": result.V2.Final},
	})

	utils.SendSuccess(c, result.V2)
}

// GetGameResult returns a previously simulated game, preferring the cache
// and falling back to the durable store on a miss.
func (h *SimulationHandler) GetGameResult(c *gin.Context) {
	gameID := c.Param("game_id")
	if gameID == "" {
		utils.SendValidationError(c, "game_id is required", "")
		return
	}

	ctx := c.Request.Context()
	var cached domain.GameResultV2
	if hit, err := h.cache.Get(ctx, cache.GameResultKey(gameID), &cached); err == nil && hit {
		utils.SendSuccess(c, cached)
		return
	}

	var row struct {
		Payload []byte
	}
	if err := h.repo.DB().Table("game_results").Select("payload").
		Where("game_id = ?", gameID).Scan(&row).Error; err != nil || len(row.Payload) == 0 {
		utils.SendNotFound(c, fmt.Sprintf("game %s not found", gameID))
		return
	}
	c.Data(http.StatusOK, "application/json", row.Payload)
}
