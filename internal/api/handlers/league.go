package handlers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/nba-gm-sim/matchengine/internal/cache"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/league"
	"github.com/nba-gm-sim/matchengine/internal/store"
	"github.com/nba-gm-sim/matchengine/pkg/utils"
)

// LeagueHandler exposes the league-wide read models (standings) and the
// ingest endpoint that folds a finalized game into the live league state.
type LeagueHandler struct {
	ingestor *league.Ingestor
	repo     *store.Repository
	cache    *cache.Service
}

func NewLeagueHandler(ingestor *league.Ingestor, repo *store.Repository, cacheSvc *cache.Service) *LeagueHandler {
	return &LeagueHandler{ingestor: ingestor, repo: repo, cache: cacheSvc}
}

// IngestGameResult folds a finalized GameResultV2 into the active league
// state and persists it durably. Gated to trusted batch-runner/admin
// credentials via middleware.RequireRole.
func (h *LeagueHandler) IngestGameResult(c *gin.Context) {
	var v2 domain.GameResultV2
	if err := c.ShouldBindJSON(&v2); err != nil {
		utils.SendValidationError(c, "invalid game result payload", err.Error())
		return
	}

	if err := h.ingestor.IngestGameResult(v2); err != nil {
		utils.SendValidationError(c, "ingest rejected", err.Error())
		return
	}

	if err := h.repo.SaveGameResult(v2); err != nil {
		utils.SendInternalError(c, "failed to persist ingested game: "+err.Error())
		return
	}

	utils.SendSuccess(c, gin.H{"game_id": v2.Game.GameID, "status": "ingested"})
}

// GetStandings returns the season/phase standings table, preferring the
// cache and falling back to an aggregation over durable game results.
func (h *LeagueHandler) GetStandings(c *gin.Context) {
	seasonID := c.Param("season_id")
	phase := c.DefaultQuery("phase", domain.PhaseRegular)

	ctx := c.Request.Context()
	key := cache.StandingsKey(seasonID, phase)

	var cached []store.Standings
	if hit, err := h.cache.Get(ctx, key, &cached); err == nil && hit {
		utils.SendSuccess(c, cached)
		return
	}

	standings, err := h.repo.LoadStandings(seasonID, phase)
	if err != nil {
		utils.SendInternalError(c, fmt.Sprintf("failed to load standings for %s/%s: %s", seasonID, phase, err.Error()))
		return
	}

	h.cache.SetWithRetry(context.Background(), key, standings, cache.StandingsTTL)
	utils.SendSuccess(c, standings)
}
