// Package league folds a validated GameResultV2 into season-accumulated
// league state: player/team totals, the finalized-games list, the master
// schedule, and cached-view invalidation. Grounded on state_core.py's
// phase-container resolution and season-rollover logic and
// state_results.py's additive accumulation helpers.
package league

import (
	"sync"

	"github.com/nba-gm-sim/matchengine/internal/adapter"
	"github.com/nba-gm-sim/matchengine/internal/domain"
)

// Ingestor serializes writes to a single LeagueState: ingest_game_result
// is the sole mutator and every call is serialized through one mutex.
type Ingestor struct {
	mu    sync.Mutex
	state *domain.LeagueState

	turnCounter int64

	// InvalidateCache is called (outside the lock) with the set of
	// affected team_ids whenever cached views need rebuilding; nil is a
	// valid no-op hook.
	InvalidateCache func(teamIDs []string)
}

func NewIngestor(state *domain.LeagueState) *Ingestor {
	return &Ingestor{state: state}
}

// IngestGameResult validates, accumulates, and archives a finalized game
// into league state, rolling the season over first if season_id changed.
func (ing *Ingestor) IngestGameResult(v2 domain.GameResultV2) error {
	if err := adapter.ValidateV2(&v2); err != nil {
		return err
	}

	ing.mu.Lock()
	defer ing.mu.Unlock()
	ing.turnCounter++

	if v2.Game.SeasonID != ing.state.ActiveSeasonID && ing.state.ActiveSeasonID != "" {
		ing.rolloverLocked(v2.Game.SeasonID)
	} else if ing.state.ActiveSeasonID == "" {
		ing.state.ActiveSeasonID = v2.Game.SeasonID
	}

	container := ing.targetContainer(v2.Game.Phase)

	for tid, team := range v2.Teams {
		accumulateTeam(container, tid, team)
		for _, row := range team.Players {
			accumulatePlayer(container, row)
		}
	}

	summary := domain.GameSummary{
		GameID: v2.Game.GameID, Date: v2.Game.Date,
		HomeTeamID: v2.Game.HomeTeamID, AwayTeamID: v2.Game.AwayTeamID,
		HomeScore: v2.Final[v2.Game.HomeTeamID], AwayScore: v2.Final[v2.Game.AwayTeamID],
		Status: "final", IsOvertime: v2.Game.OvertimePeriods > 0,
		Phase: v2.Game.Phase, SeasonID: v2.Game.SeasonID,
	}
	container.Games = append(container.Games, summary)
	container.GameResults[v2.Game.GameID] = v2
	if v2.Game.Phase == domain.PhaseRegular {
		ing.state.Games = append(ing.state.Games, summary)
		ing.state.GameResults[v2.Game.GameID] = v2
	}

	ing.markScheduleFinal(summary)

	if ing.InvalidateCache != nil {
		teamIDs := []string{v2.Game.HomeTeamID, v2.Game.AwayTeamID}
		go ing.InvalidateCache(teamIDs)
	}
	return nil
}

// targetContainer resolves the phase's writable slice: regular writes go
// to the top-level league state expressed as an implicit container view,
// non-regular phases write to PhaseContainers[phase].
func (ing *Ingestor) targetContainer(phase string) *domain.PhaseContainer {
	if phase == domain.PhaseRegular {
		return &domain.PhaseContainer{
			PlayerStats: ing.state.PlayerStats,
			TeamStats:   ing.state.TeamStats,
			GameResults: ing.state.GameResults,
		}
	}
	c, ok := ing.state.PhaseContainers[phase]
	if !ok {
		c = domain.NewPhaseContainer()
		ing.state.PhaseContainers[phase] = c
	}
	return c
}

func accumulateTeam(c *domain.PhaseContainer, teamID string, team domain.GameResultV2Team) {
	stat, ok := c.TeamStats[teamID]
	if !ok {
		stat = &domain.TeamSeasonStat{TeamID: teamID, Totals: map[string]float64{}, Breakdowns: map[string]int{}}
		c.TeamStats[teamID] = stat
	}
	stat.Games++
	for k, v := range team.Totals {
		stat.Totals[k] += v
	}
	for k, v := range team.ExtraTotals {
		stat.Totals[k] += v
	}
	for k, v := range team.Breakdowns {
		stat.Breakdowns[k] += v
	}
}

// _META_PLAYER_KEYS equivalent: fields overwritten rather than summed.
func accumulatePlayer(c *domain.PhaseContainer, row domain.PlayerRowV2) {
	stat, ok := c.PlayerStats[row.PlayerID]
	if !ok {
		stat = &domain.PlayerSeasonStat{PlayerID: row.PlayerID, Totals: map[string]float64{}}
		c.PlayerStats[row.PlayerID] = stat
	}
	stat.Name = row.Name
	stat.TeamID = row.TeamID
	stat.Games++
	for k, v := range row.Counters {
		stat.Totals[k] += v
	}
}

func (ing *Ingestor) markScheduleFinal(summary domain.GameSummary) {
	entry, ok := ing.state.MasterSchedule.ByID[summary.GameID]
	if !ok {
		return
	}
	entry.Status = "final"
	entry.HomeScore = summary.HomeScore
	entry.AwayScore = summary.AwayScore
}

// rolloverLocked archives the current regular + phase accumulators into
// season_history and zeroes the live slices. Caller must hold ing.mu.
func (ing *Ingestor) rolloverLocked(newSeasonID string) {
	prevSeasonID := ing.state.ActiveSeasonID
	snapshot := &domain.SeasonSnapshot{
		SeasonID:       prevSeasonID,
		ArchivedAtTurn: ing.turnCounter,
		Regular: &domain.PhaseContainer{
			PlayerStats: ing.state.PlayerStats,
			TeamStats:   ing.state.TeamStats,
			GameResults: ing.state.GameResults,
		},
		PhaseContainers: ing.state.PhaseContainers,
	}
	ing.state.SeasonHistory[prevSeasonID] = snapshot

	ing.state.PlayerStats = map[string]*domain.PlayerSeasonStat{}
	ing.state.TeamStats = map[string]*domain.TeamSeasonStat{}
	ing.state.GameResults = map[string]domain.GameResultV2{}
	ing.state.PhaseContainers = map[string]*domain.PhaseContainer{
		domain.PhasePreseason: domain.NewPhaseContainer(),
		domain.PhasePlayIn:    domain.NewPhaseContainer(),
		domain.PhasePlayoffs:  domain.NewPhaseContainer(),
	}
	ing.state.ActiveSeasonID = newSeasonID
}
