package store

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nba-gm-sim/matchengine/internal/domain"
)

// Repository persists the durable side effects of a league ingest: the
// full GameResultV2 payload, updated player/team season accumulators, and
// schedule status. It is a thin adapter over gorm.DB and never runs
// business logic itself — internal/league.Ingestor owns accumulation
// semantics, this package only upserts what it is told.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying connection for read paths that need a raw
// query the repository doesn't wrap (e.g. single-column payload fetches).
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// SaveGameResult upserts the finalized payload for one game.
func (r *Repository) SaveGameResult(v2 domain.GameResultV2) error {
	payload, err := json.Marshal(v2)
	if err != nil {
		return err
	}
	rec := GameResultRecord{
		GameID: v2.Game.GameID, SeasonID: v2.Game.SeasonID, Phase: v2.Game.Phase,
		Date: v2.Game.Date, HomeTeamID: v2.Game.HomeTeamID, AwayTeamID: v2.Game.AwayTeamID,
		HomeScore: v2.Final[v2.Game.HomeTeamID], AwayScore: v2.Final[v2.Game.AwayTeamID],
		Payload: datatypes.JSON(payload),
	}
	return r.db.Where(GameResultRecord{GameID: v2.Game.GameID}).
		Assign(rec).
		FirstOrCreate(&GameResultRecord{}).Error
}

// UpsertPlayerStat persists one player's current-season accumulator row.
func (r *Repository) UpsertPlayerStat(seasonID, phase string, stat *domain.PlayerSeasonStat) error {
	totals := make(datatypes.JSONMap, len(stat.Totals))
	for k, v := range stat.Totals {
		totals[k] = v
	}
	rec := PlayerSeasonStatRecord{
		PlayerID: stat.PlayerID, SeasonID: seasonID, Phase: phase,
		Name: stat.Name, TeamID: stat.TeamID, Games: stat.Games, Totals: totals,
	}
	return r.db.Where(PlayerSeasonStatRecord{PlayerID: stat.PlayerID, SeasonID: seasonID, Phase: phase}).
		Assign(rec).
		FirstOrCreate(&PlayerSeasonStatRecord{}).Error
}

// UpsertTeamStat persists one team's current-season accumulator row.
func (r *Repository) UpsertTeamStat(seasonID, phase string, stat *domain.TeamSeasonStat) error {
	totals := make(datatypes.JSONMap, len(stat.Totals))
	for k, v := range stat.Totals {
		totals[k] = v
	}
	breakdowns := make(datatypes.JSONMap, len(stat.Breakdowns))
	for k, v := range stat.Breakdowns {
		breakdowns[k] = v
	}
	rec := TeamSeasonStatRecord{
		TeamID: stat.TeamID, SeasonID: seasonID, Phase: phase,
		Games: stat.Games, Totals: totals, Breakdowns: breakdowns,
	}
	return r.db.Where(TeamSeasonStatRecord{TeamID: stat.TeamID, SeasonID: seasonID, Phase: phase}).
		Assign(rec).
		FirstOrCreate(&TeamSeasonStatRecord{}).Error
}

// MarkScheduleFinal updates a schedule row's status and final score.
func (r *Repository) MarkScheduleFinal(gameID string, homeScore, awayScore int) error {
	return r.db.Model(&ScheduleEntryRecord{}).
		Where("game_id = ?", gameID).
		Updates(map[string]interface{}{"status": "final", "home_score": homeScore, "away_score": awayScore}).Error
}

// ArchiveSeason persists a rolled-over season snapshot as opaque JSON.
func (r *Repository) ArchiveSeason(snap *domain.SeasonSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	rec := SeasonSnapshotRecord{
		SeasonID: snap.SeasonID, ArchivedAtTurn: snap.ArchivedAtTurn, Payload: datatypes.JSON(payload),
	}
	return r.db.Where(SeasonSnapshotRecord{SeasonID: snap.SeasonID}).
		Assign(rec).
		FirstOrCreate(&SeasonSnapshotRecord{}).Error
}

// Standings is one row of a team's won-loss/points-for/points-against view.
type Standings struct {
	TeamID        string
	Wins          int
	Losses        int
	PointsFor     float64
	PointsAgainst float64
}

// LoadStandings computes a standings view from the durable game_results
// table for a given season/phase, used by the read side of the API when
// the redis cache misses.
func (r *Repository) LoadStandings(seasonID, phase string) ([]Standings, error) {
	var rows []GameResultRecord
	if err := r.db.Where("season_id = ? AND phase = ?", seasonID, phase).Find(&rows).Error; err != nil {
		return nil, err
	}
	byTeam := map[string]*Standings{}
	get := func(tid string) *Standings {
		if s, ok := byTeam[tid]; ok {
			return s
		}
		s := &Standings{TeamID: tid}
		byTeam[tid] = s
		return s
	}
	for _, row := range rows {
		home, away := get(row.HomeTeamID), get(row.AwayTeamID)
		home.PointsFor += float64(row.HomeScore)
		home.PointsAgainst += float64(row.AwayScore)
		away.PointsFor += float64(row.AwayScore)
		away.PointsAgainst += float64(row.HomeScore)
		if row.HomeScore > row.AwayScore {
			home.Wins++
			away.Losses++
		} else {
			away.Wins++
			home.Losses++
		}
	}
	out := make([]Standings, 0, len(byTeam))
	for _, s := range byTeam {
		out = append(out, *s)
	}
	return out, nil
}
