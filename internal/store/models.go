// Package store holds the GORM persistence models for finalized game
// results, season-accumulated stats, and the master schedule. These are
// the durable counterparts of internal/domain's in-memory LeagueState;
// the ingest path mutates LeagueState first and a caller (internal/api or
// internal/batch) is responsible for persisting the affected rows.
package store

import (
	"time"

	"gorm.io/datatypes"
)

// GameResultRecord stores one finalized game's full GameResultV2 payload
// as JSON alongside the denormalized columns needed for fast lookups.
type GameResultRecord struct {
	ID         uint   `gorm:"primaryKey"`
	GameID     string `gorm:"uniqueIndex;size:64;not null"`
	SeasonID   string `gorm:"index;size:16;not null"`
	Phase      string `gorm:"index;size:16;not null"`
	Date       string `gorm:"index;size:10;not null"`
	HomeTeamID string `gorm:"index;size:8;not null"`
	AwayTeamID string `gorm:"index;size:8;not null"`
	HomeScore  int
	AwayScore  int
	Payload    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time
}

func (GameResultRecord) TableName() string { return "game_results" }

// PlayerSeasonStatRecord is the durable row for one player's season
// accumulators within one (season_id, phase) bucket.
type PlayerSeasonStatRecord struct {
	ID       uint   `gorm:"primaryKey"`
	PlayerID string `gorm:"index:idx_player_season,unique;size:32;not null"`
	SeasonID string `gorm:"index:idx_player_season,unique;size:16;not null"`
	Phase    string `gorm:"index:idx_player_season,unique;size:16;not null"`
	Name     string `gorm:"size:128"`
	TeamID   string `gorm:"index;size:8"`
	Games    int
	Totals   datatypes.JSONMap `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (PlayerSeasonStatRecord) TableName() string { return "player_season_stats" }

// TeamSeasonStatRecord is the durable row for one team's season
// accumulators within one (season_id, phase) bucket.
type TeamSeasonStatRecord struct {
	ID         uint   `gorm:"primaryKey"`
	TeamID     string `gorm:"index:idx_team_season,unique;size:8;not null"`
	SeasonID   string `gorm:"index:idx_team_season,unique;size:16;not null"`
	Phase      string `gorm:"index:idx_team_season,unique;size:16;not null"`
	Games      int
	Totals     datatypes.JSONMap `gorm:"type:jsonb"`
	Breakdowns datatypes.JSONMap `gorm:"type:jsonb"`
	UpdatedAt  time.Time
}

func (TeamSeasonStatRecord) TableName() string { return "team_season_stats" }

// ScheduleEntryRecord mirrors domain.MasterScheduleEntry for persistence.
type ScheduleEntryRecord struct {
	ID         uint   `gorm:"primaryKey"`
	GameID     string `gorm:"uniqueIndex;size:64;not null"`
	Date       string `gorm:"index;size:10;not null"`
	SeasonID   string `gorm:"index;size:16;not null"`
	Phase      string `gorm:"index;size:16;not null"`
	HomeTeamID string `gorm:"index;size:8;not null"`
	AwayTeamID string `gorm:"index;size:8;not null"`
	Status     string `gorm:"size:16;not null;default:scheduled"`
	HomeScore  int
	AwayScore  int
}

func (ScheduleEntryRecord) TableName() string { return "schedule_entries" }

// SeasonSnapshotRecord archives one season's rolled-over regular + phase
// accumulators as opaque JSON, keyed by season_id.
type SeasonSnapshotRecord struct {
	ID             uint   `gorm:"primaryKey"`
	SeasonID       string `gorm:"uniqueIndex;size:16;not null"`
	ArchivedAtTurn int64
	Payload        datatypes.JSON `gorm:"type:jsonb"`
	ArchivedAt     time.Time
}

func (SeasonSnapshotRecord) TableName() string { return "season_snapshots" }

// AllModels is the complete migration set for AutoMigrate.
var AllModels = []interface{}{
	&GameResultRecord{},
	&PlayerSeasonStatRecord{},
	&TeamSeasonStatRecord{},
	&ScheduleEntryRecord{},
	&SeasonSnapshotRecord{},
}
