package store

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nba-gm-sim/matchengine/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(AllModels...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestSaveGameResultRoundTrips(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	v2 := domain.GameResultV2{
		SchemaVersion: "2.0",
		Game: domain.GameResultV2Game{
			GameID: "g1", Date: "2025-11-01", SeasonID: "2025-26", Phase: domain.PhaseRegular,
			HomeTeamID: "BOS", AwayTeamID: "LAL",
		},
		Final: map[string]int{"BOS": 110, "LAL": 108},
	}
	if err := repo.SaveGameResult(v2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rec GameResultRecord
	if err := db.Where("game_id = ?", "g1").First(&rec).Error; err != nil {
		t.Fatalf("expected row to be persisted: %v", err)
	}
	if rec.HomeScore != 110 || rec.AwayScore != 108 {
		t.Fatalf("unexpected scores: %+v", rec)
	}

	// Re-saving the same game_id upserts rather than duplicating.
	v2.Final["BOS"] = 120
	if err := repo.SaveGameResult(v2); err != nil {
		t.Fatalf("unexpected error on upsert: %v", err)
	}
	var count int64
	db.Model(&GameResultRecord{}).Where("game_id = ?", "g1").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one row after upsert, got %d", count)
	}
}

func TestUpsertPlayerStatPersistsRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	stat := &domain.PlayerSeasonStat{PlayerID: "p1", Name: "P1", TeamID: "BOS", Games: 1, Totals: map[string]float64{"PTS": 20}}
	if err := repo.UpsertPlayerStat("2025-26", domain.PhaseRegular, stat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rec PlayerSeasonStatRecord
	if err := db.Where("player_id = ? AND season_id = ? AND phase = ?", "p1", "2025-26", domain.PhaseRegular).First(&rec).Error; err != nil {
		t.Fatalf("expected row: %v", err)
	}
	if rec.Games != 1 || rec.Totals["PTS"] != float64(20) {
		t.Fatalf("unexpected stat row: %+v", rec)
	}
}

func TestMarkScheduleFinalUpdatesStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	if err := db.Create(&ScheduleEntryRecord{
		GameID: "g1", Date: "2025-11-01", SeasonID: "2025-26", Phase: domain.PhaseRegular,
		HomeTeamID: "BOS", AwayTeamID: "LAL", Status: "scheduled",
	}).Error; err != nil {
		t.Fatalf("setup error: %v", err)
	}

	if err := repo.MarkScheduleFinal("g1", 110, 108); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rec ScheduleEntryRecord
	db.Where("game_id = ?", "g1").First(&rec)
	if rec.Status != "final" || rec.HomeScore != 110 || rec.AwayScore != 108 {
		t.Fatalf("unexpected schedule row: %+v", rec)
	}
}
