package league

import (
	"testing"

	"github.com/nba-gm-sim/matchengine/internal/domain"
)

func sampleV2(seasonID, gameID, homeID, awayID string, homePts, awayPts int) domain.GameResultV2 {
	return domain.GameResultV2{
		SchemaVersion: "2.0",
		Game: domain.GameResultV2Game{
			GameID: gameID, Date: "2025-11-01", SeasonID: seasonID, Phase: domain.PhaseRegular,
			HomeTeamID: homeID, AwayTeamID: awayID,
		},
		Final: map[string]int{homeID: homePts, awayID: awayPts},
		Teams: map[string]domain.GameResultV2Team{
			homeID: {
				Totals: map[string]float64{"PTS": float64(homePts)},
				Players: []domain.PlayerRowV2{
					{PlayerID: "p1", TeamID: homeID, Name: "P1", Counters: map[string]float64{"PTS": float64(homePts)}},
				},
			},
			awayID: {
				Totals: map[string]float64{"PTS": float64(awayPts)},
				Players: []domain.PlayerRowV2{
					{PlayerID: "p2", TeamID: awayID, Name: "P2", Counters: map[string]float64{"PTS": float64(awayPts)}},
				},
			},
		},
		GameState: domain.GameResultV2GameState{
			TeamFouls:        map[string]int{homeID: 10, awayID: 11},
			PlayerFouls:      map[string]map[string]int{homeID: {"p1": 1}, awayID: {"p2": 2}},
			Fatigue:          map[string]map[string]float64{homeID: {"p1": 0.8}, awayID: {"p2": 0.7}},
			MinutesPlayedSec: map[string]map[string]float64{homeID: {"p1": 2000}, awayID: {"p2": 2100}},
		},
		Meta: domain.GameResultV2Meta{EngineName: "nba-gm-matchengine", EngineVersion: "test/1.0", Era: "default", ReplayToken: "tok"},
	}
}

func TestIngestGameResultAccumulatesPlayerAndTeamTotals(t *testing.T) {
	state := domain.NewLeagueState()
	ing := NewIngestor(state)

	if err := ing.IngestGameResult(sampleV2("2025-26", "g1", "BOS", "LAL", 110, 108)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ing.IngestGameResult(sampleV2("2025-26", "g2", "BOS", "LAL", 100, 95)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p1 := state.PlayerStats["p1"]
	if p1 == nil || p1.Games != 2 || p1.Totals["PTS"] != 210 {
		t.Fatalf("unexpected player accumulation: %+v", p1)
	}
	bos := state.TeamStats["BOS"]
	if bos == nil || bos.Games != 2 || bos.Totals["PTS"] != 210 {
		t.Fatalf("unexpected team accumulation: %+v", bos)
	}
	if len(state.Games) != 2 {
		t.Fatalf("expected 2 finalized games, got %d", len(state.Games))
	}
}

func TestIngestGameResultRollsOverSeason(t *testing.T) {
	state := domain.NewLeagueState()
	ing := NewIngestor(state)

	if err := ing.IngestGameResult(sampleV2("2025-26", "g1", "BOS", "LAL", 110, 108)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ing.IngestGameResult(sampleV2("2026-27", "g2", "BOS", "LAL", 100, 95)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, ok := state.SeasonHistory["2025-26"]
	if !ok {
		t.Fatal("expected 2025-26 to be archived in season_history")
	}
	if snap.ArchivedAtTurn == 0 {
		t.Fatal("expected archived_at_turn to be set")
	}
	if snap.Regular.PlayerStats["p1"] == nil || snap.Regular.PlayerStats["p1"].Totals["PTS"] != 110 {
		t.Fatalf("archived regular snapshot missing prior game's player totals: %+v", snap.Regular.PlayerStats)
	}

	if state.ActiveSeasonID != "2026-27" {
		t.Fatalf("expected active_season_id to roll to 2026-27, got %s", state.ActiveSeasonID)
	}
	p1 := state.PlayerStats["p1"]
	if p1 == nil || p1.Games != 1 || p1.Totals["PTS"] != 100 {
		t.Fatalf("expected live player_stats to contain only the second game's data: %+v", p1)
	}
}

func TestIngestGameResultRejectsInvalidV2(t *testing.T) {
	state := domain.NewLeagueState()
	ing := NewIngestor(state)

	bad := sampleV2("2025-26", "g1", "BOS", "BOS", 110, 108)
	if err := ing.IngestGameResult(bad); err == nil {
		t.Fatal("expected error for home_team_id == away_team_id")
	}
}

func TestIngestGameResultMarksMasterScheduleEntryFinal(t *testing.T) {
	state := domain.NewLeagueState()
	entry := &domain.MasterScheduleEntry{GameID: "g1", Date: "2025-11-01", HomeTeamID: "BOS", AwayTeamID: "LAL", Status: "scheduled"}
	state.MasterSchedule.ByID["g1"] = entry

	ing := NewIngestor(state)
	if err := ing.IngestGameResult(sampleV2("2025-26", "g1", "BOS", "LAL", 110, 108)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Status != "final" || entry.HomeScore != 110 || entry.AwayScore != 108 {
		t.Fatalf("expected schedule entry to be marked final with scores, got %+v", entry)
	}
}
