package adapter

import (
	"testing"

	"github.com/nba-gm-sim/matchengine/internal/domain"
)

func sampleRaw() *domain.RawGameResult {
	raw := &domain.RawGameResult{
		PossessionsPerTeam: map[string]int{"BOS": 95, "LAL": 96},
		Teams: map[string]domain.RawTeamResult{
			"BOS": {
				Totals: domain.TeamTotals{PTS: 110, FGM: 40, FGA: 85},
				Breakdowns: map[string]int{"FGA": 70, "TOV": 15},
				PlayerBox: map[string]domain.PlayerBox{
					"player_001": {PTS: 20, FGM: 8, FGA: 15},
				},
			},
			"LAL": {
				Totals: domain.TeamTotals{PTS: 108},
				Breakdowns: map[string]int{"FGA": 68, "TOV": 14},
				PlayerBox: map[string]domain.PlayerBox{
					"player_900": {PTS: 18},
				},
			},
		},
		GameState: domain.RawGameStateResult{
			TeamFouls:   map[string]int{"BOS": 18, "LAL": 19},
			PlayerFouls: map[string]map[string]int{"BOS": {"player_001": 2}, "LAL": {"player_900": 3}},
			Fatigue:     map[string]map[string]float64{"BOS": {"player_001": 0.8}, "LAL": {"player_900": 0.7}},
			MinutesPlayedSec: map[string]map[string]float64{
				"BOS": {"player_001": 2100}, "LAL": {"player_900": 2200},
			},
		},
	}
	raw.Meta.EngineVersion = "test/1.0"
	raw.Meta.Era = "default"
	raw.Meta.ReplayToken = "abc123"
	return raw
}

func sampleCtx() domain.GameContext {
	return domain.GameContext{
		GameID: "2025-26-BOS-LAL-01", Date: "2025-11-01", SeasonID: "2025-26",
		Phase: domain.PhaseRegular, HomeTeamID: "BOS", AwayTeamID: "LAL",
	}
}

func TestAdaptRawResultProducesValidV2(t *testing.T) {
	v2, err := AdaptRawResult(sampleRaw(), sampleCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateV2(v2); err != nil {
		t.Fatalf("round-trip validation failed: %v", err)
	}
	if v2.Final["BOS"] != 110 || v2.Final["LAL"] != 108 {
		t.Fatalf("unexpected final scores: %+v", v2.Final)
	}
}

func TestAdaptRawResultRejectsTeamIDMismatch(t *testing.T) {
	raw := sampleRaw()
	bos := raw.Teams["BOS"]
	bos.PlayerBox["player_001"] = domain.PlayerBox{PTS: 20}
	raw.Teams["BOS"] = bos

	// simulate the S4 scenario by constructing the row directly through the
	// adapter's normalization path: a player box keyed under BOS whose
	// TeamID would resolve to LAL is impossible via PlayerBox (keyed only by
	// pid), so the mismatch is exercised at the GameResultV2 level instead.
	v2, err := AdaptRawResult(raw, sampleCtx())
	if err != nil {
		t.Fatalf("unexpected error building v2: %v", err)
	}
	team := v2.Teams["BOS"]
	for i := range team.Players {
		if team.Players[i].PlayerID == "player_001" {
			team.Players[i].TeamID = "LAL"
		}
	}
	v2.Teams["BOS"] = team

	if err := ValidateV2(v2); err == nil {
		t.Fatal("expected validation error for PlayerBox row TeamID mismatch")
	}
}

func TestAdaptRawResultRejectsUnknownFatiguePID(t *testing.T) {
	raw := sampleRaw()
	raw.GameState.Fatigue["BOS"]["player_999"] = 0.5
	_, err := AdaptRawResult(raw, sampleCtx())
	if err == nil {
		t.Fatal("expected adapter error for fatigue referencing unknown pid")
	}
}

func TestAdaptRawResultRejectsUnknownMinutesPlayedPID(t *testing.T) {
	raw := sampleRaw()
	raw.GameState.MinutesPlayedSec["LAL"]["player_999"] = 1800
	_, err := AdaptRawResult(raw, sampleCtx())
	if err == nil {
		t.Fatal("expected adapter error for minutes_played_sec referencing unknown pid")
	}
}

func TestAdaptRawResultRejectsCrossTeamDuplicatePID(t *testing.T) {
	raw := sampleRaw()
	// a scorekeeping mixup rosters player_001 on both sides, so the pid is
	// individually "known" to each team but must still be rejected once it
	// shows up in both teams' fatigue maps for the same game.
	lal := raw.Teams["LAL"]
	lal.PlayerBox["player_001"] = domain.PlayerBox{PTS: 5}
	raw.Teams["LAL"] = lal
	raw.GameState.Fatigue["LAL"]["player_001"] = 0.6

	_, err := AdaptRawResult(raw, sampleCtx())
	if err == nil {
		t.Fatal("expected adapter error for pid shared across teams")
	}
}

func TestAdaptRawResultRejectsSharedHomeAwayID(t *testing.T) {
	ctx := sampleCtx()
	ctx.AwayTeamID = ctx.HomeTeamID
	_, err := AdaptRawResult(sampleRaw(), ctx)
	if err == nil {
		t.Fatal("expected contract error for home_team_id == away_team_id")
	}
}
