package batch

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/ratings"
)

func buildTeam(teamID string) *domain.Team {
	t := &domain.Team{
		TeamID: teamID, ByID: map[string]*domain.Player{}, Roles: map[string]string{},
		RotationTargetSec: map[string]float64{}, RotationLockPIDs: map[string]bool{},
		EndClass: map[string]int{}, ActionHist: map[string]int{}, OutcomeHist: map[string]int{},
		Tactics: domain.Tactics{OffenseScheme: config.SchemeSpreadHeavyPnR, DefenseScheme: config.DefSchemeDrop, Context: map[string]float64{}},
	}
	raw := map[string]float64{
		"Three-Point Shot": 58, "Finishing": 58, "Ball Handling": 55, "Pass Vision": 55,
		"Pass Accuracy": 55, "Decision Making": 55, "Strength": 55, "Vertical": 55,
		"Interior Defense": 55, "Perimeter Defense": 55, "Steal": 50, "Stamina": 75, "Free Throw": 72,
	}
	for i := 0; i < 9; i++ {
		pid := teamID + "_p" + string(rune('0'+i))
		p := &domain.Player{PlayerID: pid, Name: pid, RawRatings: raw, Derived: ratings.Derive(raw), Energy: 1.0}
		t.ByID[pid] = p
		t.Roster = append(t.Roster, p)
		t.RotationTargetSec[pid] = 1800
		if i < 5 {
			t.OnCourt[i] = pid
		}
	}
	return t
}

func TestRunSlateCompletesAllJobs(t *testing.T) {
	cfg := config.Default()
	runner := NewRunner(cfg, 2, 5, time.Second, logrus.New())

	jobs := []Job{
		{Ctx: domain.GameContext{GameID: "g1", Date: "2025-11-01", SeasonID: "2025-26", Phase: domain.PhaseRegular, HomeTeamID: "BOS", AwayTeamID: "LAL"}, Home: buildTeam("BOS"), Away: buildTeam("LAL"), Seed: 1},
		{Ctx: domain.GameContext{GameID: "g2", Date: "2025-11-01", SeasonID: "2025-26", Phase: domain.PhaseRegular, HomeTeamID: "MIA", AwayTeamID: "NYK"}, Home: buildTeam("MIA"), Away: buildTeam("NYK"), Seed: 2},
	}

	progress := make(chan ProgressUpdate, len(jobs))
	results, err := runner.RunSlate(context.Background(), jobs, progress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("job %s failed: %v", r.GameID, r.Err)
		}
		if r.V2 == nil || r.V2.Game.GameID != r.GameID {
			t.Fatalf("unexpected result for %s: %+v", r.GameID, r.V2)
		}
	}

	seen := 0
	for range progress {
		seen++
	}
	if seen != 2 {
		t.Fatalf("expected 2 progress updates, got %d", seen)
	}
}

func TestRunSlateRejectsEmptyJobList(t *testing.T) {
	cfg := config.Default()
	runner := NewRunner(cfg, 2, 5, time.Second, logrus.New())
	if _, err := runner.RunSlate(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for empty job list")
	}
}
