package orchestrator

import (
	"math/rand"
	"testing"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/ratings"
)

func buildTeam(teamID string, offScheme, defScheme string) *domain.Team {
	t := &domain.Team{
		TeamID: teamID, ByID: map[string]*domain.Player{}, Roles: map[string]string{},
		RotationTargetSec: map[string]float64{}, RotationLockPIDs: map[string]bool{},
		EndClass: map[string]int{}, ActionHist: map[string]int{}, OutcomeHist: map[string]int{},
		Tactics: domain.Tactics{OffenseScheme: offScheme, DefenseScheme: defScheme, Context: map[string]float64{}},
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

func TestSimulateGameProducesConsistentResult(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(7))
	home := buildTeam("BOS", config.SchemeSpreadHeavyPnR, config.DefSchemeDrop)
	away := buildTeam("LAL", config.SchemeFiveOut, config.DefSchemeSwitchEverything)

	raw, err := SimulateGame(rng, home, away, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Meta.ReplayToken == "" {
		t.Fatal("expected non-empty replay token")
	}
	homePoss := raw.PossessionsPerTeam[home.TeamID]
	awayPoss := raw.PossessionsPerTeam[away.TeamID]
	diff := homePoss - awayPoss
	if diff < -1 || diff > 1 {
		t.Fatalf("possession counts too far apart: home=%d away=%d", homePoss, awayPoss)
	}
	for _, team := range []string{home.TeamID, away.TeamID} {
		tr := raw.Teams[team]
		sum := 0
		for _, box := range tr.PlayerBox {
			sum += box.PTS
		}
		if sum != tr.Totals.PTS {
			t.Fatalf("team %s totals.PTS=%d != sum of player PTS=%d", team, tr.Totals.PTS, sum)
		}
	}
}

func TestSimulateGameRejectsSharedPlayerID(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))
	home := buildTeam("BOS", config.SchemeSpreadHeavyPnR, config.DefSchemeDrop)
	away := buildTeam("LAL", config.SchemeFiveOut, config.DefSchemeDrop)
	away.OnCourt[0] = home.OnCourt[0]
	away.ByID[home.OnCourt[0]] = home.ByID[home.OnCourt[0]]

	_, err := SimulateGame(rng, home, away, cfg)
	if err == nil {
		t.Fatal("expected contract error for shared player_id across teams")
	}
}
