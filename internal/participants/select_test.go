package participants

import (
	"math/rand"
	"testing"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
)

func buildScreenerTestTeam() *domain.Team {
	t := &domain.Team{
		TeamID: "HOM",
		ByID:   map[string]*domain.Player{},
		Roles:  map[string]string{},
	}
	roller := &domain.Player{PlayerID: "p_roller", Derived: map[string]float64{"PNR_FINISH_ROLL": 80}}
	popBig := &domain.Player{PlayerID: "p_pop", Derived: map[string]float64{"PNR_FINISH_ROLL": 40}}
	other := &domain.Player{PlayerID: "p_other", Derived: map[string]float64{"PNR_FINISH_ROLL": 30}}

	t.ByID[roller.PlayerID] = roller
	t.ByID[popBig.PlayerID] = popBig
	t.ByID[other.PlayerID] = other
	t.Roster = []*domain.Player{roller, popBig, other}
	t.OnCourt = [5]string{roller.PlayerID, popBig.PlayerID, other.PlayerID, other.PlayerID, other.PlayerID}

	t.Roles[domain.RoleRollerFinisher] = roller.PlayerID
	t.Roles[domain.RolePopSpacerBig] = popBig.PlayerID
	return t
}

func TestSelectScreenerPicksHighestPriorityRoleOnCourt(t *testing.T) {
	team := buildScreenerTestTeam()
	rng := rand.New(rand.NewSource(1))

	got := SelectScreener(rng, team, config.SchemeSpreadHeavyPnR)
	if got == nil || got.PlayerID != "p_roller" {
		t.Fatalf("expected the roller-finisher role holder, got %+v", got)
	}
}

func TestSelectScreenerFallsBackWhenPriorityRoleOffCourt(t *testing.T) {
	team := buildScreenerTestTeam()
	team.OnCourt = [5]string{"p_pop", "p_other", "p_other", "p_other", "p_other"}
	rng := rand.New(rand.NewSource(1))

	got := SelectScreener(rng, team, config.SchemeSpreadHeavyPnR)
	if got == nil || got.PlayerID != "p_pop" {
		t.Fatalf("expected fallback to the next on-court priority role, got %+v", got)
	}
}

func TestSelectScreenerFallsBackToWeightedDrawWithNoPriorityRoleOnCourt(t *testing.T) {
	team := buildScreenerTestTeam()
	delete(team.Roles, domain.RoleRollerFinisher)
	delete(team.Roles, domain.RolePopSpacerBig)
	rng := rand.New(rand.NewSource(1))

	got := SelectScreener(rng, team, config.SchemeSpreadHeavyPnR)
	if got == nil {
		t.Fatal("expected a non-nil fallback pick")
	}
}
