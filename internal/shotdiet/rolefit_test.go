package shotdiet

import (
	"testing"

	"github.com/nba-gm-sim/matchengine/internal/domain"
)

func TestBestRoleFitAssignsAllRoles(t *testing.T) {
	def := &domain.Team{TeamID: "DDD", ByID: map[string]*domain.Player{}}
	def.Tactics.DefenseScheme = "Drop"
	for i, pid := range []string{"d1", "d2", "d3", "d4", "d5"} {
		def.ByID[pid] = &domain.Player{
			PlayerID: pid,
			Derived: map[string]float64{
				"DEF_RIM_PROTECT": float64(50 + i*5), "REBOUND_DEF": float64(50 + i*3),
				"DEF_POA": float64(60 - i*2), "STEAL": float64(55 - i), "DEF_HELP": 50, "DEF_POST": 50,
			},
		}
		def.OnCourt[i] = pid
	}
	assignment := BestRoleFit(def)
	if len(assignment) != 5 {
		t.Fatalf("expected 5 assigned roles, got %d", len(assignment))
	}
	seen := map[string]bool{}
	for _, pid := range assignment {
		if seen[pid] {
			t.Fatalf("pid %s assigned to more than one role", pid)
		}
		seen[pid] = true
	}
}
