package possession

import (
	"math/rand"
	"testing"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/ratings"
	"github.com/nba-gm-sim/matchengine/internal/shotdiet"
)

func buildTestTeam(teamID string, tactics domain.Tactics) *domain.Team {
	t := &domain.Team{
		TeamID:      teamID,
		ByID:        map[string]*domain.Player{},
		Roles:       map[string]string{},
		Tactics:     tactics,
		RotationTargetSec: map[string]float64{},
		EndClass:    map[string]int{},
		ActionHist:  map[string]int{},
		OutcomeHist: map[string]int{},
	}
	raw := map[string]float64{
		"Three-Point Shot": 60, "Finishing": 60, "Ball Handling": 55, "Pass Vision": 55,
		"Pass Accuracy": 55, "Decision Making": 55, "Strength": 55, "Vertical": 55,
		"Interior Defense": 55, "Perimeter Defense": 55, "Steal": 50, "Stamina": 70,
		"Free Throw": 70,
	}
	for i := 0; i < 5; i++ {
		pid := teamID + "_p" + string(rune('1'+i))
		p := &domain.Player{PlayerID: pid, Name: pid, RawRatings: raw, Derived: ratings.Derive(raw), Energy: 1.0}
		t.ByID[pid] = p
		t.Roster = append(t.Roster, p)
		t.OnCourt[i] = pid
		t.RotationTargetSec[pid] = 2000
	}
	return t
}

func TestSimulateAllowsInboundTurnoverFromEveryDeadBallStart(t *testing.T) {
	cfg := config.Default()
	stealRaw := map[string]float64{"Steal": 100, "Free Throw": 70, "Pass Accuracy": 50, "Decision Making": 50}
	turnoverProne := map[string]float64{"Pass Accuracy": 0, "Decision Making": 0, "Free Throw": 70}

	for _, posStart := range []string{StartQ, StartAfterScore, StartAfterTOVDead} {
		sawInboundTOV := false
		for seed := int64(0); seed < 300; seed++ {
			off := buildTestTeam("HOM", domain.Tactics{OffenseScheme: config.SchemeSpreadHeavyPnR, DefenseScheme: config.DefSchemeDrop, Context: map[string]float64{}})
			def := buildTestTeam("AWY", domain.Tactics{OffenseScheme: config.SchemeFiveOut, DefenseScheme: config.DefSchemeDrop, Context: map[string]float64{}})
			for _, p := range off.Roster {
				p.RawRatings = turnoverProne
				p.Derived = ratings.Derive(turnoverProne)
			}
			for _, p := range def.Roster {
				p.RawRatings = stealRaw
				p.Derived = ratings.Derive(stealRaw)
			}
			gs := &domain.GameState{
				ClockSec: 720, ShotClockSec: 24,
				TeamFouls:   map[string]int{off.TeamID: 0, def.TeamID: 0},
				PlayerFouls: map[string]map[string]int{off.TeamID: {}, def.TeamID: {}},
			}
			ctx := &Context{RNG: rand.New(rand.NewSource(seed)), StyleCache: shotdiet.NewCache(shotdiet.DefaultCapacity)}
			res := Simulate(off, def, gs, cfg, ctx, posStart)
			// an inbound turnover returns before any action is ever sampled,
			// so ActionHist stays empty; a turnover reached via the normal
			// possession loop always records at least one sampled action.
			if res.EndReason == EndTurnover && len(off.ActionHist) == 0 {
				sawInboundTOV = true
				break
			}
		}
		if !sawInboundTOV {
			t.Fatalf("pos_start %q: expected at least one inbound turnover across 300 seeds", posStart)
		}
	}
}

func TestSimulateTerminatesAndScoresConsistently(t *testing.T) {
	cfg := config.Default()
	off := buildTestTeam("HOM", domain.Tactics{OffenseScheme: config.SchemeSpreadHeavyPnR, DefenseScheme: config.DefSchemeDrop, Context: map[string]float64{}})
	def := buildTestTeam("AWY", domain.Tactics{OffenseScheme: config.SchemeFiveOut, DefenseScheme: config.DefSchemeDrop, Context: map[string]float64{}})

	gs := &domain.GameState{
		ClockSec: 720, ShotClockSec: 24,
		TeamFouls:   map[string]int{off.TeamID: 0, def.TeamID: 0},
		PlayerFouls: map[string]map[string]int{off.TeamID: {}, def.TeamID: {}},
	}
	ctx := &Context{RNG: rand.New(rand.NewSource(7)), StyleCache: shotdiet.NewCache(shotdiet.DefaultCapacity)}

	for i := 0; i < 50; i++ {
		res := Simulate(off, def, gs, cfg, ctx, StartQ)
		if res.EndReason == "" {
			t.Fatalf("possession %d returned empty end reason", i)
		}
		if gs.ClockSec <= 0 {
			break
		}
	}

	wantPTS := 0
	for _, p := range off.Roster {
		wantPTS += p.Box.PTS
	}
	if wantPTS != off.Totals.PTS {
		t.Fatalf("team PTS %d != sum of player PTS %d", off.Totals.PTS, wantPTS)
	}
	for _, p := range off.Roster {
		if p.Box.FTM > p.Box.FTA || p.Box.FGM > p.Box.FGA || p.Box.ThreePM > p.Box.ThreePA || p.Box.ThreePA > p.Box.FGA {
			t.Fatalf("player %s violates shot-count invariants: %+v", p.PlayerID, p.Box)
		}
	}
}
