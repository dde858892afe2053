// Package orchestrator drives the per-game period loop: regulation
// quarters, overtime, between-period rest, rotation substitution, and
// emission of the RawGameResult.
package orchestrator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"

	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/possession"
	"github.com/nba-gm-sim/matchengine/internal/roles"
	"github.com/nba-gm-sim/matchengine/internal/shotdiet"
)

const EngineVersion = "nba-gm-matchengine/1.0"

// SimulateGame runs a full game and returns the RawGameResult.
func SimulateGame(rng *rand.Rand, home, away *domain.Team, cfg *domain.GameConfig) (*domain.RawGameResult, error) {
	if err := ValidateIdentities(home, away); err != nil {
		return nil, err
	}
	if err := ValidateTeamState(home, cfg); err != nil {
		return nil, err
	}
	if err := ValidateTeamState(away, cfg); err != nil {
		return nil, err
	}

	roles.EnforceInitiatorPrimaryConstraint(home, &home.OnCourt)
	roles.EnforceInitiatorPrimaryConstraint(away, &away.OnCourt)

	gs := &domain.GameState{
		TeamFouls:   map[string]int{home.TeamID: 0, away.TeamID: 0},
		PlayerFouls: map[string]map[string]int{home.TeamID: {}, away.TeamID: {}},
		Fatigue:     map[string]map[string]float64{home.TeamID: {}, away.TeamID: {}},
		MinutesSec:  map[string]map[string]float64{home.TeamID: {}, away.TeamID: {}},
		OnCourt:     map[string][5]string{home.TeamID: home.OnCourt, away.TeamID: away.OnCourt},
	}
	for _, t := range []*domain.Team{home, away} {
		for _, p := range t.Roster {
			gs.Fatigue[t.TeamID][p.PlayerID] = p.Energy
			gs.MinutesSec[t.TeamID][p.PlayerID] = 0
		}
	}

	ctx := &possession.Context{RNG: rng, StyleCache: shotdiet.NewCache(shotdiet.DefaultCapacity)}

	overtimePeriods := 0
	for q := 1; q <= cfg.RegulationQuarters; q++ {
		gs.Quarter = q
		playPeriod(rng, home, away, gs, cfg, ctx, cfg.QuarterLengthSec, periodStartOffense(q, home, away))
		if q < cfg.RegulationQuarters {
			applyRest(home, gs, 0.08)
			applyRest(away, gs, 0.08)
		}
	}

	for home.Totals.PTS == away.Totals.PTS {
		overtimePeriods++
		gs.Quarter++
		applyRest(home, gs, 0.05)
		applyRest(away, gs, 0.05)
		otOffense := jumpballWinner(rng, home, away)
		playPeriod(rng, home, away, gs, cfg, ctx, cfg.OvertimeLengthSec, otOffense)
	}

	raw := buildRawResult(home, away, gs, cfg, overtimePeriods, ctx)
	return raw, nil
}

func periodStartOffense(q int, home, away *domain.Team) *domain.Team {
	if q%2 == 1 {
		return home // Q1/Q3 start with home on offense
	}
	return away // Q2/Q4 start with away on offense
}

func jumpballWinner(rng *rand.Rand, home, away *domain.Team) *domain.Team {
	homeScore := jumpballScore(home)
	awayScore := jumpballScore(away)
	p := sigmoidScale(homeScore-awayScore, 12.0)
	if rng.Float64() < p {
		return home
	}
	return away
}

func jumpballScore(t *domain.Team) float64 {
	var sum float64
	for _, pid := range t.OnCourt {
		p := t.ByID[pid]
		if p == nil {
			continue
		}
		sum += p.Derived["REBOUND_DEF"] + p.Derived["PHYSICAL"]
	}
	return sum / 5.0
}

func sigmoidScale(x, scale float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x/scale))
}

func playPeriod(rng *rand.Rand, home, away *domain.Team, gs *domain.GameState, cfg *domain.GameConfig, ctx *possession.Context, periodLen float64, firstOffense *domain.Team) {
	gs.ClockSec = periodLen
	gs.ShotClockSec = 24
	offense, defense := firstOffense, otherTeam(home, away, firstOffense)
	posStart := possession.StartQ

	for gs.ClockSec > 0 {
		gs.PossessionNo++
		offense.OnCourt = gs.OnCourt[offense.TeamID]
		defense.OnCourt = gs.OnCourt[defense.TeamID]

		result := possession.Simulate(offense, defense, gs, cfg, ctx, posStart)
		applyPossessionSideEffects(offense, defense, gs, result)

		applyFatigue(offense, gs, result)
		applyFatigue(defense, gs, result)
		accrueMinutes(offense, gs, 14.5)
		accrueMinutes(defense, gs, 14.5)

		runRotation(offense, gs, cfg)
		runRotation(defense, gs, cfg)

		posStart = result.PosStartNext

		if result.EndReason == possession.EndPeriodEnd {
			break
		}
		// the side that just defended attacks next
		offense, defense = defense, offense
		ctx.FollowsDefStop = result.EndReason == possession.EndDRB || result.EndReason == possession.EndTurnover || result.EndReason == possession.EndShotClock
		gs.ShotClockSec = 24
	}
}

func otherTeam(home, away, t *domain.Team) *domain.Team {
	if t == home {
		return away
	}
	return home
}

func applyPossessionSideEffects(offense, defense *domain.Team, gs *domain.GameState, result possession.Result) {
	if result.FirstFGAShotClockSec >= 16 {
		offense.Totals.FastbreakPTS += result.PointsScored
	}
	if result.HadORB {
		offense.Totals.SecondChancePTS += result.PointsScored
	}
}

func applyFatigue(t *domain.Team, gs *domain.GameState, result possession.Result) {
	const floor, gamma = 0.82, 1.35
	for _, pid := range t.OnCourt {
		p := t.ByID[pid]
		if p == nil {
			continue
		}
		drain := 0.004
		if result.EndReason == possession.EndTurnover {
			drain = 0.003
		}
		p.Energy -= drain * gamma
		if p.Energy < floor*0.3 {
			p.Energy = floor * 0.3
		}
		if p.Energy < 0 {
			p.Energy = 0
		}
		gs.Fatigue[t.TeamID][pid] = p.Energy
	}
}

func accrueMinutes(t *domain.Team, gs *domain.GameState, elapsedSec float64) {
	for _, pid := range t.OnCourt {
		gs.MinutesSec[t.TeamID][pid] += elapsedSec
		if p := t.ByID[pid]; p != nil {
			p.Box.MinutesPlayedSec += elapsedSec
		}
	}
}

func applyRest(t *domain.Team, gs *domain.GameState, recoverFrac float64) {
	for _, p := range t.Roster {
		p.Energy += (1.0 - p.Energy) * recoverFrac
		if p.Energy > 1 {
			p.Energy = 1
		}
		gs.Fatigue[t.TeamID][p.PlayerID] = p.Energy
	}
}

// runRotation subs out the on-court player furthest over his rotation
// target for the bench player furthest under, skipping locked or
// fouled-out players.
func runRotation(t *domain.Team, gs *domain.GameState, cfg *domain.GameConfig) {
	onCourtSet := map[string]bool{}
	for _, pid := range t.OnCourt {
		onCourtSet[pid] = true
	}

	worstPID, worstOver := "", -1e18
	for _, pid := range t.OnCourt {
		if t.RotationLockPIDs[pid] {
			continue
		}
		over := gs.MinutesSec[t.TeamID][pid] - t.RotationTargetSec[pid]
		if over > worstOver {
			worstPID, worstOver = pid, over
		}
	}

	bestPID, bestUnder := "", -1e18
	for _, p := range t.Roster {
		if onCourtSet[p.PlayerID] || p.Energy <= 0 {
			continue
		}
		under := t.RotationTargetSec[p.PlayerID] - gs.MinutesSec[t.TeamID][p.PlayerID]
		if under > bestUnder {
			bestPID, bestUnder = p.PlayerID, under
		}
	}

	if worstPID == "" || bestPID == "" || worstOver <= 0 || bestUnder <= 0 {
		return
	}

	for i, pid := range t.OnCourt {
		if pid == worstPID {
			t.OnCourt[i] = bestPID
			break
		}
	}
	gs.OnCourt[t.TeamID] = t.OnCourt
}

func buildRawResult(home, away *domain.Team, gs *domain.GameState, cfg *domain.GameConfig, overtimePeriods int, ctx *possession.Context) *domain.RawGameResult {
	raw := &domain.RawGameResult{
		PossessionsPerTeam: map[string]int{home.TeamID: home.Possessions, away.TeamID: away.Possessions},
		Teams:              map[string]domain.RawTeamResult{},
	}
	raw.Meta.EngineVersion = EngineVersion
	raw.Meta.Era = cfg.EraName
	raw.Meta.EraVersion = cfg.EraVersion
	raw.Meta.OvertimePeriods = overtimePeriods
	raw.Meta.ValidationReport = ctx.Errors

	for _, t := range []*domain.Team{home, away} {
		boxes := map[string]domain.PlayerBox{}
		var fatigueSum float64
		for _, p := range t.Roster {
			boxes[p.PlayerID] = p.Box
			fatigueSum += p.Energy
		}
		raw.Teams[t.TeamID] = domain.RawTeamResult{
			Totals:     t.Totals,
			Breakdowns: t.EndClass,
			PlayerBox:  boxes,
			AvgFatigue: fatigueSum / float64(len(t.Roster)),
		}
	}

	raw.GameState = domain.RawGameStateResult{
		TeamFouls:        gs.TeamFouls,
		PlayerFouls:      gs.PlayerFouls,
		Fatigue:          gs.Fatigue,
		MinutesPlayedSec: gs.MinutesSec,
	}

	raw.Meta.ReplayToken = replayToken(gs, home.TeamID, away.TeamID, cfg.EraName)
	return raw
}

// replayToken checksums the finalized RNG-dependent state plus key inputs
// so that identical (seed, config, rosters, tactics) produce identical
// tokens.
func replayToken(gs *domain.GameState, homeID, awayID, era string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%d|%v|%v", homeID, awayID, era, gs.PossessionNo, gs.TeamFouls, gs.MinutesSec)
	return hex.EncodeToString(h.Sum(nil))[:32]
}
