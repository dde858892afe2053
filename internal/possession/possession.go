// Package possession implements the single-possession Markov loop:
// sample an offensive action, sample an outcome for that action, resolve
// the outcome into scoring/turnover/rebound events, looping on dead-ball
// and continuation outcomes until the possession ends.
package possession

import (
	"math/rand"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/participants"
	"github.com/nba-gm-sim/matchengine/internal/shotdiet"
)

// Possession-start tags.
const (
	StartQ            = "start_q"
	StartAfterScore   = "after_score"
	StartAfterTOVDead = "after_tov_dead"
	StartAfterFoul    = "after_foul"
	StartAfterDRB     = "after_drb"
)

// Possession-end reasons.
const (
	EndScore      = "SCORE"
	EndTurnover   = "TURNOVER"
	EndDRB        = "DRB"
	EndPeriodEnd  = "PERIOD_END"
	EndShotClock  = "SHOTCLOCK"
)

// Context carries per-possession scratch state that must survive across
// the internal loop steps but never across possessions (except the RNG and
// style cache, which are per-game / per-process).
type Context struct {
	RNG              *rand.Rand
	StyleCache       *shotdiet.Cache
	CarryLogitDelta  float64
	PassChain        int
	FollowsDefStop   bool // possession opened off a DRB or live turnover: up-weight TransitionEarly
	Errors           []string
}

// Result is the possession's terminal summary.
type Result struct {
	EndReason             string
	PosStartNext          string
	PointsScored          int
	HadORB                bool
	FirstFGAShotClockSec  float64
}

// Simulate runs one possession to termination.
func Simulate(off, def *domain.Team, gs *domain.GameState, cfg *domain.GameConfig, ctx *Context, posStart string) Result {
	off.Possessions++
	startPTS := off.Totals.PTS
	ctx.PassChain = 0
	ctx.CarryLogitDelta = 0

	if posStart == StartQ || posStart == StartAfterScore || posStart == StartAfterTOVDead {
		if res, ok := attemptInbound(off, def, gs, cfg, ctx); ok {
			return res
		}
	}

	style := ctx.StyleCache.GetOrCompute(off, def)
	firstFGAShotClock := -1.0
	hadORB := false

	steps := 0
	for {
		steps++
		action := sampleAction(off, style, cfg, ctx)
		off.ActionHist[action]++
		timeCost := actionTimeCost(action, off.Tactics)
		gs.ShotClockSec -= timeCost
		gs.ClockSec -= timeCost

		if gs.ShotClockSec <= 0 {
			off.EndClass["TOV"]++
			return Result{EndReason: EndShotClock, PosStartNext: StartAfterTOVDead, HadORB: hadORB, FirstFGAShotClockSec: firstFGAShotClock}
		}
		if gs.ClockSec <= 0 {
			off.EndClass["OTHER"]++
			return Result{EndReason: EndPeriodEnd, PosStartNext: StartQ, HadORB: hadORB, FirstFGAShotClockSec: firstFGAShotClock}
		}

		outcome := sampleOutcome(off, def, style, cfg, action, ctx)
		if isShotOutcome(outcome) && firstFGAShotClock < 0 {
			firstFGAShotClock = gs.ShotClockSec
		}

		res, terminal, loopPosStart := resolveOutcome(off, def, gs, cfg, ctx, action, outcome)
		if terminal {
			off.Totals.PTS = off.Totals.PTS // no-op, accounting happens in resolve
			classifyEnd(off, res.EndReason)
			res.PointsScored = off.Totals.PTS - startPTS
			res.HadORB = res.HadORB || hadORB
			if res.FirstFGAShotClockSec == 0 {
				res.FirstFGAShotClockSec = firstFGAShotClock
			}
			return res
		}
		if loopPosStart == StartAfterDRB {
			// defensive rebound ends this team's possession
			res.PointsScored = off.Totals.PTS - startPTS
			res.FirstFGAShotClockSec = firstFGAShotClock
			return res
		}
		if res.HadORB {
			hadORB = true
		}

		posStart = loopPosStart

		if steps >= cfg.MaxStallSteps {
			gs.ClockSec -= 0.75
			gs.ShotClockSec -= 0.75
			action = config.ActionSpotUp
			outcome = sampleOutcome(off, def, style, cfg, action, ctx)
			res, terminal, _ := resolveOutcome(off, def, gs, cfg, ctx, action, outcome)
			classifyEnd(off, res.EndReason)
			res.PointsScored = off.Totals.PTS - startPTS
			_ = terminal
			return res
		}
	}
}

func classifyEnd(off *domain.Team, endReason string) {
	switch endReason {
	case EndScore:
		off.EndClass["FGA"]++
	case EndTurnover, EndShotClock:
		off.EndClass["TOV"]++
	default:
		off.EndClass["OTHER"]++
	}
}

func isShotOutcome(outcome string) bool {
	switch outcome {
	case config.OutShotRim, config.OutShotMid, config.OutShot3CS, config.OutShot3Off, config.OutShotPost:
		return true
	}
	return false
}

// attemptInbound samples the dead-ball inbound turnover check from step 2.
func attemptInbound(off, def *domain.Team, gs *domain.GameState, cfg *domain.GameConfig, ctx *Context) (Result, bool) {
	inbounder := off.ByID[off.OnCourt[ctx.RNG.Intn(5)]]
	defender := participants.SelectFouler(ctx.RNG, def, gs.PlayerFouls[def.TeamID], cfg.FoulOutLimit)
	p := 0.010
	if inbounder != nil && defender != nil {
		p += (defender.Derived["STEAL"] - inbounder.Derived["PASS_SAFETY"]) / 2000.0
	}
	if p < 0.003 {
		p = 0.003
	}
	if p > 0.06 {
		p = 0.06
	}
	if ctx.RNG.Float64() < p {
		off.Totals.TOV++
		if inbounder != nil {
			inbounder.Box.TOV++
		}
		if defender != nil {
			// credited a steal, no dedicated box-score field beyond team totals in this slice
		}
		off.EndClass["TOV"]++
		return Result{EndReason: EndTurnover, PosStartNext: StartAfterTOVDead}, true
	}
	return Result{}, false
}
