package possession

import (
	"math"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/participants"
	"github.com/nba-gm-sim/matchengine/internal/shotdiet"
)

// Pass quality thresholds and carry-bucket logit deltas, using a
// published-midpoint sigmoid scheme.
const (
	passBadThreshold   = -1.2
	passResetThreshold = -2.0
	passSigmoidSlope   = 6.0

	carryNegativeDelta = -0.12
	carryNeutralDelta  = 0.0
	carryPositiveDelta = 0.15
)

// resolvePass resolves a PASS_* outcome: compute a role-fit quality score,
// gate on bad-pass-turnover / reset probabilities, then on success sample a
// carry-logit bucket for the next shot/pass/foul-draw to inherit.
func resolvePass(off, def *domain.Team, gs *domain.GameState, cfg *domain.GameConfig, ctx *Context, action, outcome string) (Result, bool, string) {
	passer := participants.SelectPasser(ctx.RNG, off, action)
	assignment := shotdiet.BestRoleFit(def)
	qScore := shotdiet.QualityScore(assignment, def, config.PassProfileWeights)

	pTO := sigmoid(passSigmoidSlope * (passBadThreshold - qScore))
	pReset := sigmoid(passSigmoidSlope * (passResetThreshold - qScore))

	r := ctx.RNG.Float64()
	switch {
	case r < pTO:
		off.Totals.TOV++
		if passer != nil {
			passer.Box.TOV++
		}
		ctx.CarryLogitDelta = 0
		return Result{EndReason: EndTurnover, PosStartNext: StartAfterTOVDead}, true, ""
	case r < pTO+pReset:
		gs.ShotClockSec -= 1.0
		gs.ClockSec -= 1.0
		ctx.CarryLogitDelta = 0
		return Result{}, false, StartQ
	}

	receiver := participants.SelectReceiver(ctx.RNG, off, passerPID(passer))
	if passer != nil && receiver != nil {
		off.Totals.AST++ // credited provisionally; reversed if the follow-up isn't a made shot via assister bookkeeping in the orchestrator layer
	}

	ctx.CarryLogitDelta = sampleCarryBucket(ctx)
	ctx.PassChain++

	gs.ShotClockSec -= passTimeCost(outcome)
	gs.ClockSec -= passTimeCost(outcome)

	return Result{}, false, StartQ
}

func passerPID(p *domain.Player) string {
	if p == nil {
		return ""
	}
	return p.PlayerID
}

func passTimeCost(outcome string) float64 {
	switch outcome {
	case config.OutPassShort:
		return 1.5
	case config.OutPassSkip:
		return 2.0
	default:
		return 1.2
	}
}

// sampleCarryBucket draws a three-way softmax over
// {negative, neutral, positive} and returns the corresponding logit delta.
func sampleCarryBucket(ctx *Context) float64 {
	weights := []float64{0.2, 0.5, 0.3} // negative, neutral, positive
	r := ctx.RNG.Float64()
	cum := 0.0
	deltas := []float64{carryNegativeDelta, carryNeutralDelta, carryPositiveDelta}
	for i, w := range weights {
		cum += w
		if r < cum {
			return deltas[i]
		}
	}
	return carryNeutralDelta
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
