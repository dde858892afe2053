package possession

import (
	"math"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/shotdiet"
)

// shotMakeProbability implements the composite make-probability formula:
//
//	p_make = sigmoid(logit(base_p) + (off_score-def_score)/slope
//	         + role_logit_delta + carry_in + q_delta + fatigue_logit_delta)
//	         * variance_mult, clamped to [p_min, p_max].
func shotMakeProbability(off, def *domain.Team, shooter *domain.Player, outcome string, cfg *domain.GameConfig, ctx *Context) float64 {
	baseP := cfg.ShotBaseProb[outcome] * config.ShotKindKnobMult[outcome]
	if baseP <= 0 {
		baseP = 0.45
	}

	offScore := dot(shooter.Derived, config.OutcomeAbilityProfileOffense[outcome])

	assignment := shotdiet.BestRoleFit(def)
	defScore := bestDefenderScore(assignment, def, config.OutcomeAbilityProfileDefense[outcome])
	defScore *= cfg.ShotDefScoreDampen

	qDelta := shotdiet.QualityScore(assignment, def, config.OutcomeAbilityProfileOffense[outcome]) * -0.08

	roleLogitDelta := 0.0 // always neutral: no role-fit penalty is applied to shots

	fatigueLogitDelta := -(1.0 - shooter.Energy) * cfg.FatigueLogitMax

	logit := logitOf(baseP) + (offScore-defScore)/cfg.LogisticSlope + roleLogitDelta + ctx.CarryLogitDelta + qDelta + fatigueLogitDelta
	p := sigmoid(logit)

	varianceMult := cfg.VarianceMultMin + ctx.RNG.Float64()*(cfg.VarianceMultMax-cfg.VarianceMultMin)
	p *= varianceMult

	return clampProb(p, cfg.PMakeMin, cfg.PMakeMax)
}

func dot(derived map[string]float64, profile map[string]float64) float64 {
	var sum float64
	for ability, w := range profile {
		sum += derived[ability] * w
	}
	return sum
}

func bestDefenderScore(assignment shotdiet.RoleFitAssignment, def *domain.Team, profile map[string]float64) float64 {
	best := -math.MaxFloat64
	for _, pid := range assignment {
		p := def.ByID[pid]
		if p == nil {
			continue
		}
		s := dot(p.Derived, profile)
		if s > best {
			best = s
		}
	}
	if best == -math.MaxFloat64 {
		return 50
	}
	return best
}

func logitOf(p float64) float64 {
	p = clampProb(p, 1e-6, 1-1e-6)
	return math.Log(p / (1 - p))
}

func clampProb(p, lo, hi float64) float64 {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}
