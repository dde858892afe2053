package shotdiet

import (
	"math"

	"github.com/nba-gm-sim/matchengine/internal/config"
)

// ActionMultipliers returns the log-space-clamped multiplier for each base
// action given the offensive style, for the current offensive scheme.
func ActionMultipliers(style *Style, scheme string) map[string]float64 {
	alpha := tacticAlpha(scheme).Action
	out := make(map[string]float64, len(config.AllActions))
	tacticWeights := config.WeightsTacticAction[scheme]
	for _, action := range config.AllActions {
		logit := 0.0
		if weights, ok := tacticWeights[action]; ok {
			logit = featureDot(style.Offense, weights)
		}
		out[action] = expClamp(logit*alpha, config.ClampActionMultLo, config.ClampActionMultHi)
	}
	return out
}

// OutcomeMultipliers returns the per-outcome multiplier for a chosen
// action, blending the scheme-agnostic global weights with the
// scheme-specific delta and the defensive-lineup pressure term.
func OutcomeMultipliers(offStyle, defStyle *Style, scheme, action string) map[string]float64 {
	alpha := tacticAlpha(scheme).Outcome
	out := map[string]float64{}
	global := config.WeightsGlobalOutcome[action]
	delta := config.WeightsTacticOutcomeDelta[scheme][action]
	for outcome, weights := range global {
		logit := featureDot(offStyle.Offense, weights)
		if d, ok := delta[outcome]; ok {
			logit += featureDot(offStyle.Offense, d)
		}
		out[outcome] = expClamp(logit*alpha, config.ClampOutcomeMultLo, config.ClampOutcomeMultHi)
	}
	for outcome, weights := range config.DefenseOutcomeFeatureWeights {
		logit := featureDot(defStyle.Defense, weights)
		if cur, ok := out[outcome]; ok {
			out[outcome] = expClamp(math.Log(cur)+logit*alpha, config.ClampOutcomeMultLo, config.ClampOutcomeMultHi)
		} else {
			out[outcome] = expClamp(logit*alpha, config.ClampOutcomeMultLo, config.ClampOutcomeMultHi)
		}
	}
	return out
}

func tacticAlpha(scheme string) config.TacticAlpha {
	if a, ok := config.TacticAlphas[scheme]; ok {
		return a
	}
	return config.TacticAlpha{Action: config.AlphaActionFallback, Outcome: config.AlphaOutcomeFallback}
}

func featureDot(features map[string]float64, weights map[string]float64) float64 {
	var sum float64
	for feat, w := range weights {
		sum += (features[feat] - config.ShotDietBaseline) * w
	}
	return sum
}

func expClamp(logit, lo, hi float64) float64 {
	m := math.Exp(logit)
	if m < lo {
		return lo
	}
	if m > hi {
		return hi
	}
	return m
}
