package possession

import (
	"math/rand"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/shotdiet"
)

// sampleAction builds the action-selection distribution and draws from it.
func sampleAction(off *domain.Team, style *shotdiet.Style, cfg *domain.GameConfig, ctx *Context) string {
	scheme := config.CanonicalScheme(off.Tactics.OffenseScheme)
	base := cfg.ActionWeightsByScheme[scheme]
	if base == nil {
		base = cfg.ActionWeightsByScheme[config.SchemeSpreadHeavyPnR]
	}
	actionMult := shotdiet.ActionMultipliers(style, scheme)

	weights := make(map[string]float64, len(config.AllActions))
	for _, a := range config.AllActions {
		w := base[a] * actionMult[a]
		if m, ok := off.Tactics.ActionWeightMult[a]; ok {
			w *= m
		}
		if bias, ok := off.Tactics.Context["style_bias_"+a]; ok {
			w *= (1.0 + bias)
		}
		weights[a] = w
	}
	if ctx.FollowsDefStop {
		weights[config.ActionTransitionEarly] *= 1.8
	}
	return weightedChoice(ctx.RNG, weights)
}

// sampleOutcome builds the outcome-prior distribution for a chosen action
// and draws from it.
func sampleOutcome(off, def *domain.Team, style *shotdiet.Style, cfg *domain.GameConfig, action string, ctx *Context) string {
	priors := cfg.OutcomePriorsByAction[action]
	outMult := shotdiet.OutcomeMultipliers(style, style, config.CanonicalScheme(off.Tactics.OffenseScheme), action)
	roleFit := shotdiet.BestRoleFit(def)

	weights := make(map[string]float64, len(priors))
	for outcome, prior := range priors {
		w := prior
		if m, ok := outMult[outcome]; ok {
			w *= m
		}
		if m, ok := off.Tactics.OutcomeGlobalMult[outcome]; ok {
			w *= m
		}
		if byAction, ok := off.Tactics.OutcomeByActionMul[action]; ok {
			if m, ok := byAction[outcome]; ok {
				w *= m
			}
		}
		weights[outcome] = w
	}
	// turnover-quality pressure term derived from defensive role fit.
	pressure := 0.0
	for _, pid := range roleFit {
		if p := def.ByID[pid]; p != nil {
			pressure += p.Derived["STEAL"]
		}
	}
	pressure = (pressure/5.0 - 50.0) / 200.0
	if w, ok := weights[config.OutTOBad]; ok {
		weights[config.OutTOBad] = w * (1.0 + pressure)
	}
	if w, ok := weights[config.OutTOStrip]; ok {
		weights[config.OutTOStrip] = w * (1.0 + pressure)
	}
	if ctx.PassChain >= 3 {
		// force SpotUp-flavored resolution: collapse weights onto the
		// catch-and-shoot outcome family.
		forced := map[string]float64{config.OutShot3CS: 1.0, config.OutShotMid: 0.4}
		return weightedChoice(ctx.RNG, forced)
	}
	return weightedChoice(ctx.RNG, weights)
}

// actionTimeCost returns the seconds to deduct from both clocks for a given
// action, scaled by the offense's tempo multiplier if one is configured.
func actionTimeCost(action string, tac domain.Tactics) float64 {
	base := map[string]float64{
		config.ActionPnR: 6.0, config.ActionDrive: 4.5, config.ActionDHO: 5.0,
		config.ActionSpotUp: 3.0, config.ActionKickout: 3.5, config.ActionExtraPass: 2.5,
		config.ActionCut: 4.0, config.ActionPostUp: 6.5, config.ActionHornsSet: 5.5,
		config.ActionTransitionEarly: 2.0,
	}[action]
	if base == 0 {
		base = 4.0
	}
	if tempo, ok := tac.Context["tempo_mult"]; ok && tempo > 0 {
		base *= tempo
	}
	return base
}

func weightedChoice(rng *rand.Rand, weights map[string]float64) string {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		for k := range weights {
			return k
		}
		return config.ActionSpotUp
	}
	r := rng.Float64() * total
	for k, w := range weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return k
		}
		r -= w
	}
	for k, w := range weights {
		if w > 0 {
			return k
		}
	}
	return config.ActionSpotUp
}
