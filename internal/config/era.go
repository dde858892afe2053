package config

import "github.com/nba-gm-sim/matchengine/internal/domain"

// Shot-diet tuning constants, grounded on matchengine_v3/shot_diet_data.py.
const (
	ShotDietBaseline        = 0.50
	TauUsage                = 0.15
	UsageMinPrimary         = 0.55
	UsageMaxPrimary         = 0.90
	ClampActionMultLo       = 0.78
	ClampActionMultHi       = 1.28
	ClampOutcomeMultLo      = 0.65
	ClampOutcomeMultHi      = 1.45
	ProbFloor               = 1e-6
	AlphaActionFallback     = 0.35
	AlphaOutcomeFallback    = 0.65
)

// TacticAlpha is the per-tactic (alpha_action, alpha_outcome) clamp pair.
type TacticAlpha struct {
	Action  float64
	Outcome float64
}

// TacticAlphas narrows the default action/outcome multiplier clamp bounds
// per offensive scheme.
var TacticAlphas = map[string]TacticAlpha{
	SchemeSpreadHeavyPnR:  {0.40, 0.70},
	SchemeFiveOut:         {0.45, 0.75},
	SchemeDriveKick:       {0.45, 0.72},
	SchemeMotionSplitCut:  {0.45, 0.75},
	SchemeDHOChicago:      {0.42, 0.72},
	SchemePostInsideOut:   {0.42, 0.70},
	SchemeHornsElbow:      {0.45, 0.72},
	SchemeTransitionEarly: {0.55, 0.70},
}

// ScreenerRolePriority gives, per offensive scheme, the ordered role
// priority used when selecting a screener/roll participant.
var ScreenerRolePriority = map[string][]string{
	SchemeSpreadHeavyPnR: {domain.RoleRollerFinisher, domain.RoleShortRollPlaymaker, domain.RolePopSpacerBig},
	SchemeFiveOut:        {domain.RolePopSpacerBig, domain.RoleRollerFinisher},
	SchemeDriveKick:      {domain.RoleRollerFinisher, domain.RolePopSpacerBig},
	SchemeMotionSplitCut: {domain.RoleConnectorPlaymaker, domain.RoleRollerFinisher},
	SchemeDHOChicago:     {domain.RoleShortRollPlaymaker, domain.RoleRollerFinisher},
	SchemePostInsideOut:  {domain.RolePostHub, domain.RoleRollerFinisher},
	SchemeHornsElbow:     {domain.RoleShortRollPlaymaker, domain.RolePopSpacerBig},
	SchemeTransitionEarly: {domain.RoleTransitionHandler, domain.RoleRollerFinisher},
}

// SchemeAliases maps loosely-typed scheme name variants onto the canonical
// set, mirroring the forgiving lookup in the original era-config loader.
var SchemeAliases = map[string]string{
	"Spread":       SchemeSpreadHeavyPnR,
	"5Out":         SchemeFiveOut,
	"DriveAndKick": SchemeDriveKick,
	"Motion":       SchemeMotionSplitCut,
	"Chicago":      SchemeDHOChicago,
	"PostUp":       SchemePostInsideOut,
	"Horns":        SchemeHornsElbow,
	"Transition":   SchemeTransitionEarly,
}

// CanonicalScheme resolves an alias to its canonical scheme name.
func CanonicalScheme(name string) string {
	if canon, ok := SchemeAliases[name]; ok {
		return canon
	}
	return name
}

// actionBasePrior is the scheme-independent starting weight for each base
// action before any scheme/shot-diet multiplier is applied.
var actionBasePrior = map[string]float64{
	ActionPnR: 0.22, ActionDrive: 0.16, ActionDHO: 0.09, ActionSpotUp: 0.12,
	ActionKickout: 0.08, ActionExtraPass: 0.06, ActionCut: 0.08, ActionPostUp: 0.07,
	ActionHornsSet: 0.06, ActionTransitionEarly: 0.06,
}

// schemeActionDelta nudges the base prior per offensive scheme.
var schemeActionDelta = map[string]map[string]float64{
	SchemeSpreadHeavyPnR:  {ActionPnR: 0.12, ActionSpotUp: 0.04},
	SchemeFiveOut:         {ActionSpotUp: 0.08, ActionDrive: 0.06, ActionKickout: 0.04},
	SchemeDriveKick:       {ActionDrive: 0.10, ActionKickout: 0.08},
	SchemeMotionSplitCut:  {ActionCut: 0.09, ActionExtraPass: 0.06},
	SchemeDHOChicago:      {ActionDHO: 0.14},
	SchemePostInsideOut:   {ActionPostUp: 0.14, ActionKickout: 0.05},
	SchemeHornsElbow:      {ActionHornsSet: 0.14, ActionPnR: 0.04},
	SchemeTransitionEarly: {ActionTransitionEarly: 0.18},
}

// outcomeBasePrior is the default per-action outcome prior distribution.
var outcomeBasePrior = map[string]map[string]float64{
	ActionPnR: {
		OutShotRim: 0.18, OutShotMid: 0.12, OutShot3CS: 0.10, OutShot3Off: 0.08,
		OutPassKick: 0.14, OutPassShort: 0.10, OutTOBad: 0.08, OutTOStrip: 0.04,
		OutFoulRim: 0.08, OutFoulReach: 0.03, OutResetGen: 0.05,
	},
	ActionDrive: {
		OutShotRim: 0.30, OutShotMid: 0.08, OutPassKick: 0.18, OutPassExtra: 0.08,
		OutTOBad: 0.10, OutTOStrip: 0.06, OutFoulRim: 0.14, OutFoulReach: 0.02, OutResetGen: 0.04,
	},
	ActionDHO: {
		OutShotMid: 0.14, OutShot3Off: 0.12, OutShotRim: 0.12, OutPassKick: 0.16,
		OutPassShort: 0.10, OutTOBad: 0.08, OutTOStrip: 0.04, OutFoulRim: 0.08,
		OutFoulReach: 0.02, OutResetGen: 0.14,
	},
	ActionSpotUp: {
		OutShot3CS: 0.48, OutShotMid: 0.14, OutPassExtra: 0.10, OutTOBad: 0.05,
		OutFoulMid: 0.03, OutResetGen: 0.20,
	},
	ActionKickout: {
		OutShot3CS: 0.42, OutShotMid: 0.10, OutPassExtra: 0.16, OutTOBad: 0.08,
		OutFoulMid: 0.04, OutResetGen: 0.20,
	},
	ActionExtraPass: {
		OutShot3CS: 0.34, OutShotMid: 0.10, OutPassKick: 0.10, OutTOBad: 0.10,
		OutFoulMid: 0.02, OutResetGen: 0.34,
	},
	ActionCut: {
		OutShotRim: 0.46, OutPassExtra: 0.10, OutTOBad: 0.08, OutFoulRim: 0.12,
		OutResetGen: 0.24,
	},
	ActionPostUp: {
		OutShotPost: 0.42, OutShotRim: 0.08, OutPassKick: 0.14, OutTOBad: 0.10,
		OutTOStrip: 0.04, OutFoulPost: 0.14, OutResetGen: 0.08,
	},
	ActionHornsSet: {
		OutShotMid: 0.12, OutShot3CS: 0.10, OutPassShort: 0.14, OutPassKick: 0.14,
		OutTOBad: 0.08, OutFoulRim: 0.06, OutResetGen: 0.36,
	},
	ActionTransitionEarly: {
		OutShotRim: 0.38, OutShot3CS: 0.16, OutPassKick: 0.14, OutTOBad: 0.12,
		OutTOStrip: 0.04, OutFoulRim: 0.10, OutResetGen: 0.06,
	},
}

var shotBaseProb = map[string]float64{
	OutShotRim:  0.62,
	OutShotMid:  0.42,
	OutShot3CS:  0.37,
	OutShot3Off: 0.33,
	OutShotPost: 0.48,
}

var passBaseProb = map[string]float64{
	OutPassKick:  0.93,
	OutPassSkip:  0.88,
	OutPassExtra: 0.95,
	OutPassShort: 0.90,
}

var corner3GivenThreeByAction = map[string]float64{
	ActionPnR: 0.28, ActionDrive: 0.30, ActionDHO: 0.24, ActionSpotUp: 0.22,
	ActionKickout: 0.34, ActionExtraPass: 0.30, ActionCut: 0.20, ActionPostUp: 0.26,
	ActionHornsSet: 0.22, ActionTransitionEarly: 0.32,
}

// Default builds the "default" era's immutable GameConfig, with
// action/outcome weight tables merged from the base priors and scheme
// deltas above.
func Default() *domain.GameConfig {
	actionWeights := map[string]map[string]float64{}
	for scheme, delta := range schemeActionDelta {
		w := map[string]float64{}
		for a, base := range actionBasePrior {
			w[a] = base
		}
		for a, d := range delta {
			w[a] += d
		}
		actionWeights[scheme] = w
	}

	outcomePriors := map[string]map[string]float64{}
	for action, priors := range outcomeBasePrior {
		cp := make(map[string]float64, len(priors))
		for k, v := range priors {
			cp[k] = v
		}
		outcomePriors[action] = cp
	}

	return &domain.GameConfig{
		EraName:    "default",
		EraVersion: "1.0",

		RegulationQuarters: 4,
		QuarterLengthSec:   720,
		OvertimeLengthSec:  300,
		MaxStallSteps:      7,
		FoulOutLimit:       6,
		BonusFoulCount:     5,

		ActionWeightsByScheme:  actionWeights,
		OutcomePriorsByAction:  outcomePriors,
		ShotBaseProb:           shotBaseProb,
		PassBaseProb:           passBaseProb,
		Corner3GivenThreeByAct: corner3GivenThreeByAction,
		SchemeOutcomeMult:      map[string]map[string]map[string]float64{},

		LogisticSlope:      14.0,
		VarianceMultMin:    0.92,
		VarianceMultMax:    1.08,
		PMakeMin:           0.02,
		PMakeMax:           0.92,
		FatigueLogitMax:    0.25,
		ContactPenaltyHard: 0.22,
		ContactPenaltyNorm: 0.30,
		ContactPenaltySoft: 0.40,
		FoulResetShotClock: 14.0,
		OrbResetShotClock:  14.0,

		ValidationStrict:   true,
		BonusReroutesToFT:  false,
		ShotDefScoreDampen: 0.5,
	}
}
