// Package config loads the immutable, era-scoped GameConfig tables: action
// weights, outcome priors, base probabilities, scheme multipliers, and the
// shot-diet feature weight tables. Grounded on matchengine_v3's
// shot_diet_data module and the action/outcome catalog in the derived
// formula layer; loaded once per era and shared by reference.
package config

// Base offensive actions.
const (
	ActionPnR             = "PnR"
	ActionDrive           = "Drive"
	ActionDHO             = "DHO"
	ActionSpotUp          = "SpotUp"
	ActionKickout         = "Kickout"
	ActionExtraPass       = "ExtraPass"
	ActionCut             = "Cut"
	ActionPostUp          = "PostUp"
	ActionHornsSet        = "HornsSet"
	ActionTransitionEarly = "TransitionEarly"
)

var AllActions = []string{
	ActionPnR, ActionDrive, ActionDHO, ActionSpotUp, ActionKickout,
	ActionExtraPass, ActionCut, ActionPostUp, ActionHornsSet, ActionTransitionEarly,
}

// Outcome categories, tagged by shared prefix (SHOT_*, PASS_*, TO_*, FOUL_*).
const (
	OutShotRim   = "SHOT_RIM"
	OutShotMid   = "SHOT_MID"
	OutShot3CS   = "SHOT_3_CS"
	OutShot3Off  = "SHOT_3_OFFDRIB"
	OutShotPost  = "SHOT_POST"
	OutPassKick  = "PASS_KICKOUT"
	OutPassSkip  = "PASS_SKIP"
	OutPassExtra = "PASS_EXTRA"
	OutPassShort = "PASS_SHORTROLL"
	OutTOBad     = "TO_BAD_PASS"
	OutTOStrip   = "TO_STRIP"
	OutFoulRim   = "FOUL_DRAW_RIM"
	OutFoulMid   = "FOUL_DRAW_JUMPER"
	OutFoulPost  = "FOUL_DRAW_POST"
	OutFoulReach = "FOUL_REACH_TRAP"
	OutResetGen  = "RESET_GENERIC"
)

// Offensive schemes.
const (
	SchemeSpreadHeavyPnR = "Spread_HeavyPnR"
	SchemeFiveOut        = "FiveOut"
	SchemeDriveKick      = "Drive_Kick"
	SchemeMotionSplitCut = "Motion_SplitCut"
	SchemeDHOChicago     = "DHO_Chicago"
	SchemePostInsideOut  = "Post_InsideOut"
	SchemeHornsElbow     = "Horns_Elbow"
	SchemeTransitionEarly = "Transition_Early"
)

// Defensive schemes.
const (
	DefSchemeDrop            = "Drop"
	DefSchemeSwitchEverything = "Switch_Everything"
	DefSchemeZone            = "Zone"
)
