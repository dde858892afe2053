package config

// OutcomeAbilityProfileOffense gives the offensive derived-ability weights
// dotted against the shooter/passer to produce off_score in the shot/pass
// make-probability formula.
var OutcomeAbilityProfileOffense = map[string]map[string]float64{
	OutShotRim:  {"FIN_RIM": 0.6, "FIN_CONTACT": 0.4},
	OutShotMid:  {"SHOT_MID": 1.0},
	OutShot3CS:  {"SHOT_3_CS": 1.0},
	OutShot3Off: {"SHOT_3_OFF_DRIBBLE": 1.0},
	OutShotPost: {"POST_SCORE": 0.7, "SEAL_POWER": 0.3},
}

// OutcomeAbilityProfileDefense gives the defensive derived-ability weights
// dotted against the best-fit defender to produce def_score.
var OutcomeAbilityProfileDefense = map[string]map[string]float64{
	OutShotRim:  {"DEF_RIM_PROTECT": 0.7, "DEF_HELP": 0.3},
	OutShotMid:  {"DEF_POA": 0.6, "DEF_HELP": 0.4},
	OutShot3CS:  {"DEF_HELP": 0.6, "DEF_POA": 0.4},
	OutShot3Off: {"DEF_POA": 0.7, "DEF_HELP": 0.3},
	OutShotPost: {"DEF_POST": 1.0},
}

// Shot-kind specific base-probability knob multipliers.
var ShotKindKnobMult = map[string]float64{
	OutShotRim: 1.0, OutShotMid: 0.95, OutShot3CS: 1.0, OutShot3Off: 0.92, OutShotPost: 0.97,
}
