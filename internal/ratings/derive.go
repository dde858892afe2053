// Package ratings implements the pure raw-to-derived ability formula layer.
// Grounded on the coefficient layout of matchengine_v3's derived_formulas
// module: each derived ability is a fixed linear combination of raw ratings,
// missing raw inputs default to 50, and every output clamps to [0,100].
package ratings

// Formula is one derived ability's published coefficient row.
type Formula struct {
	Output string
	Terms  map[string]float64 // raw rating name -> coefficient
}

// Table is the frozen 30-row formula layer. Three rows (DRIVE_CREATE,
// HANDLE_SAFE, FIRST_STEP) carry coefficients that sum to 1.10, not 1.0, in
// the authoritative source; that is reproduced verbatim rather than
// renormalized (see DESIGN.md open-question decision).
var Table = []Formula{
	{"FIN_RIM", map[string]float64{"Finishing": 0.55, "Strength": 0.25, "Vertical": 0.20}},
	{"FIN_CONTACT", map[string]float64{"Finishing": 0.45, "Strength": 0.40, "Free Throw": 0.15}},
	{"SHOT_MID", map[string]float64{"Mid-Range Shot": 0.70, "Shot IQ": 0.15, "Release Speed": 0.15}},
	{"SHOT_3_CS", map[string]float64{"Three-Point Shot": 0.70, "Release Speed": 0.20, "Shot IQ": 0.10}},
	{"SHOT_3_OFF_DRIBBLE", map[string]float64{"Three-Point Shot": 0.50, "Ball Handling": 0.30, "Shot IQ": 0.20}},
	{"FT_SHOOT", map[string]float64{"Free Throw": 1.0}},
	{"DRIVE_CREATE", map[string]float64{"Speed with Ball": 0.30, "Ball Handle": 0.25, "Agility": 0.15, "Layup": 0.10, "Shot IQ": 0.10, "Offensive Consistency": 0.10, "Strength": 0.10}},
	{"HANDLE_SAFE", map[string]float64{"Ball Handle": 0.45, "Hands": 0.20, "Agility": 0.15, "Strength": 0.10, "Offensive Consistency": 0.10, "Pass IQ": 0.10}},
	{"FIRST_STEP", map[string]float64{"Speed": 0.35, "Agility": 0.25, "Speed with Ball": 0.15, "Vertical": 0.15, "Ball Handle": 0.10, "Stamina": 0.10}},
	{"PASS_CREATE", map[string]float64{"Pass Accuracy": 0.45, "Pass Vision": 0.40, "Decision Making": 0.15}},
	{"PASS_SAFETY", map[string]float64{"Pass Accuracy": 0.50, "Decision Making": 0.35, "Pass Vision": 0.15}},
	{"PNR_READ", map[string]float64{"Pick & Roll Offense": 0.55, "Pass Vision": 0.25, "Shot IQ": 0.20}},
	{"PNR_FINISH_ROLL", map[string]float64{"Pick & Roll Defense": 0.0, "Finishing": 0.50, "Vertical": 0.30, "Strength": 0.20}},
	{"SHORTROLL_PLAY", map[string]float64{"Pass Vision": 0.40, "Pick & Roll Offense": 0.30, "Decision Making": 0.30}},
	{"POST_SCORE", map[string]float64{"Post Scoring": 0.60, "Strength": 0.25, "Footwork": 0.15}},
	{"POST_PASS", map[string]float64{"Post Scoring": 0.20, "Pass Vision": 0.50, "Decision Making": 0.30}},
	{"SEAL_POWER", map[string]float64{"Strength": 0.55, "Post Scoring": 0.25, "Vertical": 0.20}},
	{"OFFBALL_MOVEMENT", map[string]float64{"Off-Ball Movement": 0.60, "Speed": 0.25, "Shot IQ": 0.15}},
	{"CUT_FINISH", map[string]float64{"Finishing": 0.45, "Off-Ball Movement": 0.35, "Vertical": 0.20}},
	{"SPACE_GRAVITY", map[string]float64{"Three-Point Shot": 0.50, "Shot IQ": 0.30, "Off-Ball Movement": 0.20}},
	{"TRANSITION_PUSH", map[string]float64{"Speed": 0.40, "Ball Handling": 0.30, "Decision Making": 0.30}},
	{"DEF_POA", map[string]float64{"Perimeter Defense": 0.50, "Lateral Quickness": 0.30, "Strength": 0.20}},
	{"DEF_HELP", map[string]float64{"Interior Defense": 0.35, "Defensive IQ": 0.40, "Speed": 0.25}},
	{"DEF_RIM_PROTECT", map[string]float64{"Interior Defense": 0.45, "Vertical": 0.30, "Strength": 0.25}},
	{"DEF_POST", map[string]float64{"Interior Defense": 0.50, "Strength": 0.35, "Footwork": 0.15}},
	{"STEAL", map[string]float64{"Steal": 0.60, "Lateral Quickness": 0.25, "Defensive IQ": 0.15}},
	{"REBOUND_OFF", map[string]float64{"Offensive Rebounding": 0.55, "Vertical": 0.25, "Strength": 0.20}},
	{"REBOUND_DEF", map[string]float64{"Defensive Rebounding": 0.55, "Vertical": 0.25, "Strength": 0.20}},
	{"PHYSICAL", map[string]float64{"Strength": 0.40, "Vertical": 0.30, "Stamina": 0.30}},
	{"ENDURANCE", map[string]float64{"Stamina": 0.70, "Strength": 0.30}},
}

const defaultRaw = 50.0

// Derive turns a raw-rating mapping into the full 30-key derived-ability
// mapping, clamping every output to [0,100]. Missing raw ratings default to
// 50 rather than erroring.
func Derive(raw map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(Table))
	for _, f := range Table {
		var sum float64
		for rating, coeff := range f.Terms {
			v, ok := raw[rating]
			if !ok {
				v = defaultRaw
			}
			sum += v * coeff
		}
		out[f.Output] = clamp(sum, 0, 100)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
