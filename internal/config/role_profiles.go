package config

// Defensive role names used by the role-fit quality subsystem. Each
// defensive scheme defines five roles; a player is scored against a role's
// ability-weight profile.
const (
	DefRoleRimProtector  = "RimProtector"
	DefRolePointOfAttack = "PointOfAttack"
	DefRoleHelper        = "Helper"
	DefRoleWing          = "Wing"
	DefRolePostStopper   = "PostStopper"
)

var DefenseRolesByScheme = map[string][]string{
	DefSchemeDrop:             {DefRoleRimProtector, DefRolePointOfAttack, DefRoleHelper, DefRoleWing, DefRolePostStopper},
	DefSchemeSwitchEverything: {DefRolePointOfAttack, DefRolePointOfAttack, DefRoleWing, DefRoleWing, DefRoleHelper},
	DefSchemeZone:             {DefRoleRimProtector, DefRoleHelper, DefRoleHelper, DefRoleWing, DefRoleWing},
}

// DefenseRoleProfile gives the derived-ability weights used to score a
// player's fit for a defensive role.
var DefenseRoleProfile = map[string]map[string]float64{
	DefRoleRimProtector:  {"DEF_RIM_PROTECT": 0.6, "REBOUND_DEF": 0.4},
	DefRolePointOfAttack: {"DEF_POA": 0.7, "STEAL": 0.3},
	DefRoleHelper:        {"DEF_HELP": 0.6, "STEAL": 0.2, "DEF_POA": 0.2},
	DefRoleWing:          {"DEF_POA": 0.4, "DEF_HELP": 0.4, "STEAL": 0.2},
	DefRolePostStopper:   {"DEF_POST": 0.6, "REBOUND_DEF": 0.4},
}

// PassProfileWeights scores a pass's quality against the receiving
// defensive lineup, same apparatus as shot quality.
var PassProfileWeights = map[string]float64{
	"DEF_HELP":  0.5,
	"STEAL":     0.5,
}
