package orchestrator

import (
	"github.com/nba-gm-sim/matchengine/internal/domain"
)

// ValidateIdentities enforces distinct team_ids, unique on-court pids
// within a team, and no pid shared across teams.
func ValidateIdentities(home, away *domain.Team) error {
	if home.TeamID == away.TeamID {
		return domain.NewContractError("home_team_id == away_team_id: %s", home.TeamID)
	}
	if err := uniqueOnCourt(home); err != nil {
		return err
	}
	if err := uniqueOnCourt(away); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, pid := range home.OnCourt {
		seen[pid] = true
	}
	for _, pid := range away.OnCourt {
		if seen[pid] {
			return domain.NewContractError("player_id appears on both teams in a single game: %s", pid)
		}
	}
	return nil
}

func uniqueOnCourt(t *domain.Team) error {
	seen := map[string]bool{}
	for _, pid := range t.OnCourt {
		if pid == "" {
			return domain.NewContractError("team %s on-court lineup has fewer than 5 players", t.TeamID)
		}
		if seen[pid] {
			return domain.NewContractError("duplicate pid %s within team %s", pid, t.TeamID)
		}
		seen[pid] = true
		if _, ok := t.ByID[pid]; !ok {
			return domain.NewContractError("on-court pid %s not found on team %s roster", pid, t.TeamID)
		}
	}
	return nil
}

// requiredDerivedKeys is the set of derived ability keys every player must
// carry before a game can simulate in strict mode.
var requiredDerivedKeys = []string{
	"FIN_RIM", "SHOT_MID", "SHOT_3_CS", "FT_SHOOT", "DRIVE_CREATE", "PASS_CREATE",
	"DEF_POA", "DEF_HELP", "DEF_RIM_PROTECT", "REBOUND_OFF", "REBOUND_DEF", "PHYSICAL",
}

// ValidateTeamState clamps tactic multipliers and verifies required
// derived-ability keys are present, failing or backfilling depending on
// cfg.ValidationStrict.
func ValidateTeamState(t *domain.Team, cfg *domain.GameConfig) error {
	for _, p := range t.Roster {
		for _, key := range requiredDerivedKeys {
			if _, ok := p.Derived[key]; !ok {
				if cfg.ValidationStrict {
					return domain.NewValidationError("player %s missing required derived ability %s", p.PlayerID, key)
				}
				if p.Derived == nil {
					p.Derived = map[string]float64{}
				}
				p.Derived[key] = 50
			}
		}
	}
	for k, v := range t.Tactics.ActionWeightMult {
		t.Tactics.ActionWeightMult[k] = clampMult(v, cfg)
	}
	for k, v := range t.Tactics.OutcomeGlobalMult {
		t.Tactics.OutcomeGlobalMult[k] = clampMult(v, cfg)
	}
	return nil
}

func clampMult(v float64, cfg *domain.GameConfig) float64 {
	if v < 0.70 {
		return 0.70
	}
	if v > 1.40 {
		return 1.40
	}
	return v
}
