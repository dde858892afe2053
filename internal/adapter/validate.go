package adapter

import "github.com/nba-gm-sim/matchengine/internal/domain"

// ValidateV2 is the public v2 contract validator, grounded on
// state_results.py's validate_v2_game_result / _validate_game_result_v2.
// It is idempotent and side-effect free; calling it twice on the same
// value must raise the same outcome.
func ValidateV2(v2 *domain.GameResultV2) error {
	if v2.SchemaVersion != SchemaVersion {
		return domain.NewAdapterError("raw matchengine result invalid: schema_version must be %q, got %q", SchemaVersion, v2.SchemaVersion)
	}
	g := v2.Game
	if g.GameID == "" || g.Date == "" || g.SeasonID == "" || g.Phase == "" || g.HomeTeamID == "" || g.AwayTeamID == "" {
		return domain.NewAdapterError("raw matchengine result invalid: game block missing a required key")
	}
	if !domain.AllowedPhases[g.Phase] {
		return domain.NewAdapterError("raw matchengine result invalid: phase %q not in allowed set", g.Phase)
	}
	if g.HomeTeamID == g.AwayTeamID {
		return domain.NewAdapterError("raw matchengine result invalid: home_team_id == away_team_id")
	}

	if len(v2.Final) != 2 || !has(v2.Final, g.HomeTeamID) || !has(v2.Final, g.AwayTeamID) {
		return domain.NewAdapterError("raw matchengine result invalid: final must have entries for exactly home_team_id and away_team_id")
	}

	if len(v2.Teams) != 2 || !hasTeam(v2.Teams, g.HomeTeamID) || !hasTeam(v2.Teams, g.AwayTeamID) {
		return domain.NewAdapterError("raw matchengine result invalid: teams must have entries for exactly home_team_id and away_team_id")
	}
	for tid, team := range v2.Teams {
		if _, ok := team.Totals["PTS"]; !ok {
			return domain.NewAdapterError("raw matchengine result invalid: team %s totals missing PTS", tid)
		}
		if team.Players == nil {
			return domain.NewAdapterError("raw matchengine result invalid: team %s missing players list", tid)
		}
		for _, row := range team.Players {
			if row.PlayerID == "" {
				return domain.NewAdapterError("raw matchengine result invalid: team %s has a player row with empty PlayerID", tid)
			}
			if row.TeamID != tid {
				return domain.NewAdapterError("raw matchengine result invalid: PlayerBox row TeamID mismatch for %s: row.TeamID=%s expected %s", row.PlayerID, row.TeamID, tid)
			}
		}
	}

	if v2.GameState.TeamFouls == nil || v2.GameState.PlayerFouls == nil || v2.GameState.Fatigue == nil || v2.GameState.MinutesPlayedSec == nil {
		return domain.NewAdapterError("raw matchengine result invalid: game_state missing one of the four required sub-maps")
	}
	for _, sub := range []map[string]map[string]int{v2.GameState.PlayerFouls} {
		if err := requireTeamKeyed(sub, g.HomeTeamID, g.AwayTeamID); err != nil {
			return err
		}
	}
	if err := requireTeamKeyedFloat(v2.GameState.Fatigue, g.HomeTeamID, g.AwayTeamID); err != nil {
		return err
	}
	if err := requireTeamKeyedFloat(v2.GameState.MinutesPlayedSec, g.HomeTeamID, g.AwayTeamID); err != nil {
		return err
	}

	return nil
}

func has(m map[string]int, k string) bool { _, ok := m[k]; return ok }
func hasTeam(m map[string]domain.GameResultV2Team, k string) bool { _, ok := m[k]; return ok }

func requireTeamKeyed(m map[string]map[string]int, home, away string) error {
	if len(m) != 2 {
		return domain.NewAdapterError("raw matchengine result invalid: expected exactly two team-keyed entries, got %d", len(m))
	}
	if _, ok := m[home]; !ok {
		return domain.NewAdapterError("raw matchengine result invalid: missing team-keyed entry for %s", home)
	}
	if _, ok := m[away]; !ok {
		return domain.NewAdapterError("raw matchengine result invalid: missing team-keyed entry for %s", away)
	}
	return nil
}

func requireTeamKeyedFloat(m map[string]map[string]float64, home, away string) error {
	if len(m) != 2 {
		return domain.NewAdapterError("raw matchengine result invalid: expected exactly two team-keyed entries, got %d", len(m))
	}
	if _, ok := m[home]; !ok {
		return domain.NewAdapterError("raw matchengine result invalid: missing team-keyed entry for %s", home)
	}
	if _, ok := m[away]; !ok {
		return domain.NewAdapterError("raw matchengine result invalid: missing team-keyed entry for %s", away)
	}
	return nil
}
