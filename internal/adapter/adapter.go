// Package adapter normalizes a RawGameResult into the versioned, strictly
// validated GameResultV2 external contract. Grounded on
// matchengine_v2_adapter.py's final-gatekeeper validation chain and
// state_results.py's _validate_game_result_v2.
package adapter

import (
	"github.com/nba-gm-sim/matchengine/internal/domain"
)

const SchemaVersion = "2.0"
const EngineName = "nba-gm-matchengine"

// AdaptRawResult transforms raw + ctx into a GameResultV2, validating
// strictly before returning. No silent ID rewriting is ever performed.
func AdaptRawResult(raw *domain.RawGameResult, ctx domain.GameContext) (*domain.GameResultV2, error) {
	if ctx.HomeTeamID == ctx.AwayTeamID {
		return nil, domain.NewContractError("home_team_id == away_team_id: %s", ctx.HomeTeamID)
	}
	if _, ok := raw.Teams[ctx.HomeTeamID]; !ok {
		return nil, domain.NewAdapterError("raw matchengine result invalid: missing team %s", ctx.HomeTeamID)
	}
	if _, ok := raw.Teams[ctx.AwayTeamID]; !ok {
		return nil, domain.NewAdapterError("raw matchengine result invalid: missing team %s", ctx.AwayTeamID)
	}
	for tid := range raw.Teams {
		if tid == "home" || tid == "away" {
			return nil, domain.NewAdapterError("raw matchengine result invalid: teams map must be keyed by team_id, not side")
		}
	}

	v2 := &domain.GameResultV2{
		SchemaVersion: SchemaVersion,
		Game: domain.GameResultV2Game{
			GameID: ctx.GameID, Date: ctx.Date, SeasonID: ctx.SeasonID, Phase: ctx.Phase,
			HomeTeamID: ctx.HomeTeamID, AwayTeamID: ctx.AwayTeamID,
			OvertimePeriods: raw.Meta.OvertimePeriods, PossessionsPerTeam: raw.PossessionsPerTeam,
		},
		Final: map[string]int{},
		Teams: map[string]domain.GameResultV2Team{},
		Meta: domain.GameResultV2Meta{
			EngineName: EngineName, EngineVersion: raw.Meta.EngineVersion,
			Era: raw.Meta.Era, EraVersion: raw.Meta.EraVersion, ReplayToken: raw.Meta.ReplayToken,
		},
	}

	for _, tid := range []string{ctx.HomeTeamID, ctx.AwayTeamID} {
		rt := raw.Teams[tid]
		totals, extra := normalizeTotals(rt)
		totals["Possessions"] = float64(raw.PossessionsPerTeam[tid])
		players := make([]domain.PlayerRowV2, 0, len(rt.PlayerBox))
		for pid, box := range rt.PlayerBox {
			players = append(players, domain.PlayerRowV2{
				PlayerID: pid, TeamID: tid,
				Counters: boxToCounters(box),
				Derived:  derivedPercentages(box),
			})
		}
		v2.Teams[tid] = domain.GameResultV2Team{
			Totals: totals, Breakdowns: rt.Breakdowns, Players: players, ExtraTotals: extra,
		}
		v2.Final[tid] = rt.Totals.PTS
	}

	gsV2, err := normalizeGameState(raw.GameState, ctx, v2.Teams)
	if err != nil {
		return nil, err
	}
	v2.GameState = gsV2

	if raw.ReplayEvents != nil {
		for _, ev := range raw.ReplayEvents {
			if ev == nil {
				return nil, domain.NewAdapterError("raw matchengine result invalid: replay_events entries must be non-nil maps")
			}
		}
		v2.ReplayEvents = raw.ReplayEvents
	}

	if err := ValidateV2(v2); err != nil {
		return nil, err
	}
	return v2, nil
}

func normalizeTotals(rt domain.RawTeamResult) (map[string]float64, map[string]float64) {
	t := rt.Totals
	totals := map[string]float64{
		"PTS": float64(t.PTS), "FGM": float64(t.FGM), "FGA": float64(t.FGA),
		"3PM": float64(t.ThreePM), "3PA": float64(t.ThreePA), "FTM": float64(t.FTM), "FTA": float64(t.FTA),
		"TOV": float64(t.TOV), "ORB": float64(t.ORB), "DRB": float64(t.DRB),
		"AST": float64(t.AST), "PITP": float64(t.PITP),
		"FastbreakPTS": float64(t.FastbreakPTS), "SecondChancePTS": float64(t.SecondChancePTS),
		"PointsOffTOV": float64(t.PointsOffTOV),
	}
	extra := map[string]float64{"AvgFatigue": rt.AvgFatigue}
	return totals, extra
}

func boxToCounters(b domain.PlayerBox) map[string]float64 {
	return map[string]float64{
		"PTS": float64(b.PTS), "FGM": float64(b.FGM), "FGA": float64(b.FGA),
		"3PM": float64(b.ThreePM), "3PA": float64(b.ThreePA), "FTM": float64(b.FTM), "FTA": float64(b.FTA),
		"TOV": float64(b.TOV), "ORB": float64(b.ORB), "DRB": float64(b.DRB), "AST": float64(b.AST),
		"PF": float64(b.PF), "PITP": float64(b.PITP), "FastbreakPTS": float64(b.FastbreakPTS),
		"SecondChancePTS": float64(b.SecondChancePTS), "PointsOffTOV": float64(b.PointsOffTOV),
		"MinutesPlayedSec": b.MinutesPlayedSec,
	}
}

func derivedPercentages(b domain.PlayerBox) map[string]float64 {
	d := map[string]float64{}
	if b.FGA > 0 {
		d["FG_PCT"] = float64(b.FGM) / float64(b.FGA)
	}
	if b.ThreePA > 0 {
		d["FG3_PCT"] = float64(b.ThreePM) / float64(b.ThreePA)
	}
	if b.FTA > 0 {
		d["FT_PCT"] = float64(b.FTM) / float64(b.FTA)
	}
	return d
}

// normalizeGameState accepts either team-id-keyed maps directly, or
// {home,away}-side-keyed maps which it remaps to {home_team_id,
// away_team_id}. It then validates every player-keyed inner map
// references only canonical pids in the corresponding team's player list.
func normalizeGameState(raw domain.RawGameStateResult, ctx domain.GameContext, teams map[string]domain.GameResultV2Team) (domain.GameResultV2GameState, error) {
	out := domain.GameResultV2GameState{
		TeamFouls: remapSideKeys(raw.TeamFouls, ctx),
	}
	pf, err := remapPlayerKeyedInt(raw.PlayerFouls, ctx)
	if err != nil {
		return out, err
	}
	fat, err := remapPlayerKeyedFloat(raw.Fatigue, ctx)
	if err != nil {
		return out, err
	}
	mins, err := remapPlayerKeyedFloat(raw.MinutesPlayedSec, ctx)
	if err != nil {
		return out, err
	}
	out.PlayerFouls = pf
	out.Fatigue = fat
	out.MinutesPlayedSec = mins

	for tid, m := range out.PlayerFouls {
		if err := requireKnownPlayersInt("player_fouls", tid, m, teams); err != nil {
			return out, err
		}
	}
	for tid, m := range out.Fatigue {
		if err := requireKnownPlayersFloat("fatigue", tid, m, teams); err != nil {
			return out, err
		}
	}
	for tid, m := range out.MinutesPlayedSec {
		if err := requireKnownPlayersFloat("minutes_played_sec", tid, m, teams); err != nil {
			return out, err
		}
	}
	if err := requireNoCrossTeamDuplicatesInt("player_fouls", out.PlayerFouls); err != nil {
		return out, err
	}
	if err := requireNoCrossTeamDuplicatesFloat("fatigue", out.Fatigue); err != nil {
		return out, err
	}
	if err := requireNoCrossTeamDuplicatesFloat("minutes_played_sec", out.MinutesPlayedSec); err != nil {
		return out, err
	}
	return out, nil
}

func remapSideKeys(m map[string]int, ctx domain.GameContext) map[string]int {
	out := map[string]int{}
	if v, ok := m["home"]; ok {
		out[ctx.HomeTeamID] = v
	}
	if v, ok := m["away"]; ok {
		out[ctx.AwayTeamID] = v
	}
	if len(out) == 0 {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func remapPlayerKeyedInt(m map[string]map[string]int, ctx domain.GameContext) (map[string]map[string]int, error) {
	out := map[string]map[string]int{}
	if v, ok := m["home"]; ok {
		out[ctx.HomeTeamID] = v
	}
	if v, ok := m["away"]; ok {
		out[ctx.AwayTeamID] = v
	}
	if len(out) == 0 {
		for k, v := range m {
			out[k] = v
		}
	}
	if len(out) != 2 {
		return nil, domain.NewAdapterError("raw matchengine result invalid: player_fouls must be keyed by exactly the two team ids")
	}
	return out, nil
}

func remapPlayerKeyedFloat(m map[string]map[string]float64, ctx domain.GameContext) (map[string]map[string]float64, error) {
	out := map[string]map[string]float64{}
	if v, ok := m["home"]; ok {
		out[ctx.HomeTeamID] = v
	}
	if v, ok := m["away"]; ok {
		out[ctx.AwayTeamID] = v
	}
	if len(out) == 0 {
		for k, v := range m {
			out[k] = v
		}
	}
	if len(out) != 2 {
		return nil, domain.NewAdapterError("raw matchengine result invalid: expected exactly two team-keyed entries, got %d", len(out))
	}
	return out, nil
}

func knownPlayers(teamID string, teams map[string]domain.GameResultV2Team) (map[string]bool, error) {
	team, ok := teams[teamID]
	if !ok {
		return nil, domain.NewAdapterError("raw matchengine result invalid: game_state references unknown team_id %s", teamID)
	}
	known := map[string]bool{}
	for _, p := range team.Players {
		known[p.PlayerID] = true
	}
	return known, nil
}

func requireKnownPlayersInt(field, teamID string, m map[string]int, teams map[string]domain.GameResultV2Team) error {
	known, err := knownPlayers(teamID, teams)
	if err != nil {
		return err
	}
	for pid := range m {
		if !known[pid] {
			return domain.NewAdapterError("raw matchengine result invalid: %s references pid %s not in team %s's player list", field, pid, teamID)
		}
	}
	return nil
}

func requireKnownPlayersFloat(field, teamID string, m map[string]float64, teams map[string]domain.GameResultV2Team) error {
	known, err := knownPlayers(teamID, teams)
	if err != nil {
		return err
	}
	for pid := range m {
		if !known[pid] {
			return domain.NewAdapterError("raw matchengine result invalid: %s references pid %s not in team %s's player list", field, pid, teamID)
		}
	}
	return nil
}

func requireNoCrossTeamDuplicatesInt(field string, byTeam map[string]map[string]int) error {
	seen := map[string]string{}
	for tid, m := range byTeam {
		for pid := range m {
			if otherTid, ok := seen[pid]; ok && otherTid != tid {
				return domain.NewAdapterError("raw matchengine result invalid: %s has pid %s under both team %s and team %s", field, pid, otherTid, tid)
			}
			seen[pid] = tid
		}
	}
	return nil
}

func requireNoCrossTeamDuplicatesFloat(field string, byTeam map[string]map[string]float64) error {
	seen := map[string]string{}
	for tid, m := range byTeam {
		for pid := range m {
			if otherTid, ok := seen[pid]; ok && otherTid != tid {
				return domain.NewAdapterError("raw matchengine result invalid: %s has pid %s under both team %s and team %s", field, pid, otherTid, tid)
			}
			seen[pid] = tid
		}
	}
	return nil
}
