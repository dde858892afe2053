// Package shotdiet computes the lineup-driven style vector that biases
// action and outcome sampling, and the defensive role-fit quality
// subsystem that drives shot make probability and pass-quality buckets.
// Grounded on matchengine_v3/shot_diet_data.py's feature/weight tables
// (see internal/config).
package shotdiet

import (
	"sort"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
)

// Style is the cached per-matchup feature vector.
type Style struct {
	Offense map[string]float64 // 17 features, normalized [0,1], baseline 0.5
	Defense map[string]float64 // 6 features, normalized [0,1], baseline 0.5

	PrimaryInitiatorPID   string
	SecondaryInitiatorPID string
}

// ComputeStyle derives the style vector for the given offensive/defensive
// lineups. It never mutates its inputs and is a pure function of
// (offense roster+roles+energy, defense roster+roles+energy).
func ComputeStyle(off, def *domain.Team) *Style {
	s := &Style{
		Offense: make(map[string]float64, len(config.OffensiveFeatures)),
		Defense: make(map[string]float64, len(config.DefensiveFeatures)),
	}
	s.PrimaryInitiatorPID, s.SecondaryInitiatorPID = pickInitiators(off)

	offPlayers := onCourtPlayers(off)
	defPlayers := onCourtPlayers(def)

	for _, feat := range config.OffensiveFeatures {
		weights := config.OffenseFeatureAbilityWeights[feat]
		s.Offense[feat] = clamp01(config.ShotDietBaseline + weightedAbilityDeviation(offPlayers, weights, s))
	}
	for _, feat := range config.DefensiveFeatures {
		weights := config.DefenseFeatureAbilityWeights[feat]
		s.Defense[feat] = clamp01(config.ShotDietBaseline + weightedAbilityDeviation(defPlayers, weights, nil))
	}
	return s
}

func onCourtPlayers(t *domain.Team) []*domain.Player {
	out := make([]*domain.Player, 0, 5)
	for _, pid := range t.OnCourt {
		if p, ok := t.ByID[pid]; ok {
			out = append(out, p)
		}
	}
	return out
}

// pickInitiators selects the primary/secondary ball-handler from roles,
// falling back to the two highest on-ball composite scorers.
func pickInitiators(off *domain.Team) (primary, secondary string) {
	if pid, ok := off.Roles[domain.RoleInitiatorPrimary]; ok {
		primary = pid
	}
	if pid, ok := off.Roles[domain.RoleInitiatorSecondary]; ok {
		secondary = pid
	}
	if primary != "" && secondary != "" {
		return
	}
	type scored struct {
		pid   string
		score float64
	}
	var ranked []scored
	for _, pid := range off.OnCourt {
		p := off.ByID[pid]
		if p == nil {
			continue
		}
		onball := p.Derived["PNR_READ"] + p.Derived["DRIVE_CREATE"] + p.Derived["HANDLE_SAFE"]
		ranked = append(ranked, scored{pid, onball})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if primary == "" && len(ranked) > 0 {
		primary = ranked[0].pid
	}
	if secondary == "" && len(ranked) > 1 {
		secondary = ranked[1].pid
	}
	return
}

// weightedAbilityDeviation averages (ability-50)/50 over the lineup weighted
// by per-ability coefficients, optionally up-weighting the primary/
// secondary initiator per the usage-weighting knobs (usage clamps applied
// to the initiator's own share of the lineup average).
func weightedAbilityDeviation(players []*domain.Player, abilityWeights map[string]float64, style *Style) float64 {
	if len(abilityWeights) == 0 || len(players) == 0 {
		return 0
	}
	var sum, totalWeight float64
	for _, p := range players {
		usage := 1.0 / float64(len(players))
		if style != nil {
			if p.PlayerID == style.PrimaryInitiatorPID {
				usage = clampF(usage*2.2, config.UsageMinPrimary, config.UsageMaxPrimary)
			} else if p.PlayerID == style.SecondaryInitiatorPID {
				usage = usage * 1.4
			}
		}
		for ability, w := range abilityWeights {
			dev := (p.Derived[ability] - 50.0) / 50.0
			sum += dev * w * usage
			totalWeight += w * usage
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return sum / totalWeight * config.TauUsage * 3.0
}

func clamp01(v float64) float64 { return clampF(v, 0, 1) }

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
