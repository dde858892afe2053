// Package participants implements role-aware selection of the player who
// executes a given outcome: shooter, passer, screener, rebounder, fouler.
// Participant selection is a small weighted-random draw over the on-court
// five, biased by role and derived ability relevant to the action in play.
package participants

import (
	"math/rand"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
)

// actionPrimaryRole maps a base action to the role most likely to execute
// it; used as the seed weight before ability-based adjustment.
var actionPrimaryRole = map[string]string{
	"PnR": domain.RoleInitiatorPrimary, "Drive": domain.RoleRimAttacker,
	"DHO": domain.RoleInitiatorSecondary, "PostUp": domain.RolePostHub,
	"HornsSet": domain.RoleShortRollPlaymaker, "TransitionEarly": domain.RoleTransitionHandler,
}

// SelectShooter picks the on-court offensive player who takes a shot for
// the given base action and shot-outcome kind, weighted by role match and
// the relevant shot ability.
func SelectShooter(rng *rand.Rand, off *domain.Team, action, shotAbility string) *domain.Player {
	weights := make(map[string]float64, 5)
	for _, pid := range off.OnCourt {
		p := off.ByID[pid]
		if p == nil {
			continue
		}
		w := 1.0 + p.Derived[shotAbility]/25.0
		if role, ok := actionPrimaryRole[action]; ok && off.Roles[role] == pid {
			w *= 1.8
		}
		weights[pid] = w
	}
	return weightedPick(off, weights, rng)
}

// SelectPasser picks the player who initiates a pass outcome; usually the
// same participant who would have shot.
func SelectPasser(rng *rand.Rand, off *domain.Team, action string) *domain.Player {
	weights := make(map[string]float64, 5)
	for _, pid := range off.OnCourt {
		p := off.ByID[pid]
		if p == nil {
			continue
		}
		w := 1.0 + p.Derived["PASS_CREATE"]/30.0
		if role, ok := actionPrimaryRole[action]; ok && off.Roles[role] == pid {
			w *= 1.6
		}
		weights[pid] = w
	}
	return weightedPick(off, weights, rng)
}

// SelectReceiver picks the catch-and-shoot / cut beneficiary of a
// completed pass, biased toward spacing/movement roles.
func SelectReceiver(rng *rand.Rand, off *domain.Team, excluding string) *domain.Player {
	weights := make(map[string]float64, 5)
	for _, pid := range off.OnCourt {
		if pid == excluding {
			continue
		}
		p := off.ByID[pid]
		if p == nil {
			continue
		}
		w := 1.0 + p.Derived["SHOT_3_CS"]/30.0 + p.Derived["OFFBALL_MOVEMENT"]/40.0
		weights[pid] = w
	}
	return weightedPick(off, weights, rng)
}

// SelectAssister returns the passer on a made shot (credited an assist),
// nil if the shot was unassisted (e.g. isolation drive).
func SelectAssister(passer *domain.Player) *domain.Player { return passer }

// SelectRebounder picks the rebounder for a live miss, biased by
// REBOUND_OFF or REBOUND_DEF depending on side. It applies no side bias of
// its own; which team secures the miss is decided by the caller.
func SelectRebounder(rng *rand.Rand, team *domain.Team, ability string) *domain.Player {
	weights := make(map[string]float64, 5)
	for _, pid := range team.OnCourt {
		p := team.ByID[pid]
		if p == nil {
			continue
		}
		weights[pid] = 1.0 + p.Derived[ability]/20.0
	}
	return weightedPick(team, weights, rng)
}

// SelectFouler picks a defender to be charged with a foul, excluding any
// player already at or above the foul-out limit.
func SelectFouler(rng *rand.Rand, def *domain.Team, fouls map[string]int, foulOutLimit int) *domain.Player {
	weights := make(map[string]float64, 5)
	for _, pid := range def.OnCourt {
		if fouls[pid] >= foulOutLimit {
			continue
		}
		p := def.ByID[pid]
		if p == nil {
			continue
		}
		weights[pid] = 1.0 + p.Derived["DEF_POA"]/40.0
	}
	return weightedPick(def, weights, rng)
}

// SelectScreener picks the screen-setter/roll participant for a pick-and-roll
// or horns action. Unlike the other selectors here, this is role-priority
// ordered rather than weighted random: the scheme names an ordered list of
// roles (see config.ScreenerRolePriority) and the first one assigned to an
// on-court player wins. Falls back to a PNR_FINISH_ROLL-weighted draw over
// the on-court five if none of the priority roles are on the floor.
func SelectScreener(rng *rand.Rand, off *domain.Team, scheme string) *domain.Player {
	for _, role := range config.ScreenerRolePriority[scheme] {
		pid, ok := off.Roles[role]
		if !ok {
			continue
		}
		if p := off.ByID[pid]; p != nil && isOnCourt(off, pid) {
			return p
		}
	}
	weights := make(map[string]float64, 5)
	for _, pid := range off.OnCourt {
		p := off.ByID[pid]
		if p == nil {
			continue
		}
		weights[pid] = 1.0 + p.Derived["PNR_FINISH_ROLL"]/30.0
	}
	return weightedPick(off, weights, rng)
}

func isOnCourt(team *domain.Team, pid string) bool {
	for _, onCourtPID := range team.OnCourt {
		if onCourtPID == pid {
			return true
		}
	}
	return false
}

func weightedPick(team *domain.Team, weights map[string]float64, rng *rand.Rand) *domain.Player {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		// fall back to uniform over the on-court five
		idx := rng.Intn(5)
		return team.ByID[team.OnCourt[idx]]
	}
	r := rng.Float64() * total
	for _, pid := range team.OnCourt {
		w, ok := weights[pid]
		if !ok {
			continue
		}
		if r < w {
			return team.ByID[pid]
		}
		r -= w
	}
	// floating-point fallthrough
	for _, pid := range team.OnCourt {
		if p, ok := team.ByID[pid]; ok && weights[pid] > 0 {
			return p
		}
	}
	return nil
}
