// Package roles assigns the twelve canonical offensive roles to a team's
// on-court players, either from caller-supplied overrides or by ranking
// derived-ability composites: ball-handler ranks on PnR_READ+DRIVE_CREATE+
// PASS_CREATE+HANDLE_SAFE, screener on PHYSICAL+SEAL_POWER+SHORTROLL_PLAY.
package roles

import (
	"sort"

	"github.com/nba-gm-sim/matchengine/internal/domain"
)

// composite is a named combination of derived abilities used to rank
// candidates for a role.
type composite struct {
	role  string
	terms []string
}

var composites = []composite{
	{domain.RoleInitiatorPrimary, []string{"PNR_READ", "DRIVE_CREATE", "PASS_CREATE", "HANDLE_SAFE"}},
	{domain.RoleInitiatorSecondary, []string{"PNR_READ", "PASS_CREATE", "HANDLE_SAFE"}},
	{domain.RoleTransitionHandler, []string{"TRANSITION_PUSH", "FIRST_STEP"}},
	{domain.RoleShotCreator, []string{"SHOT_3_OFF_DRIBBLE", "DRIVE_CREATE", "SHOT_MID"}},
	{domain.RoleRimAttacker, []string{"DRIVE_CREATE", "FIN_RIM", "FIN_CONTACT"}},
	{domain.RoleSpacerCatchShoot, []string{"SHOT_3_CS"}},
	{domain.RoleSpacerMovement, []string{"SHOT_3_CS", "OFFBALL_MOVEMENT"}},
	{domain.RoleConnectorPlaymaker, []string{"PASS_SAFETY", "PASS_CREATE", "OFFBALL_MOVEMENT"}},
	{domain.RoleRollerFinisher, []string{"PNR_FINISH_ROLL", "FIN_RIM", "SEAL_POWER"}},
	{domain.RoleShortRollPlaymaker, []string{"SHORTROLL_PLAY", "PASS_CREATE"}},
	{domain.RolePopSpacerBig, []string{"SHOT_3_CS", "SHOT_MID", "PHYSICAL"}},
	{domain.RolePostHub, []string{"POST_SCORE", "POST_PASS", "SEAL_POWER"}},
}

func compositeScore(p *domain.Player, terms []string) float64 {
	var sum float64
	for _, t := range terms {
		sum += p.Derived[t]
	}
	return sum / float64(len(terms))
}

// AssignRoles fills t.Roles for the five on-court players. Manual overrides
// supplied via overrides (role -> pid) take precedence; remaining roles are
// filled by greedily assigning the highest-scoring unclaimed player to each
// composite in table order.
func AssignRoles(t *domain.Team, onCourtPIDs [5]string, overrides map[string]string) {
	if t.Roles == nil {
		t.Roles = map[string]string{}
	}
	assigned := map[string]bool{} // pid already holding a role
	for role, pid := range overrides {
		t.Roles[role] = pid
		assigned[pid] = true
	}

	candidates := make([]*domain.Player, 0, 5)
	for _, pid := range onCourtPIDs {
		if p, ok := t.ByID[pid]; ok {
			candidates = append(candidates, p)
		}
	}

	for _, c := range composites {
		if _, already := t.Roles[c.role]; already {
			continue
		}
		best := pickBest(candidates, assigned, c.terms)
		if best != nil {
			t.Roles[c.role] = best.PlayerID
			assigned[best.PlayerID] = true
		}
	}
}

func pickBest(candidates []*domain.Player, assigned map[string]bool, terms []string) *domain.Player {
	type scored struct {
		p     *domain.Player
		score float64
	}
	var pool []scored
	for _, p := range candidates {
		if assigned[p.PlayerID] {
			continue
		}
		pool = append(pool, scored{p, compositeScore(p, terms)})
	}
	if len(pool) == 0 {
		// every on-court player already holds a role; allow reuse so every
		// role still resolves to a pid.
		for _, p := range candidates {
			pool = append(pool, scored{p, compositeScore(p, terms)})
		}
	}
	if len(pool) == 0 {
		return nil
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].score > pool[j].score })
	return pool[0].p
}

// EnforceInitiatorPrimaryConstraint implements the best-effort
// starting-lineup constraint: if some roster player is assigned
// Initiator_Primary, the starting five must contain exactly one.
func EnforceInitiatorPrimaryConstraint(t *domain.Team, onCourt *[5]string) {
	primaryPID, hasPrimary := t.Roles[domain.RoleInitiatorPrimary]
	if !hasPrimary {
		return
	}
	onCourtSet := map[string]bool{}
	for _, pid := range onCourt {
		onCourtSet[pid] = true
	}
	if onCourtSet[primaryPID] {
		return // already satisfied
	}
	// swap the bench-primary in for whichever starter has the lowest
	// rotation-minutes target, preserving the rest of the lineup.
	worstIdx, worstTarget := -1, -1.0
	for i, pid := range onCourt {
		target := t.RotationTargetSec[pid]
		if worstIdx == -1 || target < worstTarget {
			worstIdx, worstTarget = i, target
		}
	}
	if worstIdx >= 0 {
		onCourt[worstIdx] = primaryPID
	}
}
