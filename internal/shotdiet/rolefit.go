package shotdiet

import (
	"math"

	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
)

// RoleFitAssignment maps defensive role name -> assigned player_id for one
// lineup/scheme combination.
type RoleFitAssignment map[string]string

// BestRoleFit brute-forces all 5! permutations of the on-court five over
// the defensive scheme's five roles and returns the assignment maximizing
// total fit score. A scheme that lists a role name twice keeps only the
// later player under that name in the returned map. 120 permutations, well within the "tractable" bound noted in the
// spec's design notes.
func BestRoleFit(def *domain.Team) RoleFitAssignment {
	roleNames, ok := config.DefenseRolesByScheme[def.Tactics.DefenseScheme]
	if !ok {
		roleNames = config.DefenseRolesByScheme[config.DefSchemeDrop]
	}
	pids := def.OnCourt[:]

	best := RoleFitAssignment{}
	bestScore := math.Inf(-1)

	permute(pids, func(perm []string) {
		score := 0.0
		assignment := make(RoleFitAssignment, len(roleNames))
		for i, role := range roleNames {
			if i >= len(perm) {
				break
			}
			pid := perm[i]
			p := def.ByID[pid]
			if p == nil {
				continue
			}
			assignment[role] = pid
			score += fitScore(p, role)
		}
		if score > bestScore {
			bestScore = score
			best = assignment
		}
	})
	return best
}

func fitScore(p *domain.Player, role string) float64 {
	weights := config.DefenseRoleProfile[role]
	var sum float64
	for ability, w := range weights {
		sum += p.Derived[ability] * w
	}
	return sum
}

// permute calls fn once per permutation of items (in place, non-recursive
// allocation-light Heap's algorithm).
func permute(items []string, fn func([]string)) {
	n := len(items)
	buf := make([]string, n)
	copy(buf, items)
	c := make([]int, n)
	fn(append([]string(nil), buf...))
	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				buf[0], buf[i] = buf[i], buf[0]
			} else {
				buf[c[i]], buf[i] = buf[i], buf[c[i]]
			}
			fn(append([]string(nil), buf...))
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
}

// QualityScore scores a shot or pass against the best-fit defensive
// assignment, returning a value in roughly [-2.5, +2.5]. Higher defensive
// fit lowers the score (worse for the offense).
func QualityScore(assignment RoleFitAssignment, def *domain.Team, profileWeights map[string]float64) float64 {
	var best float64 = math.Inf(-1)
	for role, pid := range assignment {
		p := def.ByID[pid]
		if p == nil {
			continue
		}
		roleProfile := config.DefenseRoleProfile[role]
		var fit float64
		for ability, rw := range roleProfile {
			if pw, ok := profileWeights[ability]; ok {
				fit += p.Derived[ability] * rw * pw
			}
		}
		if fit > best {
			best = fit
		}
	}
	if best == math.Inf(-1) {
		return 0
	}
	// map a roughly [0,100]-scaled fit onto [-2.5,2.5], centered on 50.
	return clampF((best-50.0)/20.0, -2.5, 2.5)
}
