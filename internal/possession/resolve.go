package possession

import (
	"github.com/nba-gm-sim/matchengine/internal/config"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/participants"
)

// resolveOutcome dispatches an outcome to its resolution branch.
// It returns (result, terminal, nextLoopPosStart); when terminal
// is false the caller should continue the possession loop using
// nextLoopPosStart as the meaning of "what happens next", except for
// StartAfterDRB, which always ends the offense's possession.
func resolveOutcome(off, def *domain.Team, gs *domain.GameState, cfg *domain.GameConfig, ctx *Context, action, outcome string) (Result, bool, string) {
	switch {
	case isShotOutcome(outcome):
		return resolveShot(off, def, gs, cfg, ctx, action, outcome)
	case isPassOutcome(outcome):
		return resolvePass(off, def, gs, cfg, ctx, action, outcome)
	case outcome == config.OutTOBad || outcome == config.OutTOStrip:
		return resolveTurnover(off, def, gs, ctx)
	case outcome == config.OutFoulRim || outcome == config.OutFoulMid || outcome == config.OutFoulPost:
		return resolveFoulDraw(off, def, gs, cfg, ctx, outcome)
	case outcome == config.OutFoulReach:
		return resolveFoulReach(off, def, gs, cfg, ctx)
	case outcome == config.OutResetGen:
		gs.ShotClockSec -= 1.5
		gs.ClockSec -= 1.5
		return Result{}, false, StartQ // loop with a fresh action sample, same dead-ball status
	}
	// unrecognized outcome: treat as a neutral reset rather than propagate
	// an error out of the possession loop.
	ctx.Errors = append(ctx.Errors, "unknown outcome "+outcome)
	return Result{}, false, StartQ
}

func isPassOutcome(outcome string) bool {
	switch outcome {
	case config.OutPassKick, config.OutPassSkip, config.OutPassExtra, config.OutPassShort:
		return true
	}
	return false
}

func resolveShot(off, def *domain.Team, gs *domain.GameState, cfg *domain.GameConfig, ctx *Context, action, outcome string) (Result, bool, string) {
	shooter := selectShotParticipant(off, action, outcome, ctx)
	if shooter == nil {
		return Result{}, false, StartQ
	}
	pMake := shotMakeProbability(off, def, shooter, outcome, cfg, ctx)
	made := ctx.RNG.Float64() < pMake

	points := shotPoints(outcome)
	recordShotAttempt(off, shooter, outcome, points)
	ctx.CarryLogitDelta = 0 // consumed

	if made {
		recordShotMade(off, shooter, outcome, points)
		return Result{EndReason: EndScore, PosStartNext: StartAfterScore}, true, ""
	}

	// live rebound, orb_reset variant
	orb := sampleRebound(off, def, ctx)
	if orb {
		gs.ShotClockSec = cfg.OrbResetShotClock
		off.Totals.ORB++
		return Result{HadORB: true}, false, StartQ
	}
	def.Totals.DRB++
	return Result{EndReason: EndDRB, PosStartNext: StartAfterDRB}, false, StartAfterDRB
}

// selectShotParticipant credits a rim finish off a PnR or horns action to the
// screener/roll man rather than the ball handler, using the scheme's
// role-priority order; every other action/outcome pair goes through the
// usual ability-weighted shooter draw.
func selectShotParticipant(off *domain.Team, action, outcome string, ctx *Context) *domain.Player {
	if outcome == config.OutShotRim && (action == config.ActionPnR || action == config.ActionHornsSet) {
		if screener := participants.SelectScreener(ctx.RNG, off, off.Tactics.OffenseScheme); screener != nil {
			return screener
		}
	}
	return participants.SelectShooter(ctx.RNG, off, action, shotAbilityFor(outcome))
}

func shotAbilityFor(outcome string) string {
	profile := config.OutcomeAbilityProfileOffense[outcome]
	best, bestW := "", -1.0
	for k, w := range profile {
		if w > bestW {
			best, bestW = k, w
		}
	}
	if best == "" {
		return "SHOT_MID"
	}
	return best
}

func shotPoints(outcome string) int {
	switch outcome {
	case config.OutShot3CS, config.OutShot3Off:
		return 3
	default:
		return 2
	}
}

func recordShotAttempt(off *domain.Team, shooter *domain.Player, outcome string, points int) {
	off.Totals.FGA++
	shooter.Box.FGA++
	if points == 3 {
		off.Totals.ThreePA++
		shooter.Box.ThreePA++
	}
	if outcome == config.OutShotPost {
		off.Totals.PITP++
		shooter.Box.PITP++
	}
	off.OutcomeHist[outcome]++
}

func recordShotMade(off *domain.Team, shooter *domain.Player, outcome string, points int) {
	off.Totals.FGM++
	shooter.Box.FGM++
	off.Totals.PTS += points
	shooter.Box.PTS += points
	if points == 3 {
		off.Totals.ThreePM++
		shooter.Box.ThreePM++
	}
}

func sampleRebound(off, def *domain.Team, ctx *Context) bool {
	offReb := participants.SelectRebounder(ctx.RNG, off, "REBOUND_OFF")
	defReb := participants.SelectRebounder(ctx.RNG, def, "REBOUND_DEF")
	offScore, defScore := 30.0, 70.0
	if offReb != nil {
		offScore = offReb.Derived["REBOUND_OFF"]
	}
	if defReb != nil {
		defScore = defReb.Derived["REBOUND_DEF"]
	}
	pORB := offScore / (offScore + defScore*1.8)
	return ctx.RNG.Float64() < pORB
}

func resolveTurnover(off, def *domain.Team, gs *domain.GameState, ctx *Context) (Result, bool, string) {
	off.Totals.TOV++
	if p := off.ByID[off.OnCourt[ctx.RNG.Intn(5)]]; p != nil {
		p.Box.TOV++
	}
	ctx.CarryLogitDelta = 0
	return Result{EndReason: EndTurnover, PosStartNext: StartAfterTOVDead}, true, ""
}

func resolveFoulReach(off, def *domain.Team, gs *domain.GameState, cfg *domain.GameConfig, ctx *Context) (Result, bool, string) {
	fouler := participants.SelectFouler(ctx.RNG, def, gs.PlayerFouls[def.TeamID], cfg.FoulOutLimit)
	inBonus := gs.TeamFouls[def.TeamID] >= cfg.BonusFoulCount
	chargeFoul(def, fouler, gs, cfg)

	if inBonus && cfg.BonusReroutesToFT {
		return resolveFreeThrows(off, def, gs, cfg, ctx, 2)
	}
	gs.ShotClockSec = maxF(gs.ShotClockSec, cfg.FoulResetShotClock)
	return Result{}, false, StartAfterFoul
}

func resolveFoulDraw(off, def *domain.Team, gs *domain.GameState, cfg *domain.GameConfig, ctx *Context, outcome string) (Result, bool, string) {
	shooter := participants.SelectShooter(ctx.RNG, off, "Drive", shotAbilityFor(mapFoulToShot(outcome)))
	fouler := participants.SelectFouler(ctx.RNG, def, gs.PlayerFouls[def.TeamID], cfg.FoulOutLimit)
	chargeFoul(def, fouler, gs, cfg)

	contactBucket := []float64{cfg.ContactPenaltyHard, cfg.ContactPenaltyNorm, cfg.ContactPenaltySoft}[ctx.RNG.Intn(3)]
	shotOutcome := mapFoulToShot(outcome)
	pMake := shotMakeProbability(off, def, shooter, shotOutcome, cfg, ctx) * (1.0 - contactBucket)
	made := ctx.RNG.Float64() < pMake
	points := shotPoints(shotOutcome)
	recordShotAttempt(off, shooter, shotOutcome, points)

	if made {
		recordShotMade(off, shooter, shotOutcome, points)
		return resolveFreeThrows(off, def, gs, cfg, ctx, 1)
	}
	fts := 2
	if points == 3 {
		fts = 3
	}
	return resolveFreeThrows(off, def, gs, cfg, ctx, fts)
}

func mapFoulToShot(outcome string) string {
	switch outcome {
	case config.OutFoulRim:
		return config.OutShotRim
	case config.OutFoulPost:
		return config.OutShotPost
	default:
		return config.OutShotMid
	}
}

func chargeFoul(def *domain.Team, fouler *domain.Player, gs *domain.GameState, cfg *domain.GameConfig) {
	if fouler == nil {
		return
	}
	gs.TeamFouls[def.TeamID]++
	gs.PlayerFouls[def.TeamID][fouler.PlayerID]++
	fouler.Box.PF++
	if gs.PlayerFouls[def.TeamID][fouler.PlayerID] >= cfg.FoulOutLimit {
		fouler.Energy = 0
	}
}

// resolveFreeThrows shoots n free throws. On the last make, ends the
// possession SCORE; on a last-FT miss, runs a live rebound between off and
// def and resets the shot clock on an offensive board.
func resolveFreeThrows(off, def *domain.Team, gs *domain.GameState, cfg *domain.GameConfig, ctx *Context, n int) (Result, bool, string) {
	shooter := off.ByID[off.OnCourt[ctx.RNG.Intn(5)]]
	ftPct := 0.75
	if shooter != nil {
		ftPct = shooter.Derived["FT_SHOOT"] / 100.0
	}
	for i := 0; i < n; i++ {
		off.Totals.FTA++
		if shooter != nil {
			shooter.Box.FTA++
		}
		made := ctx.RNG.Float64() < ftPct
		if made {
			off.Totals.FTM++
			off.Totals.PTS++
			if shooter != nil {
				shooter.Box.FTM++
				shooter.Box.PTS++
			}
		}
		if i == n-1 {
			if made {
				return Result{EndReason: EndScore, PosStartNext: StartAfterScore}, true, ""
			}
			if sampleRebound(off, def, ctx) {
				gs.ShotClockSec = cfg.FoulResetShotClock
				off.Totals.ORB++
				return Result{HadORB: true}, false, StartQ
			}
			def.Totals.DRB++
			return Result{EndReason: EndDRB, PosStartNext: StartAfterDRB}, false, StartAfterDRB
		}
	}
	return Result{EndReason: EndScore, PosStartNext: StartAfterScore}, true, ""
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
