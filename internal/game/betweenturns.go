package game

import (
	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/log"
)

// BetweenTurnsResult reports what between-turns processing did, so the
// caller can run knockout handling afterward.
type BetweenTurnsResult struct {
	KnockedOut []knockoutRef
}

type knockoutRef struct {
	Player   int
	Instance *Instance
}

// ProcessBetweenTurns runs the end-of-turn sequence after the turn player
// passes: triggered end-of-turn abilities, then status ticks on every
// in-play Pokemon (poison, then burn with its coin flip, then wake checks,
// then paralysis expiry), prevention expiry, flag resets for the incoming
// player, then the turn swap. Derived history entries record every tick.
func ProcessBetweenTurns(gs *GameState) BetweenTurnsResult {
	var res BetweenTurnsResult

	// The outgoing player's side ticks first, then the incoming player's;
	// within a side, active first, then the bench in slot order.
	order := []int{gs.CurrentPlayer, gs.Opponent(gs.CurrentPlayer)}
	for _, pi := range order {
		FireEndOfTurnAbilities(gs, pi)
	}
	for _, pi := range order {
		p := gs.Players[pi]
		for _, in := range p.InPlay() {
			tickStatus(gs, pi, in)
			if in.IsKnockedOut() {
				res.KnockedOut = append(res.KnockedOut, knockoutRef{Player: pi, Instance: in})
			}
		}
	}

	next := gs.Opponent(gs.CurrentPlayer)
	gs.CurrentPlayer = next
	gs.TurnNumber++
	gs.Phase = PhaseDraw

	incoming := gs.Players[next]
	incoming.ResetTurnFlags()
	for _, in := range incoming.InPlay() {
		in.ExpirePreventions(gs.TurnNumber)
		// Paralysis clears at the start of the afflicted player's next turn.
		if in.HasStatus(card.StatusParalyzed) && in.ParalysisClearsAtTurn <= gs.TurnNumber {
			in.ClearStatus(card.StatusParalyzed)
			gs.Append(log.NewDerived(incoming.PlayerID, log.DerivedParalysisCleared, map[string]any{
				"instanceId": in.InstanceID,
			}))
		}
	}

	gs.Append(log.NewDerived(incoming.PlayerID, log.DerivedTurnStart, map[string]any{
		"turnNumber": gs.TurnNumber,
	}))
	return res
}

// tickStatus applies poison, burn, and wake checks to one in-play Pokemon.
func tickStatus(gs *GameState, player int, in *Instance) {
	p := gs.Players[player]

	if in.HasStatus(card.StatusPoisoned) {
		in.ApplyDamage(in.PoisonDamage)
		gs.Append(log.NewDerived(p.PlayerID, log.DerivedPoisonDamage, map[string]any{
			"instanceId": in.InstanceID,
			"damage":     in.PoisonDamage,
		}))
	}
	if in.HasStatus(card.StatusBurned) && !in.IsKnockedOut() {
		in.ApplyDamage(BurnDamage)
		cured := gs.FlipCoin()
		if cured {
			in.ClearStatus(card.StatusBurned)
		}
		gs.Append(log.NewDerived(p.PlayerID, log.DerivedBurnDamage, map[string]any{
			"instanceId": in.InstanceID,
			"damage":     BurnDamage,
			"cured":      cured,
		}))
	}
	if in.HasStatus(card.StatusAsleep) && !in.IsKnockedOut() {
		woke := gs.FlipCoin()
		if woke {
			in.ClearStatus(card.StatusAsleep)
		}
		gs.Append(log.NewDerived(p.PlayerID, log.DerivedWakeCheck, map[string]any{
			"instanceId": in.InstanceID,
			"woke":       woke,
		}))
	}
}
