package game

import "github.com/peterkuimelis/ptcgd/internal/card"

// applyAttackEffects resolves every non-damage-modifier effect on an attack,
// in declared order. Conditions that fail skip the effect silently; the
// attack itself already landed.
func applyAttackEffects(gs *GameState, atkPlayer int, a card.Attack, ctx *CondContext, res *AttackResult) {
	self := gs.Players[atkPlayer]
	opp := gs.Players[gs.Opponent(atkPlayer)]

	for _, e := range a.Effects {
		if e.Type == card.AttackDamageModifier {
			continue // consumed by the damage pipeline
		}
		if !EvalConditions(e.Conditions, ctx) {
			continue
		}
		switch e.Type {
		case card.AttackDiscardEnergy:
			if e.Target == card.TargetSelf {
				if ctx.Self != nil {
					self.DiscardAttachedEnergy(ctx.Self, e.Amount)
				}
			} else if ctx.Opponent != nil {
				opp.DiscardAttachedEnergy(ctx.Opponent, e.Amount)
			}
		case card.AttackStatusCondition:
			if ctx.Opponent != nil && !ctx.Opponent.IsKnockedOut() {
				ctx.Opponent.AddStatus(e.Status, gs.TurnNumber)
				if e.Status == card.StatusPoisoned && e.Amount > 0 {
					ctx.Opponent.PoisonDamage = e.Amount
				}
			}
		case card.AttackHeal:
			if t := attackEffectTarget(e.Target, ctx); t != nil {
				t.Heal(e.Amount)
			}
		case card.AttackPreventDamage:
			if ctx.Self != nil {
				expires := gs.TurnNumber
				if e.Duration == card.DurationNextTurn {
					expires = gs.TurnNumber + 1
				}
				ctx.Self.Preventions = append(ctx.Self.Preventions, Prevention{
					Amount:      e.Amount,
					ExpiresTurn: expires,
				})
			}
		case card.AttackRecoilDamage:
			if ctx.Self != nil {
				ctx.Self.ApplyDamage(e.Amount)
				res.Recoil += e.Amount
			}
		case card.AttackEnergyAcceleration:
			accelerateEnergy(gs, self, ctx.Self, e.Source, e.Count)
		case card.AttackSwitchPokemon:
			switchActiveWithBench(gs, self, e.Selector)
		}
	}
}

// attackEffectTarget maps an effect target to a concrete instance for
// single-target effects.
func attackEffectTarget(t card.EffectTarget, ctx *CondContext) *Instance {
	switch t {
	case card.TargetSelf, card.TargetAnyYours:
		return ctx.Self
	case card.TargetDefending:
		return ctx.Opponent
	default:
		return nil
	}
}

// accelerateEnergy moves up to count energy cards from the given source onto
// target. Deck searches take the first matches from the top; the deck is
// reshuffled afterward.
func accelerateEnergy(gs *GameState, p *PlayerState, target *Instance, src card.EnergySource, count int) int {
	if target == nil {
		return 0
	}
	moved := 0
	take := func(zone []*Instance) ([]*Instance, []*Instance) {
		var taken, rest []*Instance
		for _, c := range zone {
			if moved < count && c.Card.CardType == card.TypeEnergy {
				taken = append(taken, c)
				moved++
			} else {
				rest = append(rest, c)
			}
		}
		return taken, rest
	}

	var taken []*Instance
	switch src {
	case card.SourceDeck:
		taken, p.Deck = take(p.Deck)
	case card.SourceDiscard:
		taken, p.Discard = take(p.Discard)
	case card.SourceHand:
		taken, p.Hand = take(p.Hand)
	}
	for _, e := range taken {
		e.Position = target.Position
		target.Attached = append(target.Attached, e)
	}
	if src == card.SourceDeck && moved > 0 {
		idx := gs.PlayerIndex(p.PlayerID)
		gs.ShuffleDeck(idx)
	}
	return moved
}

// switchActiveWithBench swaps the active Pokemon with a benched one. Random
// selection draws from the match PRNG; player choice takes the lowest
// occupied slot.
func switchActiveWithBench(gs *GameState, p *PlayerState, sel card.Selector) bool {
	bench := p.BenchPokemon()
	if len(bench) == 0 || p.Active == nil {
		return false
	}
	var pick *Instance
	if sel == card.SelectRandom {
		pick = bench[gs.RandIntn(len(bench))]
	} else {
		pick = bench[0]
	}
	return p.SwapActive(pick) == nil
}
