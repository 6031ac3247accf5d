package game

import "github.com/peterkuimelis/ptcgd/internal/card"

// CountTrainerFlips returns the coin flips a trainer card's effects consume.
func CountTrainerFlips(effects []card.TrainerEffect) int {
	n := 0
	for _, e := range effects {
		n += card.CoinFlipsRequired(e.Conditions)
	}
	return n
}

// ApplyTrainerEffects executes a trainer card's effects in declared order.
// target is the player-chosen in-play Pokemon where the effect takes one;
// nil falls back to the player's active. Effects whose conditions fail are
// skipped, the rest still run.
func ApplyTrainerEffects(gs *GameState, player int, effects []card.TrainerEffect, target *Instance, bits *BitReader) {
	self := gs.Players[player]
	opp := gs.Players[gs.Opponent(player)]

	ctx := &CondContext{State: gs, Self: self.Active, Opponent: opp.Active, Bits: bits}

	for _, e := range effects {
		if !EvalConditions(e.Conditions, ctx) {
			continue
		}
		switch e.Type {
		case card.TrainerHeal:
			if t := trainerTarget(e.Target, self, opp, target); t != nil {
				t.Heal(e.Amount)
			}
		case card.TrainerCureStatus:
			if t := trainerTarget(e.Target, self, opp, target); t != nil {
				t.ClearAllStatus()
			}
		case card.TrainerIncreaseDamage:
			if self.Active != nil {
				self.Active.DamageBoost += e.Amount
			}
		case card.TrainerReduceDamage:
			for _, in := range self.InPlay() {
				in.DamageReduction += e.Amount
			}
		case card.TrainerDrawCards:
			for i := 0; i < e.Count; i++ {
				if self.Draw() == nil {
					break
				}
			}
		case card.TrainerSearchDeck:
			moveTopCards(self, e.Count)
			gs.ShuffleDeck(player)
		case card.TrainerShuffleDeck:
			gs.ShuffleDeck(player)
		case card.TrainerDiscardHand:
			for len(self.Hand) > 0 {
				self.DiscardFromHand(self.Hand[0])
			}
		case card.TrainerRetrieveFromDiscard:
			retrieveFromDiscard(self, e.Count)
		case card.TrainerOpponentDraws:
			for i := 0; i < e.Count; i++ {
				if opp.Draw() == nil {
					break
				}
			}
		case card.TrainerSwitchActive:
			if e.Target == card.TargetDefending {
				switchActiveWithBench(gs, opp, e.Selector)
			} else {
				switchActiveWithBench(gs, self, e.Selector)
			}
		case card.TrainerRemoveEnergy:
			if e.Target == card.TargetDefending {
				if opp.Active != nil {
					opp.DiscardAttachedEnergy(opp.Active, e.Count)
				}
			} else if t := trainerTarget(e.Target, self, opp, target); t != nil {
				self.DiscardAttachedEnergy(t, e.Count)
			}
		case card.TrainerTradeCards:
			tradeCards(gs, player, e.Count)
		}
	}
}

// trainerTarget resolves a trainer effect target. ANY_YOURS honors the chosen
// instance when one was supplied.
func trainerTarget(t card.EffectTarget, self, opp *PlayerState, chosen *Instance) *Instance {
	switch t {
	case card.TargetSelf:
		return self.Active
	case card.TargetDefending:
		return opp.Active
	case card.TargetAnyYours, card.TargetBenched:
		if chosen != nil {
			return chosen
		}
		if t == card.TargetBenched {
			bench := self.BenchPokemon()
			if len(bench) > 0 {
				return bench[0]
			}
			return nil
		}
		return self.Active
	default:
		return nil
	}
}

// moveTopCards moves up to n cards from the top of the deck to hand.
func moveTopCards(p *PlayerState, n int) int {
	moved := 0
	for i := 0; i < n; i++ {
		if p.Draw() == nil {
			break
		}
		moved++
	}
	return moved
}

// retrieveFromDiscard moves up to n cards from discard back to hand, most
// recently discarded first.
func retrieveFromDiscard(p *PlayerState, n int) int {
	moved := 0
	for moved < n && len(p.Discard) > 0 {
		last := len(p.Discard) - 1
		c := p.Discard[last]
		p.Discard = p.Discard[:last]
		c.Position = PositionHand
		p.Hand = append(p.Hand, c)
		moved++
	}
	return moved
}

// tradeCards shuffles up to n cards from hand into the deck, then draws the
// same number.
func tradeCards(gs *GameState, player, n int) {
	p := gs.Players[player]
	traded := 0
	for traded < n && len(p.Hand) > 0 {
		c := p.Hand[0]
		p.Hand = p.Hand[1:]
		c.Position = PositionDeck
		p.Deck = append(p.Deck, c)
		traded++
	}
	gs.ShuffleDeck(player)
	for i := 0; i < traded; i++ {
		p.Draw()
	}
}
