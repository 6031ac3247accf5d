package game

import (
	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/log"
)

// CountAbilityFlips returns the coin flips an ability's activation consumes:
// the ability's own conditions plus each effect's conditions.
func CountAbilityFlips(a *card.Ability) int {
	n := card.CoinFlipsRequired(a.Conditions)
	for _, e := range a.Effects {
		n += card.CoinFlipsRequired(e.Conditions)
	}
	return n
}

// CanUseAbility checks an activated ability's usage limits for this owner.
func CanUseAbility(owner *Instance, a *card.Ability) bool {
	if a == nil || a.Kind != card.AbilityActivated {
		return false
	}
	switch a.UsageLimit {
	case card.UsageOncePerTurn:
		return !owner.AbilityUsedThisTurn
	case card.UsageOncePerGame:
		return !owner.AbilityUsedThisGame
	default:
		return true
	}
}

// ApplyAbility resolves an activated ability on owner. The ability's own
// conditions gate the whole activation; each effect's conditions gate that
// effect. Usage flags are marked even when gated flips fail, the activation
// was still spent.
func ApplyAbility(gs *GameState, player int, owner *Instance, a *card.Ability, target *Instance, bits *BitReader) bool {
	self := gs.Players[player]
	opp := gs.Players[gs.Opponent(player)]

	owner.AbilityUsedThisTurn = true
	owner.AbilityUsedThisGame = true

	ctx := &CondContext{State: gs, Self: owner, Opponent: opp.Active, Bits: bits}
	if !EvalConditions(a.Conditions, ctx) {
		return false
	}
	applyAbilityEffects(gs, player, self, opp, owner, a, target, ctx)
	return true
}

// applyAbilityEffects runs an ability's effect list. Each effect's
// conditions gate that effect only.
func applyAbilityEffects(gs *GameState, player int, self, opp *PlayerState, owner *Instance, a *card.Ability, target *Instance, ctx *CondContext) {
	for _, e := range a.Effects {
		if !EvalConditions(e.Conditions, ctx) {
			continue
		}
		switch e.Type {
		case card.AbilityHeal:
			if t := abilityTarget(e.Target, owner, self, target); t != nil {
				t.Heal(e.Amount)
			}
		case card.AbilityPreventDamage:
			expires := gs.TurnNumber
			if e.Duration == card.DurationNextTurn {
				expires = gs.TurnNumber + 1
			}
			if t := abilityTarget(e.Target, owner, self, target); t != nil {
				t.Preventions = append(t.Preventions, Prevention{Amount: e.Amount, ExpiresTurn: expires})
			}
		case card.AbilityStatusCondition:
			if opp.Active != nil {
				opp.Active.AddStatus(e.Status, gs.TurnNumber)
			}
		case card.AbilityEnergyAcceleration:
			t := abilityTarget(e.Target, owner, self, target)
			accelerateEnergy(gs, self, t, e.Source, e.Count)
		case card.AbilitySwitchPokemon:
			switchActiveWithBench(gs, self, e.Selector)
		case card.AbilityDrawCards:
			for i := 0; i < e.Count; i++ {
				if self.Draw() == nil {
					break
				}
			}
		case card.AbilitySearchDeck:
			moveTopCards(self, e.Count)
			gs.ShuffleDeck(player)
		case card.AbilityBoostAttack:
			if t := abilityTarget(e.Target, owner, self, target); t != nil {
				t.DamageBoost += e.Amount
			}
		case card.AbilityBoostHP:
			if t := abilityTarget(e.Target, owner, self, target); t != nil {
				t.MaxHP += e.Amount
				t.CurrentHP += e.Amount
			}
		case card.AbilityReduceDamage:
			if t := abilityTarget(e.Target, owner, self, target); t != nil {
				t.DamageReduction += e.Amount
			}
		case card.AbilityDiscardFromHand:
			for i := 0; i < e.Count && len(self.Hand) > 0; i++ {
				self.DiscardFromHand(self.Hand[0])
			}
		case card.AbilityAttachFromDiscard:
			t := abilityTarget(e.Target, owner, self, target)
			accelerateEnergy(gs, self, t, card.SourceDiscard, e.Count)
		case card.AbilityRetrieveFromDiscard:
			retrieveFromDiscard(self, e.Count)
		}
	}
}

// FireEndOfTurnAbilities runs triggered END_OF_TURN abilities for every
// in-play Pokemon on one side, active first. Once-per-game limits hold
// across turns; a derived history entry records each firing.
func FireEndOfTurnAbilities(gs *GameState, player int) {
	self := gs.Players[player]
	opp := gs.Players[gs.Opponent(player)]
	for _, in := range self.InPlay() {
		a := in.Card.Ability
		if a == nil || a.Kind != card.AbilityTriggered || a.Trigger != card.TriggerEndOfTurn {
			continue
		}
		if a.UsageLimit == card.UsageOncePerGame {
			if in.AbilityUsedThisGame {
				continue
			}
			in.AbilityUsedThisGame = true
		}
		bits := NewBitReader(gs.FlipCoins(CountAbilityFlips(a)))
		ctx := &CondContext{State: gs, Self: in, Opponent: opp.Active, Bits: bits}
		fired := EvalConditions(a.Conditions, ctx)
		if fired {
			applyAbilityEffects(gs, player, self, opp, in, a, nil, ctx)
		}
		gs.Append(log.NewDerived(self.PlayerID, log.DerivedAbilityTriggered, map[string]any{
			"instanceId": in.InstanceID,
			"ability":    a.Name,
			"fired":      fired,
		}))
	}
}

// PassiveModifiers returns the attack boost and damage reduction a passive
// ability contributes while its Pokemon is in play. Only unconditional
// effects count; a passive has no activation to flip coins for.
func PassiveModifiers(in *Instance) (boost, reduction int) {
	if in == nil || in.Card.Ability == nil || in.Card.Ability.Kind != card.AbilityPassive {
		return 0, 0
	}
	for _, e := range in.Card.Ability.Effects {
		if len(e.Conditions) > 0 {
			continue
		}
		switch e.Type {
		case card.AbilityBoostAttack:
			boost += e.Amount
		case card.AbilityReduceDamage:
			reduction += e.Amount
		}
	}
	return boost, reduction
}

// abilityTarget resolves an ability effect target on the owner's side.
func abilityTarget(t card.EffectTarget, owner *Instance, self *PlayerState, chosen *Instance) *Instance {
	switch t {
	case card.TargetSelf:
		return owner
	case card.TargetAnyYours:
		if chosen != nil {
			return chosen
		}
		return self.Active
	case card.TargetBenched:
		if chosen != nil {
			return chosen
		}
		bench := self.BenchPokemon()
		if len(bench) > 0 {
			return bench[0]
		}
		return nil
	default:
		return nil
	}
}
