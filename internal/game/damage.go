package game

import "github.com/peterkuimelis/ptcgd/internal/card"

// CountAttackFlips returns how many coin flips resolving this attack will
// consume: preconditions first, then a multiplicative damage flip, then
// effect conditions. Resolution consumes damage-modifier effect bits before
// the remaining effects, but the total always matches this count.
func CountAttackFlips(a card.Attack) int {
	n := card.CoinFlipsRequired(a.Preconditions)
	if expr, err := card.ParseDamageExpr(a.Damage); err == nil && expr.Kind == card.DamageMultiply {
		n++
	}
	for _, e := range a.Effects {
		n += card.CoinFlipsRequired(e.Conditions)
	}
	return n
}

// DamageBreakdown records every step of the attack damage pipeline for the
// action history and for tests.
type DamageBreakdown struct {
	Base          int
	CoinBonus     int // multiplicative and energy-bonus additions
	Modifiers     int // DAMAGE_MODIFIER effects plus boosts/reductions
	AfterWeakness int
	AfterResist   int
	Final         int
	Prevented     int
}

// AttackResult is the outcome of a fully resolved attack.
type AttackResult struct {
	AttackName     string
	Damage         DamageBreakdown
	KnockedOut     bool
	Recoil         int
	SelfKnockedOut bool
}

// resolveBaseDamage computes base plus coin/energy bonuses.
func resolveBaseDamage(a card.Attack, attacker *Instance, bits *BitReader) (base, bonus int) {
	expr, err := card.ParseDamageExpr(a.Damage)
	if err != nil {
		return 0, 0
	}
	switch expr.Kind {
	case card.DamageMultiply:
		if bits.Next() {
			return expr.Base, 0
		}
		return 0, 0
	case card.DamageBonus:
		extra := attacker.EnergyCount() - a.CostCount()
		if extra < 0 {
			extra = 0
		}
		if a.EnergyBonusCap > 0 && extra > a.EnergyBonusCap {
			extra = a.EnergyBonusCap
		}
		return expr.Base, extra * 10
	default:
		return expr.BaseDamage(), 0
	}
}

// ResolveAttack runs the whole attack: preconditions, the damage pipeline
// (base → coin bonuses → modifiers → weakness ×2 → resistance −N →
// prevention caps), then non-damage effects. bits must hold exactly
// CountAttackFlips results.
func ResolveAttack(gs *GameState, atkPlayer int, a card.Attack, bits *BitReader) AttackResult {
	attacker := gs.Players[atkPlayer].Active
	defPlayer := gs.Opponent(atkPlayer)
	defender := gs.Players[defPlayer].Active

	res := AttackResult{AttackName: a.Name}

	ctx := &CondContext{State: gs, Self: attacker, Opponent: defender, Bits: bits}
	if !EvalConditions(a.Preconditions, ctx) {
		// Preconditions failed on their coin flips: the attack fizzles but
		// the turn is still spent.
		return res
	}

	base, coinBonus := resolveBaseDamage(a, attacker, bits)
	bd := DamageBreakdown{Base: base, CoinBonus: coinBonus}
	damage := base + coinBonus

	// DAMAGE_MODIFIER effects adjust the pre-weakness total.
	for _, e := range a.Effects {
		if e.Type != card.AttackDamageModifier {
			continue
		}
		if EvalConditions(e.Conditions, ctx) {
			damage += e.Amount
			bd.Modifiers += e.Amount
		}
	}
	passiveBoost, _ := PassiveModifiers(attacker)
	damage += attacker.DamageBoost + passiveBoost
	bd.Modifiers += attacker.DamageBoost + passiveBoost
	if damage < 0 {
		damage = 0
	}

	// Weakness and resistance apply only when some damage is dealt.
	if damage > 0 && defender != nil {
		if w := defender.Card.Weakness; w != nil && w.EnergyType == attacker.Card.PokemonType {
			damage *= 2
		}
		bd.AfterWeakness = damage
		if r := defender.Card.Resistance; r != nil && r.EnergyType == attacker.Card.PokemonType {
			damage -= r.Amount
			if damage < 0 {
				damage = 0
			}
		}
		bd.AfterResist = damage

		_, passiveReduction := PassiveModifiers(defender)
		damage -= defender.DamageReduction + passiveReduction
		if damage < 0 {
			damage = 0
		}

		if cap, ok := defender.PreventionCap(gs.TurnNumber); ok {
			if cap == card.AmountAll {
				bd.Prevented = damage
				damage = 0
			} else if damage > cap {
				bd.Prevented = damage - cap
				damage = cap
			}
		}
	} else {
		bd.AfterWeakness = damage
		bd.AfterResist = damage
	}
	bd.Final = damage
	res.Damage = bd

	if defender != nil && damage > 0 {
		defender.ApplyDamage(damage)
	}

	// Remaining attack effects, in declared order.
	applyAttackEffects(gs, atkPlayer, a, ctx, &res)

	if defender != nil && defender.IsKnockedOut() {
		res.KnockedOut = true
	}
	if attacker.IsKnockedOut() {
		res.SelfKnockedOut = true
	}
	return res
}
