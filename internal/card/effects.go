package card

import "fmt"

// AmountAll is the sentinel for "all" in amount fields that accept it.
const AmountAll = -1

// EffectTarget identifies which Pokemon an effect applies to.
type EffectTarget int

const (
	TargetSelf EffectTarget = iota
	TargetDefending
	TargetBenched
	TargetAnyYours
)

func (t EffectTarget) String() string {
	switch t {
	case TargetSelf:
		return "SELF"
	case TargetDefending:
		return "DEFENDING"
	case TargetBenched:
		return "BENCHED"
	case TargetAnyYours:
		return "ANY_YOURS"
	default:
		return "Unknown"
	}
}

// EffectDuration scopes damage prevention.
type EffectDuration int

const (
	DurationThisTurn EffectDuration = iota
	DurationNextTurn
)

func (d EffectDuration) String() string {
	if d == DurationNextTurn {
		return "next_turn"
	}
	return "this_turn"
}

// EnergySource identifies where accelerated energy comes from.
type EnergySource int

const (
	SourceDeck EnergySource = iota
	SourceDiscard
	SourceHand
)

func (s EnergySource) String() string {
	switch s {
	case SourceDeck:
		return "deck"
	case SourceDiscard:
		return "discard"
	default:
		return "hand"
	}
}

// Selector distinguishes player choice from random selection.
type Selector int

const (
	SelectChoice Selector = iota
	SelectRandom
)

// --- Attack effects ---

type AttackEffectType int

const (
	AttackDiscardEnergy AttackEffectType = iota
	AttackStatusCondition
	AttackDamageModifier
	AttackHeal
	AttackPreventDamage
	AttackRecoilDamage
	AttackEnergyAcceleration
	AttackSwitchPokemon
)

func (t AttackEffectType) String() string {
	switch t {
	case AttackDiscardEnergy:
		return "DISCARD_ENERGY"
	case AttackStatusCondition:
		return "STATUS_CONDITION"
	case AttackDamageModifier:
		return "DAMAGE_MODIFIER"
	case AttackHeal:
		return "HEAL"
	case AttackPreventDamage:
		return "PREVENT_DAMAGE"
	case AttackRecoilDamage:
		return "RECOIL_DAMAGE"
	case AttackEnergyAcceleration:
		return "ENERGY_ACCELERATION"
	case AttackSwitchPokemon:
		return "SWITCH_POKEMON"
	default:
		return "Unknown"
	}
}

// AttackEffect is one tagged variant of the attack-effect family.
// Variant-specific fields live here; validators enforce which apply.
type AttackEffect struct {
	Type       AttackEffectType
	Target     EffectTarget
	Amount     int // damage/heal/discard amount; AmountAll where allowed
	Status     StatusEffect
	Duration   EffectDuration
	Source     EnergySource
	Count      int
	Selector   Selector
	Conditions []Condition // AND-combined gates
}

// Validate performs the structural checks for this variant. Construction of
// an invalid effect fails at card-load time, never at runtime.
func (e AttackEffect) Validate() error {
	for _, c := range e.Conditions {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	switch e.Type {
	case AttackDiscardEnergy:
		if e.Target != TargetSelf && e.Target != TargetDefending {
			return fmt.Errorf("%s target must be SELF or DEFENDING, got %s", e.Type, e.Target)
		}
		if e.Amount != AmountAll && e.Amount < 1 {
			return fmt.Errorf("%s amount must be >= 1 or all, got %d", e.Type, e.Amount)
		}
	case AttackStatusCondition:
		if e.Target != TargetDefending {
			return fmt.Errorf("%s target must be DEFENDING, got %s", e.Type, e.Target)
		}
	case AttackDamageModifier:
		if e.Amount == 0 {
			return fmt.Errorf("%s requires a nonzero amount", e.Type)
		}
	case AttackHeal:
		if e.Amount < 1 {
			return fmt.Errorf("%s amount must be >= 1, got %d", e.Type, e.Amount)
		}
	case AttackPreventDamage:
		if e.Amount != AmountAll && e.Amount < 1 {
			return fmt.Errorf("%s amount must be >= 1 or all, got %d", e.Type, e.Amount)
		}
	case AttackRecoilDamage:
		if e.Target != TargetSelf {
			return fmt.Errorf("%s target must be SELF, got %s", e.Type, e.Target)
		}
		if e.Amount < 1 {
			return fmt.Errorf("%s amount must be >= 1, got %d", e.Type, e.Amount)
		}
	case AttackEnergyAcceleration:
		if e.Count < 1 {
			return fmt.Errorf("%s count must be >= 1, got %d", e.Type, e.Count)
		}
	case AttackSwitchPokemon:
		if e.Target != TargetSelf {
			return fmt.Errorf("%s target must be SELF, got %s", e.Type, e.Target)
		}
	default:
		return fmt.Errorf("unknown attack effect type %d", int(e.Type))
	}
	return nil
}

// --- Ability effects ---

type AbilityEffectType int

const (
	AbilityHeal AbilityEffectType = iota
	AbilityPreventDamage
	AbilityStatusCondition
	AbilityEnergyAcceleration
	AbilitySwitchPokemon
	AbilityDrawCards
	AbilitySearchDeck
	AbilityBoostAttack
	AbilityBoostHP
	AbilityReduceDamage
	AbilityDiscardFromHand
	AbilityAttachFromDiscard
	AbilityRetrieveFromDiscard
)

func (t AbilityEffectType) String() string {
	switch t {
	case AbilityHeal:
		return "HEAL"
	case AbilityPreventDamage:
		return "PREVENT_DAMAGE"
	case AbilityStatusCondition:
		return "STATUS_CONDITION"
	case AbilityEnergyAcceleration:
		return "ENERGY_ACCELERATION"
	case AbilitySwitchPokemon:
		return "SWITCH_POKEMON"
	case AbilityDrawCards:
		return "DRAW_CARDS"
	case AbilitySearchDeck:
		return "SEARCH_DECK"
	case AbilityBoostAttack:
		return "BOOST_ATTACK"
	case AbilityBoostHP:
		return "BOOST_HP"
	case AbilityReduceDamage:
		return "REDUCE_DAMAGE"
	case AbilityDiscardFromHand:
		return "DISCARD_FROM_HAND"
	case AbilityAttachFromDiscard:
		return "ATTACH_FROM_DISCARD"
	case AbilityRetrieveFromDiscard:
		return "RETRIEVE_FROM_DISCARD"
	default:
		return "Unknown"
	}
}

// AbilityEffect is one tagged variant of the ability-effect family.
type AbilityEffect struct {
	Type       AbilityEffectType
	Target     EffectTarget
	Amount     int
	Status     StatusEffect
	Duration   EffectDuration
	Source     EnergySource
	Count      int
	Selector   Selector
	Conditions []Condition
}

// Validate checks the variant-specific fields.
func (e AbilityEffect) Validate() error {
	for _, c := range e.Conditions {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	switch e.Type {
	case AbilityHeal:
		// Target was normalized before validation; DEFENDING never survives load.
		if e.Target == TargetDefending {
			return fmt.Errorf("%s may only target your own pokemon", e.Type)
		}
		if e.Amount != AmountAll && e.Amount < 1 {
			return fmt.Errorf("%s amount must be >= 1 or all, got %d", e.Type, e.Amount)
		}
	case AbilityPreventDamage, AbilityReduceDamage:
		if e.Amount != AmountAll && e.Amount < 1 {
			return fmt.Errorf("%s amount must be >= 1 or all, got %d", e.Type, e.Amount)
		}
	case AbilityStatusCondition:
		if e.Target != TargetDefending {
			return fmt.Errorf("%s target must be DEFENDING, got %s", e.Type, e.Target)
		}
	case AbilityEnergyAcceleration:
		if e.Count < 1 {
			return fmt.Errorf("%s count must be >= 1, got %d", e.Type, e.Count)
		}
	case AbilitySwitchPokemon:
		if e.Target != TargetSelf {
			return fmt.Errorf("%s target must be SELF, got %s", e.Type, e.Target)
		}
	case AbilityDrawCards, AbilitySearchDeck, AbilityDiscardFromHand,
		AbilityAttachFromDiscard, AbilityRetrieveFromDiscard:
		if e.Count < 1 {
			return fmt.Errorf("%s count must be >= 1, got %d", e.Type, e.Count)
		}
	case AbilityBoostAttack, AbilityBoostHP:
		if e.Amount < 1 {
			return fmt.Errorf("%s amount must be >= 1, got %d", e.Type, e.Amount)
		}
	default:
		return fmt.Errorf("unknown ability effect type %d", int(e.Type))
	}
	return nil
}

// NormalizeAbilityEffects rewrites invalid-but-recoverable source data.
// Ability HEAL may only target the owner's side; DEFENDING in source data is
// rewritten to SELF before validation.
func NormalizeAbilityEffects(effects []AbilityEffect) []AbilityEffect {
	out := make([]AbilityEffect, len(effects))
	copy(out, effects)
	for i := range out {
		if out[i].Type == AbilityHeal && out[i].Target == TargetDefending {
			out[i].Target = TargetSelf
		}
	}
	return out
}

// --- Trainer effects ---

type TrainerEffectType int

const (
	TrainerHeal TrainerEffectType = iota
	TrainerCureStatus
	TrainerIncreaseDamage
	TrainerReduceDamage
	TrainerDrawCards
	TrainerSearchDeck
	TrainerShuffleDeck
	TrainerDiscardHand
	TrainerRetrieveFromDiscard
	TrainerOpponentDraws
	TrainerSwitchActive
	TrainerRemoveEnergy
	TrainerTradeCards
)

func (t TrainerEffectType) String() string {
	switch t {
	case TrainerHeal:
		return "HEAL"
	case TrainerCureStatus:
		return "CURE_STATUS"
	case TrainerIncreaseDamage:
		return "INCREASE_DAMAGE"
	case TrainerReduceDamage:
		return "REDUCE_DAMAGE"
	case TrainerDrawCards:
		return "DRAW_CARDS"
	case TrainerSearchDeck:
		return "SEARCH_DECK"
	case TrainerShuffleDeck:
		return "SHUFFLE_DECK"
	case TrainerDiscardHand:
		return "DISCARD_HAND"
	case TrainerRetrieveFromDiscard:
		return "RETRIEVE_FROM_DISCARD"
	case TrainerOpponentDraws:
		return "OPPONENT_DRAWS"
	case TrainerSwitchActive:
		return "SWITCH_ACTIVE"
	case TrainerRemoveEnergy:
		return "REMOVE_ENERGY"
	case TrainerTradeCards:
		return "TRADE_CARDS"
	default:
		return "Unknown"
	}
}

// TrainerEffect is one tagged variant of the trainer-effect family. Effects
// on a trainer card execute in order.
type TrainerEffect struct {
	Type       TrainerEffectType
	Target     EffectTarget
	Amount     int
	Status     StatusEffect
	Count      int
	Selector   Selector
	Conditions []Condition
}

// Validate checks the variant-specific fields.
func (e TrainerEffect) Validate() error {
	for _, c := range e.Conditions {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	switch e.Type {
	case TrainerHeal:
		if e.Amount != AmountAll && e.Amount < 1 {
			return fmt.Errorf("%s amount must be >= 1 or all, got %d", e.Type, e.Amount)
		}
	case TrainerIncreaseDamage, TrainerReduceDamage:
		if e.Amount < 1 {
			return fmt.Errorf("%s amount must be >= 1, got %d", e.Type, e.Amount)
		}
	case TrainerDrawCards, TrainerSearchDeck, TrainerRetrieveFromDiscard,
		TrainerOpponentDraws, TrainerRemoveEnergy, TrainerTradeCards:
		if e.Count < 1 {
			return fmt.Errorf("%s count must be >= 1, got %d", e.Type, e.Count)
		}
	case TrainerCureStatus, TrainerShuffleDeck, TrainerDiscardHand, TrainerSwitchActive:
		// no extra fields to check
	default:
		return fmt.Errorf("unknown trainer effect type %d", int(e.Type))
	}
	return nil
}
