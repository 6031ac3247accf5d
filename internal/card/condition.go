package card

import "fmt"

// ConditionType enumerates the reusable condition variants shared by attack
// preconditions, attack effects, ability effects, and trainer effects.
type ConditionType int

const (
	CondAlways ConditionType = iota
	CondCoinFlipSuccess
	CondCoinFlipFailure
	CondSelfHasDamage
	CondSelfNoDamage
	CondSelfMinDamage
	CondSelfHasStatus
	CondSelfHasEnergyType
	CondSelfMinEnergy
	CondOpponentHasDamage
	CondOpponentHasStatus
	CondStadiumInPlay
)

func (t ConditionType) String() string {
	switch t {
	case CondAlways:
		return "ALWAYS"
	case CondCoinFlipSuccess:
		return "COIN_FLIP_SUCCESS"
	case CondCoinFlipFailure:
		return "COIN_FLIP_FAILURE"
	case CondSelfHasDamage:
		return "SELF_HAS_DAMAGE"
	case CondSelfNoDamage:
		return "SELF_NO_DAMAGE"
	case CondSelfMinDamage:
		return "SELF_MIN_DAMAGE"
	case CondSelfHasStatus:
		return "SELF_HAS_STATUS"
	case CondSelfHasEnergyType:
		return "SELF_HAS_ENERGY_TYPE"
	case CondSelfMinEnergy:
		return "SELF_MIN_ENERGY"
	case CondOpponentHasDamage:
		return "OPPONENT_HAS_DAMAGE"
	case CondOpponentHasStatus:
		return "OPPONENT_HAS_STATUS"
	case CondStadiumInPlay:
		return "STADIUM_IN_PLAY"
	default:
		return "Unknown"
	}
}

// Condition is a single condition; multiple conditions on the same effect
// combine by AND. OR/NOT composition is intentionally unsupported.
type Condition struct {
	Type       ConditionType
	Amount     int          // SELF_MIN_DAMAGE, SELF_MIN_ENERGY, SELF_HAS_ENERGY_TYPE count
	Status     StatusEffect // SELF_HAS_STATUS, OPPONENT_HAS_STATUS
	EnergyType EnergyType   // SELF_HAS_ENERGY_TYPE
	Stadium    string       // STADIUM_IN_PLAY; empty matches any stadium
}

// Validate checks the variant-specific fields eagerly at construction time.
func (c Condition) Validate() error {
	switch c.Type {
	case CondSelfMinDamage, CondSelfMinEnergy:
		if c.Amount < 1 {
			return fmt.Errorf("condition %s requires a positive amount, got %d", c.Type, c.Amount)
		}
	case CondSelfHasEnergyType:
		if c.Amount < 1 {
			return fmt.Errorf("condition %s requires a positive energy count, got %d", c.Type, c.Amount)
		}
	case CondAlways, CondCoinFlipSuccess, CondCoinFlipFailure,
		CondSelfHasDamage, CondSelfNoDamage, CondSelfHasStatus,
		CondOpponentHasDamage, CondOpponentHasStatus, CondStadiumInPlay:
		// no extra fields to check
	default:
		return fmt.Errorf("unknown condition type %d", int(c.Type))
	}
	return nil
}

// NeedsCoinFlip reports whether evaluating this condition consumes a coin flip.
func (c Condition) NeedsCoinFlip() bool {
	return c.Type == CondCoinFlipSuccess || c.Type == CondCoinFlipFailure
}

// CoinFlipsRequired counts how many coin flips a condition list consumes.
func CoinFlipsRequired(conds []Condition) int {
	n := 0
	for _, c := range conds {
		if c.NeedsCoinFlip() {
			n++
		}
	}
	return n
}
