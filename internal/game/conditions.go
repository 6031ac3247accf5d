package game

import "github.com/peterkuimelis/ptcgd/internal/card"

// BitReader feeds coin-flip results to condition evaluation in order.
type BitReader struct {
	bits []bool
	pos  int
}

// NewBitReader wraps resolved coin-flip bits.
func NewBitReader(bits []bool) *BitReader {
	return &BitReader{bits: bits}
}

// Next consumes one bit. Running out reads as tails, which only happens if
// the executor under-counted the flips an attack needs.
func (r *BitReader) Next() bool {
	if r == nil || r.pos >= len(r.bits) {
		return false
	}
	b := r.bits[r.pos]
	r.pos++
	return b
}

// CondContext carries everything a condition can inspect.
type CondContext struct {
	State    *GameState
	Self     *Instance // the attacking / ability-owning Pokemon
	Opponent *Instance // the defending Pokemon, may be nil
	Bits     *BitReader
}

// EvalCondition evaluates one condition. Coin-flip conditions consume a bit.
func EvalCondition(c card.Condition, ctx *CondContext) bool {
	switch c.Type {
	case card.CondAlways:
		return true
	case card.CondCoinFlipSuccess:
		return ctx.Bits.Next()
	case card.CondCoinFlipFailure:
		return !ctx.Bits.Next()
	case card.CondSelfHasDamage:
		return ctx.Self != nil && ctx.Self.DamageTaken() > 0
	case card.CondSelfNoDamage:
		return ctx.Self != nil && ctx.Self.DamageTaken() == 0
	case card.CondSelfMinDamage:
		return ctx.Self != nil && ctx.Self.DamageTaken() >= c.Amount
	case card.CondSelfHasStatus:
		return ctx.Self != nil && ctx.Self.HasStatus(c.Status)
	case card.CondSelfHasEnergyType:
		return ctx.Self != nil && ctx.Self.EnergyOfType(c.EnergyType) >= c.Amount
	case card.CondSelfMinEnergy:
		return ctx.Self != nil && ctx.Self.EnergyCount() >= c.Amount
	case card.CondOpponentHasDamage:
		return ctx.Opponent != nil && ctx.Opponent.DamageTaken() > 0
	case card.CondOpponentHasStatus:
		return ctx.Opponent != nil && ctx.Opponent.HasStatus(c.Status)
	case card.CondStadiumInPlay:
		if ctx.State.Stadium == nil {
			return false
		}
		return c.Stadium == "" || ctx.State.Stadium.Card.Name == c.Stadium
	default:
		return false
	}
}

// EvalConditions ANDs a condition list. An empty list is true.
func EvalConditions(conds []card.Condition, ctx *CondContext) bool {
	for _, c := range conds {
		if !EvalCondition(c, ctx) {
			return false
		}
	}
	return true
}
