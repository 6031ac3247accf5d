package game

import (
	"fmt"

	"github.com/peterkuimelis/ptcgd/internal/card"
)

// Prevention is an active damage-prevention window on a Pokemon.
type Prevention struct {
	Amount      int // card.AmountAll prevents everything
	ExpiresTurn int // inclusive: active through this turn number
}

// Instance is a runtime card with identity. Card points at the immutable
// catalog record; all mutation happens here.
type Instance struct {
	InstanceID int
	Card       *card.Card
	Position   Position

	// Pokemon-in-play state
	CurrentHP             int
	MaxHP                 int
	Attached              []*Instance // energy instances, attach order preserved
	Status                map[card.StatusEffect]bool
	EvolutionChain        []string // prior top-card ids, oldest first
	PoisonDamage          int      // per-tick poison damage; 0 when not poisoned
	EvolvedAt             int      // turn this instance entered play or last evolved
	ParalysisClearsAtTurn int

	// Ability usage tracking
	AbilityUsedThisTurn bool
	AbilityUsedThisGame bool

	// Damage prevention windows
	Preventions []Prevention

	// Attack boost from passive/trainer effects, cleared between turns
	DamageBoost     int
	DamageReduction int
}

func (in *Instance) String() string {
	if in == nil {
		return "(empty)"
	}
	if in.Card.CardType == card.TypePokemon {
		return fmt.Sprintf("%s (%d/%d HP)", in.Card.Name, in.CurrentHP, in.MaxHP)
	}
	return in.Card.Name
}

// HasStatus reports whether the Pokemon currently has the given status.
func (in *Instance) HasStatus(s card.StatusEffect) bool {
	return in.Status[s]
}

// AddStatus applies a status effect. Paralysis and sleep displace each other;
// poison sets the per-tick damage.
func (in *Instance) AddStatus(s card.StatusEffect, currentTurn int) {
	if in.Status == nil {
		in.Status = make(map[card.StatusEffect]bool)
	}
	switch s {
	case card.StatusParalyzed:
		delete(in.Status, card.StatusAsleep)
		in.ParalysisClearsAtTurn = currentTurn + 2
	case card.StatusAsleep:
		delete(in.Status, card.StatusParalyzed)
	case card.StatusPoisoned:
		if in.PoisonDamage == 0 {
			in.PoisonDamage = DefaultPoisonDamage
		}
	}
	in.Status[s] = true
}

// ClearStatus removes one status effect and its bookkeeping.
func (in *Instance) ClearStatus(s card.StatusEffect) {
	delete(in.Status, s)
	switch s {
	case card.StatusPoisoned:
		in.PoisonDamage = 0
	case card.StatusParalyzed:
		in.ParalysisClearsAtTurn = 0
	}
}

// ClearAllStatus removes every status effect.
func (in *Instance) ClearAllStatus() {
	in.Status = nil
	in.PoisonDamage = 0
	in.ParalysisClearsAtTurn = 0
}

// DamageTaken returns accumulated damage.
func (in *Instance) DamageTaken() int {
	return in.MaxHP - in.CurrentHP
}

// IsKnockedOut reports whether HP has reached zero.
func (in *Instance) IsKnockedOut() bool {
	return in.CurrentHP <= 0
}

// ApplyDamage subtracts HP, clamping at zero.
func (in *Instance) ApplyDamage(amount int) {
	in.CurrentHP -= amount
	if in.CurrentHP < 0 {
		in.CurrentHP = 0
	}
}

// Heal restores HP up to MaxHP. card.AmountAll heals fully.
func (in *Instance) Heal(amount int) int {
	if in.Card.HasRule(card.RuleCannotBeHealed) {
		return 0
	}
	missing := in.MaxHP - in.CurrentHP
	if amount == card.AmountAll || amount > missing {
		amount = missing
	}
	in.CurrentHP += amount
	return amount
}

// EnergyCount returns the number of attached energy, counting special
// provision amounts.
func (in *Instance) EnergyCount() int {
	total := 0
	for _, e := range in.Attached {
		if p := e.Card.EnergyProvision; p != nil {
			total += p.Amount
		} else {
			total++
		}
	}
	return total
}

// EnergyOfType counts attached energy providing the given type. Colorless
// requirements are satisfied by any energy, so callers use EnergyCount for
// those.
func (in *Instance) EnergyOfType(t card.EnergyType) int {
	total := 0
	for _, e := range in.Attached {
		et := e.Card.EnergyType
		amount := 1
		if p := e.Card.EnergyProvision; p != nil {
			et = p.EnergyType
			amount = p.Amount
		}
		if et == t {
			total += amount
		}
	}
	return total
}

// HasEnergyFor reports whether attached energy satisfies an ordered cost:
// typed requirements consume matching energy first, colorless consumes the
// remainder.
func (in *Instance) HasEnergyFor(cost []card.EnergyType) bool {
	needed := make(map[card.EnergyType]int)
	colorless := 0
	for _, t := range cost {
		if t == card.EnergyColorless {
			colorless++
		} else {
			needed[t]++
		}
	}
	available := in.EnergyCount()
	for t, n := range needed {
		have := in.EnergyOfType(t)
		if have < n {
			return false
		}
		available -= n
	}
	return available >= colorless
}

// PreventionCap returns the largest applicable prevention for the given
// turn, or zero. card.AmountAll means full prevention.
func (in *Instance) PreventionCap(turn int) (int, bool) {
	best := 0
	found := false
	for _, p := range in.Preventions {
		if p.ExpiresTurn < turn {
			continue
		}
		found = true
		if p.Amount == card.AmountAll {
			return card.AmountAll, true
		}
		if p.Amount > best {
			best = p.Amount
		}
	}
	return best, found
}

// ExpirePreventions drops prevention windows that ended before turn.
func (in *Instance) ExpirePreventions(turn int) {
	var keep []Prevention
	for _, p := range in.Preventions {
		if p.ExpiresTurn >= turn {
			keep = append(keep, p)
		}
	}
	in.Preventions = keep
}
