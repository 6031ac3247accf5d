package game

import (
	"fmt"

	"github.com/peterkuimelis/ptcgd/internal/card"
)

// PlayerState is one player's zones and per-turn flags. Zone operations
// preserve the card-conservation invariant: instances only move, except
// where an action's contract consumes them.
type PlayerState struct {
	PlayerID string

	Deck    []*Instance // index 0 is the top of the deck
	Hand    []*Instance
	Active  *Instance
	Bench   [BenchSize]*Instance
	Prizes  []*Instance
	Discard []*Instance

	HasAttachedEnergyThisTurn  bool
	HasPlayedSupporterThisTurn bool
}

// DeckCount returns cards remaining in the deck.
func (p *PlayerState) DeckCount() int { return len(p.Deck) }

// HandCount returns cards in hand.
func (p *PlayerState) HandCount() int { return len(p.Hand) }

// PrizesRemaining returns prize cards not yet drawn.
func (p *PlayerState) PrizesRemaining() int { return len(p.Prizes) }

// BenchCount returns occupied bench slots.
func (p *PlayerState) BenchCount() int {
	n := 0
	for _, b := range p.Bench {
		if b != nil {
			n++
		}
	}
	return n
}

// BenchPokemon returns non-empty bench instances in slot order.
func (p *PlayerState) BenchPokemon() []*Instance {
	var out []*Instance
	for _, b := range p.Bench {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// FreeBenchSlot returns the first empty bench slot, or -1.
func (p *PlayerState) FreeBenchSlot() int {
	for i, b := range p.Bench {
		if b == nil {
			return i
		}
	}
	return -1
}

// InPlay returns the active plus bench, active first.
func (p *PlayerState) InPlay() []*Instance {
	var out []*Instance
	if p.Active != nil {
		out = append(out, p.Active)
	}
	return append(out, p.BenchPokemon()...)
}

// TotalInstances counts every card instance this player owns, including
// attached energy and evolution underlays, for the conservation invariant.
func (p *PlayerState) TotalInstances() int {
	total := len(p.Deck) + len(p.Hand) + len(p.Prizes) + len(p.Discard)
	for _, in := range p.InPlay() {
		total += 1 + len(in.Attached) + len(in.EvolutionChain)
	}
	return total
}

// Draw moves the top deck card to hand. Returns nil on an empty deck; the
// caller decides whether that is a deck-out loss.
func (p *PlayerState) Draw() *Instance {
	if len(p.Deck) == 0 {
		return nil
	}
	in := p.Deck[0]
	p.Deck = p.Deck[1:]
	in.Position = PositionHand
	p.Hand = append(p.Hand, in)
	return in
}

// RemoveFromHand removes a card from hand by instance id.
func (p *PlayerState) RemoveFromHand(in *Instance) bool {
	for i, c := range p.Hand {
		if c.InstanceID == in.InstanceID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// HandInstance finds a hand card by instance id.
func (p *PlayerState) HandInstance(id int) *Instance {
	for _, c := range p.Hand {
		if c.InstanceID == id {
			return c
		}
	}
	return nil
}

// InPlayInstance finds an active/bench Pokemon by instance id.
func (p *PlayerState) InPlayInstance(id int) *Instance {
	for _, in := range p.InPlay() {
		if in.InstanceID == id {
			return in
		}
	}
	return nil
}

// ToDiscard moves an instance into the discard pile.
func (p *PlayerState) ToDiscard(in *Instance) {
	in.Position = PositionDiscard
	p.Discard = append(p.Discard, in)
}

// DiscardFromHand moves a hand card to the discard pile.
func (p *PlayerState) DiscardFromHand(in *Instance) bool {
	if !p.RemoveFromHand(in) {
		return false
	}
	p.ToDiscard(in)
	return true
}

// CommitPrizes moves n cards from the top of the deck face-down to prizes.
func (p *PlayerState) CommitPrizes(n int) error {
	if len(p.Deck) < n {
		return fmt.Errorf("deck has %d cards, cannot commit %d prizes", len(p.Deck), n)
	}
	for i := 0; i < n; i++ {
		in := p.Deck[0]
		p.Deck = p.Deck[1:]
		in.Position = PositionPrize
		p.Prizes = append(p.Prizes, in)
	}
	return nil
}

// DrawPrize moves the prize at the given index to hand.
func (p *PlayerState) DrawPrize(index int) (*Instance, error) {
	if index < 0 || index >= len(p.Prizes) {
		return nil, fmt.Errorf("prize index %d out of range (have %d)", index, len(p.Prizes))
	}
	in := p.Prizes[index]
	p.Prizes = append(p.Prizes[:index], p.Prizes[index+1:]...)
	in.Position = PositionHand
	p.Hand = append(p.Hand, in)
	return in, nil
}

// PlaceActive moves a Basic Pokemon from hand to the empty active spot.
func (p *PlayerState) PlaceActive(in *Instance, turn int) error {
	if p.Active != nil {
		return fmt.Errorf("active spot is occupied")
	}
	if !p.RemoveFromHand(in) {
		return fmt.Errorf("card %d is not in hand", in.InstanceID)
	}
	in.Position = PositionActive
	in.CurrentHP = in.Card.HP
	in.MaxHP = in.Card.HP
	in.EvolvedAt = turn
	p.Active = in
	return nil
}

// PlaceBench moves a Basic Pokemon from hand to an empty bench slot.
func (p *PlayerState) PlaceBench(in *Instance, slot, turn int) error {
	if slot < 0 || slot >= BenchSize {
		return fmt.Errorf("bench slot %d out of range", slot)
	}
	if p.Bench[slot] != nil {
		return fmt.Errorf("bench slot %d is occupied", slot)
	}
	if !p.RemoveFromHand(in) {
		return fmt.Errorf("card %d is not in hand", in.InstanceID)
	}
	in.Position = BenchPosition(slot)
	in.CurrentHP = in.Card.HP
	in.MaxHP = in.Card.HP
	in.EvolvedAt = turn
	p.Bench[slot] = in
	return nil
}

// Promote moves a bench Pokemon to the empty active spot, preserving
// energy, damage, and status.
func (p *PlayerState) Promote(in *Instance) error {
	if p.Active != nil {
		return fmt.Errorf("active spot is occupied")
	}
	slot := -1
	for i, b := range p.Bench {
		if b != nil && b.InstanceID == in.InstanceID {
			slot = i
			break
		}
	}
	if slot < 0 {
		return fmt.Errorf("card %d is not on the bench", in.InstanceID)
	}
	p.Bench[slot] = nil
	in.Position = PositionActive
	p.Active = in
	return nil
}

// SwapActive exchanges the active with a bench Pokemon (retreat or switch).
func (p *PlayerState) SwapActive(benched *Instance) error {
	slot := -1
	for i, b := range p.Bench {
		if b != nil && b.InstanceID == benched.InstanceID {
			slot = i
			break
		}
	}
	if slot < 0 {
		return fmt.Errorf("card %d is not on the bench", benched.InstanceID)
	}
	old := p.Active
	p.Bench[slot] = old
	if old != nil {
		old.Position = BenchPosition(slot)
	}
	benched.Position = PositionActive
	p.Active = benched
	return nil
}

// AttachEnergy moves an energy card from hand onto a Pokemon in play.
func (p *PlayerState) AttachEnergy(energy, target *Instance) error {
	if energy.Card.CardType != card.TypeEnergy {
		return fmt.Errorf("card %s is not an energy card", energy.Card.Name)
	}
	if !p.RemoveFromHand(energy) {
		return fmt.Errorf("card %d is not in hand", energy.InstanceID)
	}
	energy.Position = target.Position
	target.Attached = append(target.Attached, energy)
	return nil
}

// DiscardAttachedEnergy removes n energy instances (attach order) from a
// Pokemon into the discard pile. card.AmountAll discards everything.
func (p *PlayerState) DiscardAttachedEnergy(target *Instance, n int) int {
	if n == card.AmountAll || n > len(target.Attached) {
		n = len(target.Attached)
	}
	for i := 0; i < n; i++ {
		e := target.Attached[0]
		target.Attached = target.Attached[1:]
		p.ToDiscard(e)
	}
	return n
}

// Evolve overlays an evolution card from hand onto a Pokemon in play.
// Damage taken carries over against the new max HP; status and poison
// bookkeeping clear; attached energy stays; the prior top card joins the
// evolution chain.
func (p *PlayerState) Evolve(evolution, target *Instance, turn int) error {
	if !p.RemoveFromHand(evolution) {
		return fmt.Errorf("card %d is not in hand", evolution.InstanceID)
	}
	damage := target.DamageTaken()
	target.EvolutionChain = append(target.EvolutionChain, target.Card.ID)
	target.Card = evolution.Card
	target.MaxHP = evolution.Card.HP
	target.CurrentHP = evolution.Card.HP - damage
	target.ClearAllStatus()
	target.EvolvedAt = turn
	target.AbilityUsedThisTurn = false
	return nil
}

// KnockOut moves a Pokemon and everything stacked on it to the discard
// pile. Evolution underlays surface as fresh discard entries so the card
// count stays conserved.
func (p *PlayerState) KnockOut(in *Instance, makeUnderlay func(cardID string) *Instance) {
	if p.Active != nil && p.Active.InstanceID == in.InstanceID {
		p.Active = nil
	} else {
		for i, b := range p.Bench {
			if b != nil && b.InstanceID == in.InstanceID {
				p.Bench[i] = nil
				break
			}
		}
	}
	for _, e := range in.Attached {
		p.ToDiscard(e)
	}
	in.Attached = nil
	for _, underlayID := range in.EvolutionChain {
		if u := makeUnderlay(underlayID); u != nil {
			p.ToDiscard(u)
		}
	}
	in.EvolutionChain = nil
	in.ClearAllStatus()
	p.ToDiscard(in)
}

// ShuffleHandIntoDeck returns the whole hand to the deck (mulligan).
func (p *PlayerState) ShuffleHandIntoDeck() {
	for _, c := range p.Hand {
		c.Position = PositionDeck
	}
	p.Deck = append(p.Deck, p.Hand...)
	p.Hand = nil
}

// HasBasicInHand reports whether the hand contains a Basic Pokemon.
func (p *PlayerState) HasBasicInHand() bool {
	for _, c := range p.Hand {
		if c.Card.IsBasic() {
			return true
		}
	}
	return false
}

// ResetTurnFlags clears the per-turn flags at turn start.
func (p *PlayerState) ResetTurnFlags() {
	p.HasAttachedEnergyThisTurn = false
	p.HasPlayedSupporterThisTurn = false
	for _, in := range p.InPlay() {
		in.AbilityUsedThisTurn = false
		in.DamageBoost = 0
		in.DamageReduction = 0
	}
}
