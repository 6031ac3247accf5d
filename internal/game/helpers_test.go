package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/ptcgd/internal/card"
)

func basicCard(t *testing.T, name string, ptype card.EnergyType, hp int) *card.Card {
	t.Helper()
	c, err := card.NewPokemonCard("t-proto-v1-"+name+"--1", name, "proto", ptype, card.StageBasic, hp, 1)
	require.NoError(t, err)
	return c
}

func stageOneCard(t *testing.T, name, from string, ptype card.EnergyType, hp int) *card.Card {
	t.Helper()
	c, err := card.NewPokemonCard("t-proto-v1-"+name+"--2", name, "proto", ptype, card.StageOne, hp, 1)
	require.NoError(t, err)
	require.NoError(t, c.SetEvolvesFrom(card.EvolvesFrom{Name: from}))
	return c
}

func energyCard(name string, etype card.EnergyType) *card.Card {
	return card.NewEnergyCard("t-proto-v1-"+name+"--9", name, "proto", etype, false)
}

func fixedAttack(t *testing.T, name, damage string, cost ...card.EnergyType) card.Attack {
	t.Helper()
	a, err := card.NewAttack(name, cost, damage, "", nil, nil)
	require.NoError(t, err)
	return a
}

func newTestState() *GameState {
	return NewGameState("alice", "bob", 1)
}

// putActive places a fresh instance of c directly into the active spot.
func putActive(gs *GameState, player int, c *card.Card) *Instance {
	in := gs.NewInstance(c)
	in.Position = PositionActive
	gs.Players[player].Active = in
	return in
}

// putBench places a fresh instance of c into the first free bench slot.
func putBench(gs *GameState, player int, c *card.Card) *Instance {
	p := gs.Players[player]
	slot := p.FreeBenchSlot()
	in := gs.NewInstance(c)
	in.Position = BenchPosition(slot)
	p.Bench[slot] = in
	return in
}

// attach sticks an energy instance onto a Pokemon in play.
func attach(gs *GameState, target *Instance, c *card.Card) *Instance {
	e := gs.NewInstance(c)
	e.Position = target.Position
	target.Attached = append(target.Attached, e)
	return e
}

// givePrizes seeds n face-down prize cards for a player.
func givePrizes(gs *GameState, player, n int) {
	p := gs.Players[player]
	for i := 0; i < n; i++ {
		in := gs.NewInstance(energyCard("Prize Filler", card.EnergyColorless))
		in.Position = PositionPrize
		p.Prizes = append(p.Prizes, in)
	}
}
