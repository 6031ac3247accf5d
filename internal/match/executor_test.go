package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/game"
)

func TestAttachEnergyOncePerTurn(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	active := gs.Players[0].Active

	first := handInstance(gs, 0, lightningEnergy())
	second := handInstance(gs, 0, lightningEnergy())

	require.NoError(t, ex.Execute(m, "alice", "ATTACH_ENERGY", map[string]any{
		"cardInstanceId": first.InstanceID, "targetInstanceId": active.InstanceID,
	}))
	assert.Len(t, active.Attached, 2)

	err := ex.Execute(m, "alice", "ATTACH_ENERGY", map[string]any{
		"cardInstanceId": second.InstanceID, "targetInstanceId": active.InstanceID,
	})
	requireActionError(t, err, ErrRuleViolation)
	assert.Len(t, active.Attached, 2)
}

func TestSupporterOncePerTurn(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game

	var cards []*card.Card
	for i := 0; i < 6; i++ {
		cards = append(cards, lightningEnergy())
	}
	gs.LoadDeck(0, cards)

	first := handInstance(gs, 0, researchCard(t))
	second := handInstance(gs, 0, researchCard(t))

	require.NoError(t, ex.Execute(m, "alice", "PLAY_TRAINER", map[string]any{
		"cardInstanceId": first.InstanceID,
	}))
	// one supporter discarded, two cards drawn
	assert.Equal(t, 3, gs.Players[0].HandCount())
	assert.Equal(t, 4, gs.Players[0].DeckCount())

	err := ex.Execute(m, "alice", "PLAY_TRAINER", map[string]any{
		"cardInstanceId": second.InstanceID,
	})
	requireActionError(t, err, ErrRuleViolation)
}

func TestItemTrainerHasNoTurnLimit(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	active := gs.Players[0].Active
	active.ApplyDamage(50)

	for i := 0; i < 2; i++ {
		potion := handInstance(gs, 0, potionCard(t))
		require.NoError(t, ex.Execute(m, "alice", "PLAY_TRAINER", map[string]any{
			"cardInstanceId": potion.InstanceID, "targetInstanceId": active.InstanceID,
		}))
	}
	assert.Equal(t, 50, active.CurrentHP)
	assert.Len(t, gs.Players[0].Discard, 2)
}

func TestEvolveSameTurnRejected(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	active := gs.Players[0].Active
	active.EvolvedAt = gs.TurnNumber // entered play this turn

	evo := handInstance(gs, 0, sparkionCard(t))
	err := ex.Execute(m, "alice", "EVOLVE_POKEMON", map[string]any{
		"cardInstanceId": evo.InstanceID, "targetInstanceId": active.InstanceID,
	})
	requireActionError(t, err, ErrInvalidTarget)

	active.EvolvedAt = gs.TurnNumber - 1
	require.NoError(t, ex.Execute(m, "alice", "EVOLVE_POKEMON", map[string]any{
		"cardInstanceId": evo.InstanceID, "targetInstanceId": active.InstanceID,
	}))
	assert.Equal(t, "Sparkion", active.Card.Name)
	assert.Equal(t, 90, active.MaxHP)
}

func TestEvolveWrongLineRejected(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	other, err := card.NewPokemonCard("tester-proto-v1-gullion--7", "Gullion", "proto",
		card.EnergyWater, card.StageOne, 80, 1)
	require.NoError(t, err)
	require.NoError(t, other.SetEvolvesFrom(card.EvolvesFrom{Name: "Gully"}))

	evo := handInstance(gs, 0, other)
	gs.Players[0].Active.EvolvedAt = 1
	execErr := ex.Execute(m, "alice", "EVOLVE_POKEMON", map[string]any{
		"cardInstanceId": evo.InstanceID, "targetInstanceId": gs.Players[0].Active.InstanceID,
	})
	requireActionError(t, execErr, ErrInvalidTarget)
}

func TestParalyzedCannotAttackOrRetreat(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	active := gs.Players[0].Active
	benchInstance(gs, 0, sparkitCard(t))
	active.AddStatus(card.StatusParalyzed, gs.TurnNumber)

	err := ex.Execute(m, "alice", "ATTACK", map[string]any{"attackName": "Spark"})
	requireActionError(t, err, ErrRuleViolation)

	err = ex.Execute(m, "alice", "RETREAT", map[string]any{
		"targetInstanceId": gs.Players[0].BenchPokemon()[0].InstanceID,
	})
	requireActionError(t, err, ErrRuleViolation)
}

func TestRetreatCostAndSwap(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	p := gs.Players[0]
	active := p.Active
	benched := benchInstance(gs, 0, sparkitCard(t))

	require.NoError(t, ex.Execute(m, "alice", "RETREAT", map[string]any{
		"targetInstanceId": benched.InstanceID,
	}))
	assert.Equal(t, benched.InstanceID, p.Active.InstanceID)
	// retreat cost 1: the single attached energy went to discard
	assert.Empty(t, active.Attached)
	assert.Len(t, p.Discard, 1)

	// the new active has no energy, so it cannot pay the retreat cost
	err := ex.Execute(m, "alice", "RETREAT", map[string]any{
		"targetInstanceId": active.InstanceID,
	})
	requireActionError(t, err, ErrInsufficientResources)
}

func TestAttackWrongTurnAndEnergy(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game

	err := ex.Execute(m, "bob", "ATTACK", map[string]any{"attackName": "Spark"})
	requireActionError(t, err, ErrNotPlayerTurn)

	gs.Players[0].Active.Attached = nil
	err = ex.Execute(m, "alice", "ATTACK", map[string]any{"attackName": "Spark"})
	requireActionError(t, err, ErrInsufficientResources)

	err = ex.Execute(m, "alice", "ATTACK", map[string]any{"attackName": "Hyper Beam"})
	requireActionError(t, err, ErrInvalidAction)
}

func TestAttackResolvesAndEndsTurn(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	defender := gs.Players[1].Active

	require.NoError(t, ex.Execute(m, "alice", "ATTACK", map[string]any{"attackName": "Spark"}))

	attacks := gs.History.OfType("ATTACK")
	require.Len(t, attacks, 1)
	assert.Equal(t, "Spark", attacks[0].ActionData["attackName"])
	assert.Equal(t, 30, attacks[0].ActionData["damage"])
	assert.Equal(t, 30, defender.CurrentHP)

	// the attack ended the turn
	assert.Equal(t, StatePlayerTurn, m.State)
	assert.Equal(t, 1, gs.CurrentPlayer)
	assert.Equal(t, 3, gs.TurnNumber)
	assert.Equal(t, game.PhaseDraw, gs.Phase)
}

// A coin-flip attack suspends: the intermediate state commits with no ATTACK
// history entry, then GENERATE_COIN_FLIP resolves it.
func TestCoinFlipAttackSuspension(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	defender := gs.Players[1].Active

	require.NoError(t, ex.Execute(m, "alice", "ATTACK", map[string]any{"attackName": "Thunder Shock"}))

	// suspended: no attack entry yet, flip armed, phase committed
	assert.Empty(t, gs.History.OfType("ATTACK"))
	require.NotNil(t, gs.CoinFlip)
	assert.Equal(t, game.FlipReady, gs.CoinFlip.Status)
	assert.Equal(t, game.PhaseAttack, gs.Phase)
	assert.Equal(t, 60, defender.CurrentHP)

	// turn actions are blocked while the flip is pending
	requireActionError(t, ex.Execute(m, "alice", "END_TURN", nil), ErrInvalidState)

	// either player may generate an attack flip; bob does
	require.NoError(t, ex.Execute(m, "bob", "GENERATE_COIN_FLIP", nil))

	attacks := gs.History.OfType("ATTACK")
	require.Len(t, attacks, 1)
	// fixed damage lands regardless of the flip; the flip gates paralysis
	assert.Equal(t, 10, attacks[0].ActionData["damage"])
	assert.Equal(t, 50, defender.CurrentHP)

	flips := gs.History.OfType("GENERATE_COIN_FLIP")
	require.Len(t, flips, 1)
	heads := flips[0].ActionData["heads"].(int)
	assert.Equal(t, heads == 1, defender.HasStatus(card.StatusParalyzed))

	// turn ended after resolution
	assert.Equal(t, 1, gs.CurrentPlayer)
	assert.Nil(t, gs.CoinFlip)
}

func TestDeckOutLoss(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	gs.Phase = game.PhaseDraw
	require.Zero(t, gs.Players[0].DeckCount())

	// drawing from an empty deck is a loss, not an error
	require.NoError(t, ex.Execute(m, "alice", "DRAW_CARD", nil))
	assert.Equal(t, StateMatchEnded, m.State)
	assert.Equal(t, "bob", m.WinnerID)
	assert.Equal(t, game.WinDeckOut, m.WinCondition)

	draws := gs.History.OfType("DRAW_CARD")
	require.Len(t, draws, 1)
	assert.Equal(t, true, draws[0].ActionData["deckOut"])
}

func TestDrawAdvancesToMain(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	gs.Phase = game.PhaseDraw
	gs.LoadDeck(0, []*card.Card{lightningEnergy()})

	// main-phase actions are rejected before the draw
	potion := handInstance(gs, 0, potionCard(t))
	requireActionError(t, ex.Execute(m, "alice", "PLAY_TRAINER", map[string]any{
		"cardInstanceId": potion.InstanceID,
	}), ErrInvalidPhase)

	require.NoError(t, ex.Execute(m, "alice", "DRAW_CARD", nil))
	assert.Equal(t, game.PhaseMain, gs.Phase)
	assert.Equal(t, 2, gs.Players[0].HandCount())
}

// Knockout interrupt ordering: the attacker selects a prize before the
// defender may promote, then promotion ends the turn.
func TestKnockoutPrizeThenPromote(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game

	defender := gs.Players[1].Active
	defender.ApplyDamage(40) // 20 HP left, Spark finishes it
	replacement := benchInstance(gs, 1, sparkitCard(t))
	prizeInstances(gs, 0, 6)

	require.NoError(t, ex.Execute(m, "alice", "ATTACK", map[string]any{"attackName": "Spark"}))

	assert.Equal(t, 1, gs.PendingPrizeSelects())
	assert.Equal(t, 0, gs.PrizeSelectPlayer())
	assert.True(t, gs.PendingPromote[1])
	assert.Nil(t, gs.Players[1].Active)

	// promotion is gated on the attacker's prize selection
	err := ex.Execute(m, "bob", "SET_ACTIVE_POKEMON", map[string]any{
		"cardInstanceId": replacement.InstanceID,
	})
	requireActionError(t, err, ErrInvalidState)

	// only the crediting player selects
	requireActionError(t, ex.Execute(m, "bob", "SELECT_PRIZE", map[string]any{"prizeIndex": 0}),
		ErrNotPlayerTurn)
	require.NoError(t, ex.Execute(m, "alice", "SELECT_PRIZE", map[string]any{"prizeIndex": 0}))
	assert.Equal(t, 5, gs.Players[0].PrizesRemaining())
	// the selected prize went to hand
	assert.Equal(t, 1, gs.Players[0].HandCount())
	assert.Zero(t, gs.PendingPrizeSelects())

	// still bob's promote before the turn can end
	requireActionError(t, ex.Execute(m, "alice", "END_TURN", nil), ErrInvalidState)

	require.NoError(t, ex.Execute(m, "bob", "SET_ACTIVE_POKEMON", map[string]any{
		"cardInstanceId": replacement.InstanceID,
	}))
	assert.Equal(t, replacement.InstanceID, gs.Players[1].Active.InstanceID)
	assert.False(t, gs.PendingPromote[1])

	// the attack's turn ends after the interrupts clear
	assert.Equal(t, StatePlayerTurn, m.State)
	assert.Equal(t, 1, gs.CurrentPlayer)
	assert.Equal(t, 3, gs.TurnNumber)
}

// Simultaneous knockouts from status damage credit each player one prize
// selection; neither side can take the other's.
func TestDoubleKnockoutPaysEachSideItsPrize(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game

	aliceBench := benchInstance(gs, 0, sparkitCard(t))
	bobBench := benchInstance(gs, 1, sparkitCard(t))
	prizeInstances(gs, 0, 6)
	prizeInstances(gs, 1, 6)
	for pi := range gs.Players {
		active := gs.Players[pi].Active
		active.ApplyDamage(55)
		active.AddStatus(card.StatusPoisoned, gs.TurnNumber)
	}

	require.NoError(t, ex.Execute(m, "alice", "END_TURN", nil))
	require.Equal(t, 2, gs.PendingPrizeSelects())

	// alice's active went down first, so bob's credit is at the head
	requireActionError(t, ex.Execute(m, "alice", "SELECT_PRIZE", map[string]any{"prizeIndex": 0}), ErrNotPlayerTurn)
	require.NoError(t, ex.Execute(m, "bob", "SELECT_PRIZE", map[string]any{"prizeIndex": 0}))

	// bob cannot take alice's credit too
	requireActionError(t, ex.Execute(m, "bob", "SELECT_PRIZE", map[string]any{"prizeIndex": 0}), ErrNotPlayerTurn)
	require.NoError(t, ex.Execute(m, "alice", "SELECT_PRIZE", map[string]any{"prizeIndex": 0}))
	assert.Zero(t, gs.PendingPrizeSelects())
	assert.Equal(t, 5, gs.Players[0].PrizesRemaining())
	assert.Equal(t, 5, gs.Players[1].PrizesRemaining())

	require.NoError(t, ex.Execute(m, "alice", "SET_ACTIVE_POKEMON", map[string]any{
		"cardInstanceId": aliceBench.InstanceID,
	}))
	require.NoError(t, ex.Execute(m, "bob", "SET_ACTIVE_POKEMON", map[string]any{
		"cardInstanceId": bobBench.InstanceID,
	}))
	assert.Equal(t, StatePlayerTurn, m.State)
	assert.Equal(t, 1, gs.CurrentPlayer)
}

func TestLastPrizeWinsMatch(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game

	gs.Players[1].Active.ApplyDamage(40)
	benchInstance(gs, 1, sparkitCard(t))
	prizeInstances(gs, 0, 1)

	require.NoError(t, ex.Execute(m, "alice", "ATTACK", map[string]any{"attackName": "Spark"}))
	require.NoError(t, ex.Execute(m, "alice", "SELECT_PRIZE", map[string]any{"prizeIndex": 0}))

	assert.Equal(t, StateMatchEnded, m.State)
	assert.Equal(t, "alice", m.WinnerID)
	assert.Equal(t, game.WinPrizeCards, m.WinCondition)
}

func TestNoPokemonLeftWinsMatch(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game

	// bob's active is his last Pokemon
	gs.Players[1].Active.ApplyDamage(40)
	prizeInstances(gs, 0, 6)

	require.NoError(t, ex.Execute(m, "alice", "ATTACK", map[string]any{"attackName": "Spark"}))

	assert.Equal(t, StateMatchEnded, m.State)
	assert.Equal(t, "alice", m.WinnerID)
	assert.Equal(t, game.WinNoPokemon, m.WinCondition)
}

func TestEndTurnRunsBetweenTurns(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	gs.Players[0].Active.AddStatus(card.StatusPoisoned, gs.TurnNumber)

	require.NoError(t, ex.Execute(m, "alice", "END_TURN", nil))

	assert.Equal(t, StatePlayerTurn, m.State)
	assert.Equal(t, 1, gs.CurrentPlayer)
	assert.Equal(t, game.PhaseDraw, gs.Phase)
	assert.Equal(t, 50, gs.Players[0].Active.CurrentHP)
	require.Len(t, gs.History.OfType("POISON_DAMAGE"), 1)
}

func TestPlayPokemonToBench(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	p := gs.Players[0]

	in := handInstance(gs, 0, sparkitCard(t))
	require.NoError(t, ex.Execute(m, "alice", "PLAY_POKEMON", map[string]any{
		"cardInstanceId": in.InstanceID,
	}))
	assert.Equal(t, 1, p.BenchCount())
	assert.Equal(t, 60, in.CurrentHP)

	// fill the bench, then one more is a rule violation
	for p.BenchCount() < game.BenchSize {
		next := handInstance(gs, 0, sparkitCard(t))
		require.NoError(t, ex.Execute(m, "alice", "PLAY_POKEMON", map[string]any{
			"cardInstanceId": next.InstanceID,
		}))
	}
	extra := handInstance(gs, 0, sparkitCard(t))
	err := ex.Execute(m, "alice", "PLAY_POKEMON", map[string]any{
		"cardInstanceId": extra.InstanceID,
	})
	requireActionError(t, err, ErrRuleViolation)
}

func TestUseAbilityOncePerTurn(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game

	c := sparkitCard(t)
	c.Ability = &card.Ability{
		Name:       "Recharge",
		Kind:       card.AbilityActivated,
		UsageLimit: card.UsageOncePerTurn,
		Effects:    []card.AbilityEffect{{Type: card.AbilityHeal, Target: card.TargetSelf, Amount: 10}},
	}
	owner := benchInstance(gs, 0, c)
	owner.ApplyDamage(20)

	require.NoError(t, ex.Execute(m, "alice", "USE_ABILITY", map[string]any{
		"cardInstanceId": owner.InstanceID,
	}))
	assert.Equal(t, 50, owner.CurrentHP)

	err := ex.Execute(m, "alice", "USE_ABILITY", map[string]any{
		"cardInstanceId": owner.InstanceID,
	})
	requireActionError(t, err, ErrRuleViolation)
}

func TestFailedActionAppendsNoHistory(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	before := gs.History.LastID()

	requireActionError(t, ex.Execute(m, "bob", "END_TURN", nil), ErrNotPlayerTurn)
	requireActionError(t, ex.Execute(m, "alice", "ATTACK", map[string]any{"attackName": "Nope"}), ErrInvalidAction)
	requireActionError(t, ex.Execute(m, "alice", "SELECT_PRIZE", map[string]any{"prizeIndex": 0}), ErrInvalidState)

	assert.Equal(t, before, gs.History.LastID())
}

func TestActionDataTypeTolerance(t *testing.T) {
	m, ex := midGameMatch(t)
	gs := m.Game
	active := gs.Players[0].Active
	energy := handInstance(gs, 0, lightningEnergy())

	// JSON decoding produces float64 ids
	require.NoError(t, ex.Execute(m, "alice", "ATTACH_ENERGY", map[string]any{
		"cardInstanceId":   float64(energy.InstanceID),
		"targetInstanceId": float64(active.InstanceID),
	}))
	assert.Len(t, active.Attached, 2)
}
