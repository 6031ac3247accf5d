package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/deck"
	"github.com/peterkuimelis/ptcgd/internal/game"
)

const (
	sparkitID  = "tester-proto-v1-sparkit--1"
	sparkionID = "tester-proto-v1-sparkion--2"
	potionID   = "tester-proto-v1-potion--3"
	researchID = "tester-proto-v1-research--4"
	energyID   = "tester-proto-v1-lightning-energy--5"
)

func sparkitCard(t *testing.T) *card.Card {
	t.Helper()
	c, err := card.NewPokemonCard(sparkitID, "Sparkit", "proto", card.EnergyLightning, card.StageBasic, 60, 1)
	require.NoError(t, err)

	spark, err := card.NewAttack("Spark", []card.EnergyType{card.EnergyLightning}, "30", "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, c.AddAttack(spark))

	shock, err := card.NewAttack("Thunder Shock", []card.EnergyType{card.EnergyLightning}, "10", "",
		nil, []card.AttackEffect{{
			Type:       card.AttackStatusCondition,
			Target:     card.TargetDefending,
			Status:     card.StatusParalyzed,
			Conditions: []card.Condition{{Type: card.CondCoinFlipSuccess}},
		}})
	require.NoError(t, err)
	require.NoError(t, c.AddAttack(shock))
	return c
}

func sparkionCard(t *testing.T) *card.Card {
	t.Helper()
	c, err := card.NewPokemonCard(sparkionID, "Sparkion", "proto", card.EnergyLightning, card.StageOne, 90, 1)
	require.NoError(t, err)
	require.NoError(t, c.SetEvolvesFrom(card.EvolvesFrom{Name: "Sparkit"}))
	return c
}

func potionCard(t *testing.T) *card.Card {
	t.Helper()
	c, err := card.NewTrainerCard(potionID, "Potion", "proto", card.TrainerItem,
		[]card.TrainerEffect{{Type: card.TrainerHeal, Target: card.TargetAnyYours, Amount: 20}})
	require.NoError(t, err)
	return c
}

func researchCard(t *testing.T) *card.Card {
	t.Helper()
	c, err := card.NewTrainerCard(researchID, "Field Research", "proto", card.TrainerSupporter,
		[]card.TrainerEffect{{Type: card.TrainerDrawCards, Count: 2}})
	require.NoError(t, err)
	return c
}

func lightningEnergy() *card.Card {
	return card.NewEnergyCard(energyID, "Lightning Energy", "proto", card.EnergyLightning, false)
}

// fullCatalogAndDecks builds a catalog plus two identical 60-card decks.
func fullCatalogAndDecks(t *testing.T) (*card.Catalog, [2]*deck.Deck) {
	t.Helper()
	cards := []*card.Card{sparkitCard(t), sparkionCard(t), potionCard(t), researchCard(t), lightningEnergy()}

	var fillerIDs []string
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("tester-proto-v1-static-%d--%d", i, 10+i)
		c, err := card.NewPokemonCard(id, fmt.Sprintf("Static %d", i), "proto", card.EnergyLightning, card.StageBasic, 50, 1)
		require.NoError(t, err)
		cards = append(cards, c)
		fillerIDs = append(fillerIDs, id)
	}

	cat := card.NewCatalog()
	require.NoError(t, cat.Load(cards, card.SetMetadata{
		Author: "tester", SetName: "proto", Version: "1", TotalCards: len(cards),
	}))

	var decks [2]*deck.Deck
	for i := range decks {
		d := deck.New(fmt.Sprintf("Lightning Rush %d", i), fmt.Sprintf("player-%d", i))
		for _, id := range []string{sparkitID, sparkionID, potionID, researchID, energyID} {
			require.NoError(t, d.AddCard(id, "proto", 4))
		}
		for _, id := range fillerIDs {
			require.NoError(t, d.AddCard(id, "proto", 4))
		}
		require.Equal(t, 60, d.GetTotalCardCount())
		decks[i] = d
	}
	return cat, decks
}

// startedMatch runs the lobby flow up to DRAWING_CARDS with a fixed first
// player.
func startedMatch(t *testing.T, firstPlayer int) (*Match, *Executor) {
	t.Helper()
	cat, decks := fullCatalogAndDecks(t)

	m := New("alice", decks[0].ID, "")
	require.NoError(t, m.Join("bob", decks[1].ID))
	require.NoError(t, m.ValidateDecks([2]*deck.Deck{decks[0], decks[1]}, cat))
	require.NoError(t, m.Start(7, firstPlayer))
	return m, NewExecutor(cat)
}

// setupMatch drives both players through the whole setup to PLAYER_TURN.
func setupMatch(t *testing.T) (*Match, *Executor) {
	t.Helper()
	m, ex := startedMatch(t, 0)
	for _, p := range []string{"alice", "bob"} {
		require.NoError(t, ex.Execute(m, p, "DRAW_INITIAL_HAND", nil))
	}
	for _, p := range []string{"alice", "bob"} {
		require.NoError(t, ex.Execute(m, p, "SET_PRIZE_CARDS", nil))
	}
	for _, p := range []string{"alice", "bob"} {
		require.NoError(t, ex.Execute(m, p, "CONFIRM_FIRST_PLAYER", nil))
	}
	for i, p := range []string{"alice", "bob"} {
		basic := firstBasicInHand(t, m, i)
		require.NoError(t, ex.Execute(m, p, "SET_ACTIVE_POKEMON", map[string]any{
			"cardInstanceId": basic.InstanceID,
		}))
	}
	for _, p := range []string{"alice", "bob"} {
		require.NoError(t, ex.Execute(m, p, "COMPLETE_INITIAL_SETUP", nil))
	}
	require.Equal(t, StatePlayerTurn, m.State)
	return m, ex
}

func firstBasicInHand(t *testing.T, m *Match, pi int) *game.Instance {
	t.Helper()
	for _, in := range m.Game.Players[pi].Hand {
		if in.Card.IsBasic() {
			return in
		}
	}
	t.Fatalf("player %d has no basic in hand", pi)
	return nil
}

// midGameMatch hand-builds a running match: alice's turn 2, main phase.
// Both sides have an active Sparkit with one energy attached.
func midGameMatch(t *testing.T) (*Match, *Executor) {
	t.Helper()
	gs := game.NewGameState("alice", "bob", 1)
	gs.TurnNumber = 2
	gs.CurrentPlayer = 0
	gs.FirstPlayer = 0
	gs.Phase = game.PhaseMain

	sparkit := sparkitCard(t)
	for i := range gs.Players {
		in := gs.NewInstance(sparkit)
		in.Position = game.PositionActive
		gs.Players[i].Active = in
		attachEnergy(gs, in)
	}

	m := &Match{
		ID:    "test-match",
		State: StatePlayerTurn,
		Players: [2]Participant{
			{PlayerID: "alice", DeckID: "deck-a"},
			{PlayerID: "bob", DeckID: "deck-b"},
		},
		Game: gs,
	}
	return m, NewExecutor(card.NewCatalog())
}

func attachEnergy(gs *game.GameState, target *game.Instance) *game.Instance {
	e := gs.NewInstance(lightningEnergy())
	e.Position = target.Position
	target.Attached = append(target.Attached, e)
	return e
}

func handInstance(gs *game.GameState, pi int, c *card.Card) *game.Instance {
	in := gs.NewInstance(c)
	in.Position = game.PositionHand
	gs.Players[pi].Hand = append(gs.Players[pi].Hand, in)
	return in
}

func benchInstance(gs *game.GameState, pi int, c *card.Card) *game.Instance {
	p := gs.Players[pi]
	slot := p.FreeBenchSlot()
	in := gs.NewInstance(c)
	in.Position = game.BenchPosition(slot)
	p.Bench[slot] = in
	return in
}

func prizeInstances(gs *game.GameState, pi, n int) {
	p := gs.Players[pi]
	for i := 0; i < n; i++ {
		in := gs.NewInstance(lightningEnergy())
		in.Position = game.PositionPrize
		p.Prizes = append(p.Prizes, in)
	}
}

func requireActionError(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	require.Error(t, err)
	ae := AsActionError(err)
	require.NotNil(t, ae, "expected ActionError, got %v", err)
	require.Equal(t, code, ae.Code, "unexpected code: %v", err)
}
