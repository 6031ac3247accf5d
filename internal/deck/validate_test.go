package deck

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/ptcgd/internal/card"
)

func sixtyCardDeck(t *testing.T) *Deck {
	t.Helper()
	d := New("Standard", "player-1")
	for i := 0; i < 15; i++ {
		require.NoError(t, d.AddCard(fmt.Sprintf("a-base-v1-filler--%d", i), "base", 4))
	}
	return d
}

func TestValidateStandardRules(t *testing.T) {
	d := sixtyCardDeck(t)
	res := Validate(d, StandardRules)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestValidateDeckTooSmall(t *testing.T) {
	d := New("Tiny", "player-1")
	require.NoError(t, d.AddCard("a-base-v1-one--1", "base", 4))
	res := Validate(d, StandardRules)
	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "minimum")
}

func TestValidateDeckTooLarge(t *testing.T) {
	d := sixtyCardDeck(t)
	require.NoError(t, d.AddCard("a-base-v1-extra--99", "base", 1))
	res := Validate(d, StandardRules)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors[0], "maximum")
}

func TestValidateTooManyCopies(t *testing.T) {
	d := sixtyCardDeck(t)
	require.NoError(t, d.SetCardQuantity("a-base-v1-filler--0", "base", 8))
	require.NoError(t, d.SetCardQuantity("a-base-v1-filler--1", "base", 0))
	res := Validate(d, StandardRules)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors[0], "copies")
}

func testCatalog(t *testing.T) *card.Catalog {
	t.Helper()
	cat := card.NewCatalog()
	basic, err := card.NewPokemonCard("a-base-v1-sparkit--1", "Sparkit", "base", card.EnergyLightning, card.StageBasic, 60, 1)
	require.NoError(t, err)
	energy := card.NewEnergyCard("a-base-v1-lightning-energy--2", "Lightning Energy", "base", card.EnergyLightning, false)
	require.NoError(t, cat.Load([]*card.Card{basic, energy}, card.SetMetadata{
		Author: "a", SetName: "base", Version: "1", TotalCards: 2,
	}))
	return cat
}

func TestTournamentRules(t *testing.T) {
	cat := testCatalog(t)

	d := New("Tourney", "player-1")
	require.NoError(t, d.AddCard("a-base-v1-sparkit--1", "base", 4))
	require.NoError(t, d.AddCard("a-base-v1-lightning-energy--2", "base", 4))

	rules := Rules{MinDeckSize: 8, MaxDeckSize: 8, MaxCopiesPerCard: 4}
	res := ValidateForTournament(d, cat, rules, []TournamentRule{
		BasicPokemonRequired{},
		BannedCards{CardIDs: []string{"a-base-v1-banned--9"}},
		EnergyMinimum{Min: 10},
	})
	assert.True(t, res.IsValid)
	// energy minimum is advisory only
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "energy")
}

func TestTournamentRuleFailures(t *testing.T) {
	cat := testCatalog(t)

	d := New("No Basics", "player-1")
	require.NoError(t, d.AddCard("a-base-v1-lightning-energy--2", "base", 4))

	rules := Rules{MinDeckSize: 4, MaxDeckSize: 4, MaxCopiesPerCard: 4}
	res := ValidateForTournament(d, cat, rules, []TournamentRule{
		BasicPokemonRequired{},
		BannedCards{CardIDs: []string{"a-base-v1-lightning-energy--2"}},
	})
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 2)
}

func TestMaterialize(t *testing.T) {
	cat := testCatalog(t)
	d := New("Small", "player-1")
	require.NoError(t, d.AddCard("a-base-v1-sparkit--1", "base", 2))

	cards, err := d.Materialize(cat)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Sparkit", cards[0].Name)

	require.NoError(t, d.AddCard("a-base-v1-ghost--7", "base", 1))
	_, err = d.Materialize(cat)
	assert.Error(t, err)
}
