package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/ptcgd/internal/card"
)

func TestTrainerHealAndCure(t *testing.T) {
	gs := newTestState()
	gs.TurnNumber = 2
	in := putActive(gs, 0, basicCard(t, "Sparkit", card.EnergyLightning, 60))
	putActive(gs, 1, basicCard(t, "Gully", card.EnergyWater, 60))
	in.ApplyDamage(40)
	in.AddStatus(card.StatusPoisoned, 2)

	ApplyTrainerEffects(gs, 0, []card.TrainerEffect{
		{Type: card.TrainerHeal, Target: card.TargetAnyYours, Amount: 20},
		{Type: card.TrainerCureStatus, Target: card.TargetAnyYours},
	}, nil, NewBitReader(nil))

	assert.Equal(t, 40, in.CurrentHP)
	assert.False(t, in.HasStatus(card.StatusPoisoned))
}

func TestTrainerDrawStopsAtEmptyDeck(t *testing.T) {
	gs := newTestState()
	gs.LoadDeck(0, []*card.Card{
		energyCard("Lightning Energy", card.EnergyLightning),
		energyCard("Lightning Energy", card.EnergyLightning),
	})
	putActive(gs, 0, basicCard(t, "Sparkit", card.EnergyLightning, 60))
	putActive(gs, 1, basicCard(t, "Gully", card.EnergyWater, 60))

	ApplyTrainerEffects(gs, 0, []card.TrainerEffect{
		{Type: card.TrainerDrawCards, Count: 5},
	}, nil, NewBitReader(nil))

	assert.Equal(t, 2, gs.Players[0].HandCount())
	assert.Zero(t, gs.Players[0].DeckCount())
}

func TestTrainerConditionalEffectSkipped(t *testing.T) {
	gs := newTestState()
	gs.TurnNumber = 2
	in := putActive(gs, 0, basicCard(t, "Sparkit", card.EnergyLightning, 60))
	putActive(gs, 1, basicCard(t, "Gully", card.EnergyWater, 60))
	in.ApplyDamage(40)

	// failed coin flip skips the heal, the unconditional boost still runs
	ApplyTrainerEffects(gs, 0, []card.TrainerEffect{
		{Type: card.TrainerHeal, Target: card.TargetSelf, Amount: 20,
			Conditions: []card.Condition{{Type: card.CondCoinFlipSuccess}}},
		{Type: card.TrainerIncreaseDamage, Amount: 10},
	}, nil, NewBitReader([]bool{false}))

	assert.Equal(t, 20, in.CurrentHP)
	assert.Equal(t, 10, in.DamageBoost)
}

func TestTrainerRetrieveFromDiscard(t *testing.T) {
	gs := newTestState()
	p := gs.Players[0]
	putActive(gs, 0, basicCard(t, "Sparkit", card.EnergyLightning, 60))
	putActive(gs, 1, basicCard(t, "Gully", card.EnergyWater, 60))

	first := gs.NewInstance(energyCard("Lightning Energy", card.EnergyLightning))
	second := gs.NewInstance(energyCard("Water Energy", card.EnergyWater))
	p.ToDiscard(first)
	p.ToDiscard(second)

	ApplyTrainerEffects(gs, 0, []card.TrainerEffect{
		{Type: card.TrainerRetrieveFromDiscard, Count: 1},
	}, nil, NewBitReader(nil))

	// most recently discarded comes back first
	require.Equal(t, 1, p.HandCount())
	assert.Equal(t, second.InstanceID, p.Hand[0].InstanceID)
	require.Len(t, p.Discard, 1)
	assert.Equal(t, first.InstanceID, p.Discard[0].InstanceID)
}

func TestAbilityUsageLimits(t *testing.T) {
	c := basicCard(t, "Sparkit", card.EnergyLightning, 60)
	c.Ability = &card.Ability{
		Name:       "Recharge",
		Kind:       card.AbilityActivated,
		UsageLimit: card.UsageOncePerTurn,
		Effects:    []card.AbilityEffect{{Type: card.AbilityDrawCards, Count: 1}},
	}

	gs := newTestState()
	owner := putActive(gs, 0, c)
	putActive(gs, 1, basicCard(t, "Gully", card.EnergyWater, 60))
	gs.LoadDeck(0, []*card.Card{energyCard("Lightning Energy", card.EnergyLightning)})

	require.True(t, CanUseAbility(owner, c.Ability))
	assert.True(t, ApplyAbility(gs, 0, owner, c.Ability, nil, NewBitReader(nil)))
	assert.Equal(t, 1, gs.Players[0].HandCount())
	assert.False(t, CanUseAbility(owner, c.Ability))

	// turn reset restores once-per-turn, not once-per-game
	gs.Players[0].ResetTurnFlags()
	assert.True(t, CanUseAbility(owner, c.Ability))

	c.Ability.UsageLimit = card.UsageOncePerGame
	assert.False(t, CanUseAbility(owner, c.Ability))
}

func TestAbilityGatedFlipStillSpendsUsage(t *testing.T) {
	c := basicCard(t, "Sparkit", card.EnergyLightning, 60)
	c.Ability = &card.Ability{
		Name:       "Lucky Mend",
		Kind:       card.AbilityActivated,
		UsageLimit: card.UsageOncePerTurn,
		Conditions: []card.Condition{{Type: card.CondCoinFlipSuccess}},
		Effects:    []card.AbilityEffect{{Type: card.AbilityHeal, Target: card.TargetSelf, Amount: 20}},
	}

	gs := newTestState()
	owner := putActive(gs, 0, c)
	putActive(gs, 1, basicCard(t, "Gully", card.EnergyWater, 60))
	owner.ApplyDamage(30)

	require.Equal(t, 1, CountAbilityFlips(c.Ability))
	assert.False(t, ApplyAbility(gs, 0, owner, c.Ability, nil, NewBitReader([]bool{false})))
	assert.Equal(t, 30, owner.CurrentHP)
	assert.True(t, owner.AbilityUsedThisTurn)
}

func TestAbilityBoostHP(t *testing.T) {
	c := basicCard(t, "Sparkit", card.EnergyLightning, 60)
	c.Ability = &card.Ability{
		Name:    "Thick Hide",
		Kind:    card.AbilityActivated,
		Effects: []card.AbilityEffect{{Type: card.AbilityBoostHP, Target: card.TargetSelf, Amount: 20}},
	}

	gs := newTestState()
	owner := putActive(gs, 0, c)
	putActive(gs, 1, basicCard(t, "Gully", card.EnergyWater, 60))

	assert.True(t, ApplyAbility(gs, 0, owner, c.Ability, nil, NewBitReader(nil)))
	assert.Equal(t, 80, owner.MaxHP)
	assert.Equal(t, 80, owner.CurrentHP)
}

func TestEndOfTurnTriggeredAbilityFires(t *testing.T) {
	c := basicCard(t, "Sparkit", card.EnergyLightning, 60)
	c.Ability = &card.Ability{
		Name:    "Overgrowth",
		Kind:    card.AbilityTriggered,
		Trigger: card.TriggerEndOfTurn,
		Effects: []card.AbilityEffect{{Type: card.AbilityHeal, Target: card.TargetSelf, Amount: 20}},
	}

	gs := newTestState()
	gs.TurnNumber = 2
	owner := putActive(gs, 0, c)
	putActive(gs, 1, basicCard(t, "Gully", card.EnergyWater, 60))
	owner.ApplyDamage(30)

	ProcessBetweenTurns(gs)
	assert.Equal(t, 50, owner.CurrentHP)

	fired := gs.History.OfType("ABILITY_TRIGGERED")
	require.Len(t, fired, 1)
	assert.Equal(t, "Overgrowth", fired[0].ActionData["ability"])
	assert.Equal(t, true, fired[0].ActionData["fired"])
}

func TestEndOfTurnTriggerHonorsOncePerGame(t *testing.T) {
	c := basicCard(t, "Sparkit", card.EnergyLightning, 60)
	c.Ability = &card.Ability{
		Name:       "Last Stand",
		Kind:       card.AbilityTriggered,
		Trigger:    card.TriggerEndOfTurn,
		UsageLimit: card.UsageOncePerGame,
		Effects:    []card.AbilityEffect{{Type: card.AbilityHeal, Target: card.TargetSelf, Amount: 10}},
	}

	gs := newTestState()
	gs.TurnNumber = 2
	owner := putActive(gs, 0, c)
	putActive(gs, 1, basicCard(t, "Gully", card.EnergyWater, 60))
	owner.ApplyDamage(40)

	ProcessBetweenTurns(gs)
	ProcessBetweenTurns(gs)
	assert.Equal(t, 30, owner.CurrentHP)
	assert.Len(t, gs.History.OfType("ABILITY_TRIGGERED"), 1)
}

// Activated and passive abilities never fire on the end-of-turn pass.
func TestEndOfTurnTriggerIgnoresOtherKinds(t *testing.T) {
	activated := basicCard(t, "Sparkit", card.EnergyLightning, 60)
	activated.Ability = &card.Ability{
		Name:    "Recharge",
		Kind:    card.AbilityActivated,
		Effects: []card.AbilityEffect{{Type: card.AbilityHeal, Target: card.TargetSelf, Amount: 20}},
	}
	passive := basicCard(t, "Gully", card.EnergyWater, 60)
	passive.Ability = &card.Ability{
		Name:    "Thick Hide",
		Kind:    card.AbilityPassive,
		Effects: []card.AbilityEffect{{Type: card.AbilityReduceDamage, Amount: 10}},
	}

	gs := newTestState()
	gs.TurnNumber = 2
	a := putActive(gs, 0, activated)
	putActive(gs, 1, passive)
	a.ApplyDamage(30)

	ProcessBetweenTurns(gs)
	assert.Equal(t, 30, a.CurrentHP)
	assert.Empty(t, gs.History.OfType("ABILITY_TRIGGERED"))
}

func TestPassiveAbilityBoostsAttackDamage(t *testing.T) {
	attacker := basicCard(t, "Sparkit", card.EnergyLightning, 60)
	attacker.Ability = &card.Ability{
		Name:    "Surge",
		Kind:    card.AbilityPassive,
		Effects: []card.AbilityEffect{{Type: card.AbilityBoostAttack, Amount: 10}},
	}

	gs := newTestState()
	gs.TurnNumber = 2
	putActive(gs, 0, attacker)
	defender := putActive(gs, 1, basicCard(t, "Gully", card.EnergyWater, 60))

	res := ResolveAttack(gs, 0, fixedAttack(t, "Spark", "30"), NewBitReader(nil))
	assert.Equal(t, 40, res.Damage.Final)
	assert.Equal(t, 10, res.Damage.Modifiers)
	assert.Equal(t, 20, defender.CurrentHP)
}

func TestPassiveAbilityReducesIncomingDamage(t *testing.T) {
	defCard := basicCard(t, "Gully", card.EnergyWater, 60)
	defCard.Ability = &card.Ability{
		Name:    "Thick Hide",
		Kind:    card.AbilityPassive,
		Effects: []card.AbilityEffect{{Type: card.AbilityReduceDamage, Amount: 10}},
	}

	gs := newTestState()
	gs.TurnNumber = 2
	putActive(gs, 0, basicCard(t, "Sparkit", card.EnergyLightning, 60))
	defender := putActive(gs, 1, defCard)

	res := ResolveAttack(gs, 0, fixedAttack(t, "Spark", "30"), NewBitReader(nil))
	assert.Equal(t, 20, res.Damage.Final)
	assert.Equal(t, 40, defender.CurrentHP)
}

func TestCanUseAbilityRejectsNonActivated(t *testing.T) {
	c := basicCard(t, "Sparkit", card.EnergyLightning, 60)
	c.Ability = &card.Ability{Name: "Static", Kind: card.AbilityPassive}

	gs := newTestState()
	owner := putActive(gs, 0, c)
	assert.False(t, CanUseAbility(owner, c.Ability))
	assert.False(t, CanUseAbility(owner, nil))
}
