package card

import "math"

// Balance scoring for catalog tooling. Produces a per-card score in [0,100]
// with HP/Attack/Ability subscores. The formulas here are contractual:
// catalog tooling and balance tests depend on the exact numerics.

// Normalization ceilings for the subscores and the combined total.
const (
	ScoreHPMax           = 200.0
	ScoreAttackMax       = 50.0
	ScoreAbilityMax      = 150.0
	ScoreTotalMax        = 250.0 // without ability
	ScoreTotalMaxAbility = 300.0 // with ability
)

// Expected HP per stage, used for HP efficiency.
const (
	ExpectedHPBasic  = 60.0
	ExpectedHPStage1 = 80.0
	ExpectedHPStage2 = 100.0
)

// HP efficiency adjustments for weakness/resistance.
const (
	WeaknessPenaltyFlat     = 0.25
	WeaknessPenaltyScaled   = 0.12
	Resistance30BonusFlat   = 0.30
	Resistance30BonusScaled = 0.18
	Resistance20BonusFlat   = 0.18
	Resistance20BonusScaled = 0.12
)

// Attack drawback penalties and bonuses.
const (
	RecoilHeavyPenalty     = 5.0 // recoil >= 50% of own HP
	RecoilMediumPenalty    = 3.0 // recoil >= 25% of own HP
	RecoilLightPenalty     = 1.0
	SelfStatusPenalty      = 2.0
	EnergyDiscardPenalty   = 2.0 // per energy discarded from self
	CoinFlipCostScale      = 0.5 // per energy in the cost
	CoinFlipEfficiencyRate = 0.1 // fraction of raw efficiency at risk
	UnderperformThreshold  = 10.0
	UnderperformRate       = 0.5
	HighEfficiencyCutoff   = 12.0
	HighEfficiencyBonus    = 2.0
)

// Opponent-status bonuses. Self-targeting status effects grant nothing.
const (
	PoisonBonus      = 3.0
	ToxicPoisonBonus = 4.0 // 20-damage poison
	ParalysisBonus   = 2.0
	ConfusionBonus   = 2.0
	SleepBonus       = 1.5
	BurnBonus        = 1.0
)

// Whole-card adjustments.
const (
	BasicBonus           = 5.0
	RetreatFreeBonus     = 5.0
	RetreatCheapBonus    = 2.0
	RetreatHeavyPenalty  = 2.0 // retreat cost >= 3
	Stage1Penalty        = 3.0
	Stage2Penalty        = 6.0
	PrizeLiabilityPen    = 10.0 // worth two prizes when knocked out
	LineFirstFormPenalty = 5.0  // basic of a 3-stage line
	LineMidFormPenalty   = 3.0  // stage 1 of a 3-stage line
	SustainabilityRate   = 10.0 // scaled by HP-efficiency shortfall below 0.7
	SustainabilityFloor  = 0.7
)

// Category thresholds.
const (
	CategoryVeryWeakMax = 30.0
	CategoryWeakMax     = 45.0
	CategoryBalancedMax = 54.0
	CategoryStrongMax   = 70.0
)

// Subscore pairs the raw value with its normalized [0,100] form.
type Subscore struct {
	Raw        float64
	Normalized float64
}

// BalanceScore is the scorer output.
type BalanceScore struct {
	HP       Subscore
	Attack   Subscore
	Ability  Subscore
	Score    float64
	Category string
}

// ScoreInput carries the card plus line context the card alone cannot know.
type ScoreInput struct {
	Card *Card
	// LineLength is the evolution line length this card belongs to
	// (1 for standalone basics). Drives the evolution-dependency penalty.
	LineLength int
}

// normalize maps v onto [0,100] against a ceiling.
func normalize(v, max float64) float64 {
	if v <= 0 {
		return 0
	}
	if v >= max {
		return 100
	}
	return v / max * 100
}

// EvolveValue discounts later evolution stages.
func EvolveValue(s Stage) float64 {
	switch s {
	case StageBasic:
		return 1.0
	case StageOne:
		return 0.5
	case StageTwo:
		return 0.33
	default:
		return 1.0
	}
}

func expectedHP(s Stage) float64 {
	switch s {
	case StageBasic:
		return ExpectedHPBasic
	case StageOne:
		return ExpectedHPStage1
	case StageTwo:
		return ExpectedHPStage2
	default:
		return ExpectedHPStage2
	}
}

// HPEfficiency computes hp/expected adjusted for weakness and resistance.
func HPEfficiency(c *Card) float64 {
	base := float64(c.HP) / expectedHP(c.Stage)
	eff := base
	if c.Weakness != nil {
		eff -= WeaknessPenaltyFlat + WeaknessPenaltyScaled*base
	}
	if c.Resistance != nil {
		switch c.Resistance.Amount {
		case 30:
			eff += Resistance30BonusFlat + Resistance30BonusScaled*base
		case 20:
			eff += Resistance20BonusFlat + Resistance20BonusScaled*base
		}
	}
	return eff
}

// ScoreCard computes the balance score for a card. Only Pokemon cards carry
// HP/attack/ability subscores; other card types score zero.
func ScoreCard(in ScoreInput) BalanceScore {
	c := in.Card
	var out BalanceScore
	if c.CardType != TypePokemon {
		out.Category = categorize(0)
		return out
	}

	ev := EvolveValue(c.Stage)
	hpEff := HPEfficiency(c)

	hpRaw := ev * float64(c.HP) * hpEff
	out.HP = Subscore{Raw: hpRaw, Normalized: normalize(hpRaw, ScoreHPMax)}

	attackRaw := 0.0
	if len(c.Attacks) > 0 {
		sum := 0.0
		for _, a := range c.Attacks {
			sum += scoreAttack(c, a)
		}
		attackRaw = sum / float64(len(c.Attacks))
		if attackRaw < 0 {
			attackRaw = 0
		}
	}
	out.Attack = Subscore{Raw: attackRaw, Normalized: normalize(attackRaw, ScoreAttackMax)}

	abilityRaw := 0.0
	if c.HasAbility() {
		abilityRaw = (1.0 / ev) * 50.0
		out.Ability = Subscore{Raw: abilityRaw, Normalized: normalize(abilityRaw, ScoreAbilityMax)}
	}

	totalMax := ScoreTotalMax
	if c.HasAbility() {
		totalMax = ScoreTotalMaxAbility
	}
	score := normalize(hpRaw+attackRaw+abilityRaw, totalMax)

	score -= sustainabilityPenalty(hpEff)
	score -= evolutionDependencyPenalty(c, in.LineLength)
	score -= prizeLiabilityPenalty(c)
	score -= evolutionPenalty(c.Stage)
	score += retreatBonus(c.RetreatCost)
	if c.IsBasic() {
		score += BasicBonus
	}
	if score < 0 {
		score = 0
	}

	out.Score = score
	out.Category = categorize(score)
	return out
}

// scoreAttack computes one attack's efficiency score.
func scoreAttack(c *Card, a Attack) float64 {
	cost := a.CostCount()
	if cost == 0 {
		cost = 1
	}
	avg := ExpectedDamage(a.Damage, a.EnergyBonusCap)
	eff := avg / float64(cost)

	score := eff

	// Drawback penalties.
	for _, e := range a.Effects {
		switch e.Type {
		case AttackRecoilDamage:
			frac := float64(e.Amount) / float64(c.HP)
			switch {
			case frac >= 0.5:
				score -= RecoilHeavyPenalty
			case frac >= 0.25:
				score -= RecoilMediumPenalty
			default:
				score -= RecoilLightPenalty
			}
		case AttackDiscardEnergy:
			if e.Target == TargetSelf {
				n := e.Amount
				if n == AmountAll {
					n = a.CostCount()
				}
				score -= EnergyDiscardPenalty * float64(n)
			}
		case AttackStatusCondition:
			if e.Target == TargetDefending {
				score += opponentStatusBonus(e)
			}
		}
	}

	// Coin-flip risk scales with the investment and the payoff.
	flips := CoinFlipsRequired(a.Preconditions)
	for _, e := range a.Effects {
		flips += CoinFlipsRequired(e.Conditions)
	}
	if flips > 0 || damageIsCoinFlip(a.Damage) {
		score -= CoinFlipCostScale*float64(cost) + CoinFlipEfficiencyRate*eff
	}

	// Expensive attacks are adjusted both ways: a penalty when they
	// under-perform and a bonus when they deliver exceptional throughput.
	if a.CostCount() >= 3 {
		if eff < UnderperformThreshold {
			score -= (UnderperformThreshold - eff) * UnderperformRate
		}
		if eff >= HighEfficiencyCutoff {
			score += HighEfficiencyBonus
		}
	}

	return score
}

func damageIsCoinFlip(s string) bool {
	e, err := ParseDamageExpr(s)
	return err == nil && e.Kind == DamageMultiply
}

func opponentStatusBonus(e AttackEffect) float64 {
	switch e.Status {
	case StatusPoisoned:
		if e.Amount >= 20 {
			return ToxicPoisonBonus
		}
		return PoisonBonus
	case StatusParalyzed:
		return ParalysisBonus
	case StatusConfused:
		return ConfusionBonus
	case StatusAsleep:
		return SleepBonus
	case StatusBurned:
		return BurnBonus
	default:
		return 0
	}
}

func sustainabilityPenalty(hpEff float64) float64 {
	if hpEff >= SustainabilityFloor {
		return 0
	}
	return (SustainabilityFloor - hpEff) * SustainabilityRate
}

func evolutionDependencyPenalty(c *Card, lineLength int) float64 {
	if lineLength < 3 {
		return 0
	}
	switch c.Stage {
	case StageBasic:
		return LineFirstFormPenalty
	case StageOne:
		return LineMidFormPenalty
	default:
		return 0
	}
}

func prizeLiabilityPenalty(c *Card) float64 {
	if c.HasRule(RulePrizeTwo) {
		return PrizeLiabilityPen
	}
	return 0
}

func evolutionPenalty(s Stage) float64 {
	switch s {
	case StageOne:
		return Stage1Penalty
	case StageTwo, StageVMax:
		return Stage2Penalty
	default:
		return 0
	}
}

func retreatBonus(cost int) float64 {
	switch {
	case cost == 0:
		return RetreatFreeBonus
	case cost == 1:
		return RetreatCheapBonus
	case cost >= 3:
		return -RetreatHeavyPenalty
	default:
		return 0
	}
}

func categorize(score float64) string {
	switch {
	case score <= CategoryVeryWeakMax:
		return "very_weak"
	case score <= CategoryWeakMax:
		return "weak"
	case score <= CategoryBalancedMax:
		return "balanced"
	case score <= CategoryStrongMax:
		return "strong"
	default:
		return "too_strong"
	}
}

// RoundScore rounds for display in catalog tooling.
func RoundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
