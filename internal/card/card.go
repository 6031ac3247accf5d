package card

import "fmt"

// --- Enums ---

type CardType int

const (
	TypePokemon CardType = iota
	TypeTrainer
	TypeEnergy
)

func (ct CardType) String() string {
	switch ct {
	case TypePokemon:
		return "Pokemon"
	case TypeTrainer:
		return "Trainer"
	case TypeEnergy:
		return "Energy"
	default:
		return "Unknown"
	}
}

type EnergyType int

const (
	EnergyColorless EnergyType = iota
	EnergyGrass
	EnergyFire
	EnergyWater
	EnergyLightning
	EnergyPsychic
	EnergyFighting
	EnergyDarkness
	EnergyMetal
	EnergyFairy
	EnergyDragon
)

func (e EnergyType) String() string {
	switch e {
	case EnergyColorless:
		return "Colorless"
	case EnergyGrass:
		return "Grass"
	case EnergyFire:
		return "Fire"
	case EnergyWater:
		return "Water"
	case EnergyLightning:
		return "Lightning"
	case EnergyPsychic:
		return "Psychic"
	case EnergyFighting:
		return "Fighting"
	case EnergyDarkness:
		return "Darkness"
	case EnergyMetal:
		return "Metal"
	case EnergyFairy:
		return "Fairy"
	case EnergyDragon:
		return "Dragon"
	default:
		return "Unknown"
	}
}

// ParseEnergyType maps a source-data type name to an EnergyType.
func ParseEnergyType(s string) (EnergyType, error) {
	for e := EnergyColorless; e <= EnergyDragon; e++ {
		if e.String() == s {
			return e, nil
		}
	}
	return EnergyColorless, fmt.Errorf("unknown energy type %q", s)
}

type Stage int

const (
	StageBasic Stage = iota
	StageOne
	StageTwo
	StageVMax
)

func (s Stage) String() string {
	switch s {
	case StageBasic:
		return "Basic"
	case StageOne:
		return "Stage1"
	case StageTwo:
		return "Stage2"
	case StageVMax:
		return "VMax"
	default:
		return "Unknown"
	}
}

// ParseStage maps a source-data stage name to a Stage.
func ParseStage(s string) (Stage, error) {
	switch s {
	case "Basic":
		return StageBasic, nil
	case "Stage1", "Stage 1":
		return StageOne, nil
	case "Stage2", "Stage 2":
		return StageTwo, nil
	case "VMax", "VMAX":
		return StageVMax, nil
	default:
		return StageBasic, fmt.Errorf("unknown stage %q", s)
	}
}

type TrainerType int

const (
	TrainerItem TrainerType = iota
	TrainerSupporter
	TrainerStadium
)

func (t TrainerType) String() string {
	switch t {
	case TrainerItem:
		return "Item"
	case TrainerSupporter:
		return "Supporter"
	case TrainerStadium:
		return "Stadium"
	default:
		return "Unknown"
	}
}

type StatusEffect int

const (
	StatusParalyzed StatusEffect = iota
	StatusPoisoned
	StatusBurned
	StatusAsleep
	StatusConfused
)

func (s StatusEffect) String() string {
	switch s {
	case StatusParalyzed:
		return "PARALYZED"
	case StatusPoisoned:
		return "POISONED"
	case StatusBurned:
		return "BURNED"
	case StatusAsleep:
		return "ASLEEP"
	case StatusConfused:
		return "CONFUSED"
	default:
		return "Unknown"
	}
}

// ParseStatusEffect maps a source-data status name to a StatusEffect.
func ParseStatusEffect(s string) (StatusEffect, error) {
	for st := StatusParalyzed; st <= StatusConfused; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return StatusParalyzed, fmt.Errorf("unknown status effect %q", s)
}

// CardRule enumerates card-level rule flags that restrict runtime actions.
type CardRule int

const (
	RuleCannotRetreat CardRule = iota
	RuleCannotBeHealed
	RulePrizeTwo // worth two prize cards when knocked out
)

func (r CardRule) String() string {
	switch r {
	case RuleCannotRetreat:
		return "CANNOT_RETREAT"
	case RuleCannotBeHealed:
		return "CANNOT_BE_HEALED"
	case RulePrizeTwo:
		return "PRIZE_TWO"
	default:
		return "Unknown"
	}
}

// --- Value objects ---

// Weakness doubles incoming damage from the given energy type.
type Weakness struct {
	EnergyType EnergyType
	Modifier   string // always "×2" in source data
}

// Resistance subtracts from incoming damage of the given energy type.
type Resistance struct {
	EnergyType EnergyType
	Modifier   string // "-20" or "-30"
	Amount     int    // parsed absolute value
}

// EvolvesFrom is a symbolic reference to the pre-evolution template.
// Resolved by name at use time; cards are never linked directly.
type EvolvesFrom struct {
	PokemonNumber int
	Stage         Stage
	Name          string
}

// EnergyProvision describes what a (special) energy card provides.
type EnergyProvision struct {
	EnergyType EnergyType
	Amount     int
}

// AbilityUsageLimit bounds activated-ability usage.
type AbilityUsageLimit int

const (
	UsageUnlimited AbilityUsageLimit = iota
	UsageOncePerTurn
	UsageOncePerGame
)

func (u AbilityUsageLimit) String() string {
	switch u {
	case UsageOncePerTurn:
		return "ONCE_PER_TURN"
	case UsageOncePerGame:
		return "ONCE_PER_GAME"
	default:
		return "UNLIMITED"
	}
}

// AbilityKind distinguishes how an ability fires.
type AbilityKind int

const (
	AbilityActivated AbilityKind = iota
	AbilityTriggered
	AbilityPassive
)

// TriggerEndOfTurn is the trigger name for abilities that fire during
// between-turns processing.
const TriggerEndOfTurn = "END_OF_TURN"

// Ability is a named ability carried by a Pokemon card.
type Ability struct {
	Name       string
	Text       string
	Kind       AbilityKind
	UsageLimit AbilityUsageLimit
	Trigger    string // event name for triggered abilities, e.g. "END_OF_TURN"
	Conditions []Condition
	Effects    []AbilityEffect
}

// Attack is a named attack with an ordered energy cost and a damage expression.
type Attack struct {
	Name           string
	EnergyCost     []EnergyType // ordered, one entry per required energy
	Damage         string       // "", "30", "20+", "10×"
	Text           string
	EnergyBonusCap int // cap for "+"-style energy bonus damage
	Preconditions  []Condition
	Effects        []AttackEffect
}

// NewAttack validates and constructs an attack value object.
func NewAttack(name string, cost []EnergyType, damage, text string, pre []Condition, effects []AttackEffect) (Attack, error) {
	if name == "" {
		return Attack{}, fmt.Errorf("attack requires a name")
	}
	if err := ValidateDamageExpr(damage); err != nil {
		return Attack{}, fmt.Errorf("attack %q: %w", name, err)
	}
	for _, c := range pre {
		if err := c.Validate(); err != nil {
			return Attack{}, fmt.Errorf("attack %q precondition: %w", name, err)
		}
	}
	for _, e := range effects {
		if err := e.Validate(); err != nil {
			return Attack{}, fmt.Errorf("attack %q effect: %w", name, err)
		}
	}
	return Attack{Name: name, EnergyCost: cost, Damage: damage, Text: text, Preconditions: pre, Effects: effects}, nil
}

// CostCount returns the attack's total energy cost.
func (a Attack) CostCount() int {
	return len(a.EnergyCost)
}

// --- Card ---

// Card is an immutable catalog record. Runtime mutation belongs to
// game.CardInstance, never here.
type Card struct {
	ID            string // catalog card id, see FormatCardID
	PokemonNumber int
	Name          string
	SetName       string
	CardNumber    string
	Rarity        string
	CardType      CardType

	// Pokemon-only
	PokemonType EnergyType
	Stage       Stage
	Level       string
	HP          int
	RetreatCost int
	Weakness    *Weakness
	Resistance  *Resistance
	Attacks     []Attack
	Ability     *Ability
	EvolvesFrom *EvolvesFrom
	Rules       []CardRule

	// Trainer-only
	TrainerType    TrainerType
	TrainerEffects []TrainerEffect

	// Energy-only
	EnergyType      EnergyType
	IsSpecialEnergy bool
	EnergyProvision *EnergyProvision
}

// NewPokemonCard constructs a Pokemon card with the mandatory fields.
func NewPokemonCard(id, name, setName string, ptype EnergyType, stage Stage, hp, retreatCost int) (*Card, error) {
	if hp <= 0 {
		return nil, fmt.Errorf("pokemon %q: hp must be positive, got %d", name, hp)
	}
	if retreatCost < 0 {
		return nil, fmt.Errorf("pokemon %q: retreat cost must be non-negative, got %d", name, retreatCost)
	}
	return &Card{
		ID:          id,
		Name:        name,
		SetName:     setName,
		CardType:    TypePokemon,
		PokemonType: ptype,
		Stage:       stage,
		HP:          hp,
		RetreatCost: retreatCost,
	}, nil
}

// NewTrainerCard constructs a Trainer card with its ordered effect list.
func NewTrainerCard(id, name, setName string, ttype TrainerType, effects []TrainerEffect) (*Card, error) {
	for _, e := range effects {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("trainer %q: %w", name, err)
		}
	}
	return &Card{
		ID:             id,
		Name:           name,
		SetName:        setName,
		CardType:       TypeTrainer,
		TrainerType:    ttype,
		TrainerEffects: effects,
	}, nil
}

// NewEnergyCard constructs an Energy card.
func NewEnergyCard(id, name, setName string, etype EnergyType, special bool) *Card {
	return &Card{
		ID:              id,
		Name:            name,
		SetName:         setName,
		CardType:        TypeEnergy,
		EnergyType:      etype,
		IsSpecialEnergy: special,
	}
}

func (c *Card) String() string {
	return c.Name
}

// --- Typed setters: each enforces the card-type constraint ---

// SetEvolvesFrom records the symbolic pre-evolution reference.
// Basic Pokemon may not have one.
func (c *Card) SetEvolvesFrom(ref EvolvesFrom) error {
	if c.CardType != TypePokemon {
		return fmt.Errorf("evolvesFrom is a Pokemon-only field (card %q is %s)", c.Name, c.CardType)
	}
	if c.Stage == StageBasic {
		return fmt.Errorf("basic pokemon %q may not have an evolvesFrom reference", c.Name)
	}
	if ref.Name == "" {
		return fmt.Errorf("evolvesFrom reference for %q requires a name", c.Name)
	}
	c.EvolvesFrom = &ref
	return nil
}

// SetWeakness records a weakness on a Pokemon card.
func (c *Card) SetWeakness(w Weakness) error {
	if c.CardType != TypePokemon {
		return fmt.Errorf("weakness is a Pokemon-only field (card %q is %s)", c.Name, c.CardType)
	}
	c.Weakness = &w
	return nil
}

// SetResistance records a resistance on a Pokemon card.
func (c *Card) SetResistance(r Resistance) error {
	if c.CardType != TypePokemon {
		return fmt.Errorf("resistance is a Pokemon-only field (card %q is %s)", c.Name, c.CardType)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("resistance amount for %q must be positive", c.Name)
	}
	c.Resistance = &r
	return nil
}

// AddAttack appends a validated attack to a Pokemon card.
func (c *Card) AddAttack(a Attack) error {
	if c.CardType != TypePokemon {
		return fmt.Errorf("attacks are a Pokemon-only field (card %q is %s)", c.Name, c.CardType)
	}
	c.Attacks = append(c.Attacks, a)
	return nil
}

// SetAbility records a Pokemon's ability. Ability effect targets are
// normalized at load time (see NormalizeAbilityEffects).
func (c *Card) SetAbility(ab Ability) error {
	if c.CardType != TypePokemon {
		return fmt.Errorf("ability is a Pokemon-only field (card %q is %s)", c.Name, c.CardType)
	}
	for i := range ab.Effects {
		if err := ab.Effects[i].Validate(); err != nil {
			return fmt.Errorf("ability %q: %w", ab.Name, err)
		}
	}
	c.Ability = &ab
	return nil
}

// SetLevel records the optional printed level.
func (c *Card) SetLevel(level string) error {
	if c.CardType != TypePokemon {
		return fmt.Errorf("level is a Pokemon-only field (card %q is %s)", c.Name, c.CardType)
	}
	c.Level = level
	return nil
}

// AddRule appends a card rule flag to a Pokemon card.
func (c *Card) AddRule(r CardRule) error {
	if c.CardType != TypePokemon {
		return fmt.Errorf("card rules are a Pokemon-only field (card %q is %s)", c.Name, c.CardType)
	}
	c.Rules = append(c.Rules, r)
	return nil
}

// SetEnergyProvision records what a special energy card provides.
func (c *Card) SetEnergyProvision(p EnergyProvision) error {
	if c.CardType != TypeEnergy {
		return fmt.Errorf("energy provision is an Energy-only field (card %q is %s)", c.Name, c.CardType)
	}
	if p.Amount < 1 {
		return fmt.Errorf("energy provision for %q must provide at least 1", c.Name)
	}
	c.EnergyProvision = &p
	return nil
}

// --- Query predicates ---

// IsBasic reports whether this is a Basic Pokemon.
func (c *Card) IsBasic() bool {
	return c.CardType == TypePokemon && c.Stage == StageBasic
}

// HasAbility reports whether this Pokemon carries an ability.
func (c *Card) HasAbility() bool {
	return c.CardType == TypePokemon && c.Ability != nil
}

// CanRetreat reports whether this Pokemon is allowed to retreat at all.
func (c *Card) CanRetreat() bool {
	if c.CardType != TypePokemon {
		return false
	}
	return !c.HasRule(RuleCannotRetreat)
}

// HasRule reports whether the card carries the given rule flag.
func (c *Card) HasRule(r CardRule) bool {
	for _, have := range c.Rules {
		if have == r {
			return true
		}
	}
	return false
}

// AttackByName returns the named attack, or false.
func (c *Card) AttackByName(name string) (Attack, bool) {
	for _, a := range c.Attacks {
		if a.Name == name {
			return a, true
		}
	}
	return Attack{}, false
}
