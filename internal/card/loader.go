package card

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// --- Import DTOs (JSON, §6.2) ---
//
// Raw JSON is transformed into typed DTOs by explicit parse functions that
// return rich error lists; nothing is validated by reflection or tags.

// SetMetadata describes an imported card set.
type SetMetadata struct {
	Author       string `json:"author"`
	SetName      string `json:"setName"`
	Version      string `json:"version"`
	TotalCards   int    `json:"totalCards"`
	Official     bool   `json:"official,omitempty"`
	DateReleased string `json:"dateReleased,omitempty"`
}

// SetFile is the top-level import document.
type SetFile struct {
	Metadata SetMetadata `json:"metadata"`
	Cards    []CardDTO   `json:"cards"`
}

// Amount accepts either an integer or the string "all" in source data.
type Amount int

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == `"all"` {
		*a = AmountAll
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("amount must be an integer or \"all\", got %s", s)
	}
	*a = Amount(n)
	return nil
}

// ConditionDTO mirrors Condition in source data.
type ConditionDTO struct {
	Type       string `json:"type"`
	Value      int    `json:"value,omitempty"`
	Status     string `json:"status,omitempty"`
	EnergyType string `json:"energyType,omitempty"`
	Stadium    string `json:"stadium,omitempty"`
}

// EffectDTO is the shared wire shape of all three effect families.
type EffectDTO struct {
	Type       string         `json:"type"`
	Target     string         `json:"target,omitempty"`
	Amount     Amount         `json:"amount,omitempty"`
	Status     string         `json:"status,omitempty"`
	Duration   string         `json:"duration,omitempty"`
	Source     string         `json:"source,omitempty"`
	Count      int            `json:"count,omitempty"`
	Selector   string         `json:"selector,omitempty"`
	Conditions []ConditionDTO `json:"conditions,omitempty"`
}

// AttackDTO mirrors an attack in source data.
type AttackDTO struct {
	Name           string         `json:"name"`
	Cost           []string       `json:"cost"`
	Damage         string         `json:"damage"`
	Text           string         `json:"text,omitempty"`
	EnergyBonusCap int            `json:"energyBonusCap,omitempty"`
	Preconditions  []ConditionDTO `json:"preconditions,omitempty"`
	Effects        []EffectDTO    `json:"effects,omitempty"`
}

// AbilityDTO mirrors an ability in source data.
type AbilityDTO struct {
	Name       string      `json:"name"`
	Text       string      `json:"text,omitempty"`
	Kind       string      `json:"kind,omitempty"`
	UsageLimit string      `json:"usageLimit,omitempty"`
	Trigger    string      `json:"trigger,omitempty"`
	Effects    []EffectDTO `json:"effects,omitempty"`
}

// ModifierDTO carries weakness/resistance with their string modifiers
// ("×2", "-30") for compatibility with source data.
type ModifierDTO struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier"`
}

// CardDTO mirrors one card in a set file.
type CardDTO struct {
	Name          string       `json:"name"`
	CardNumber    string       `json:"cardNumber"`
	Rarity        string       `json:"rarity,omitempty"`
	SuperType     string       `json:"supertype"`
	PokemonNumber int          `json:"pokemonNumber,omitempty"`
	PokemonType   string       `json:"pokemonType,omitempty"`
	Stage         string       `json:"stage,omitempty"`
	Level         string       `json:"level,omitempty"`
	HP            int          `json:"hp,omitempty"`
	RetreatCost   int          `json:"retreatCost,omitempty"`
	Weakness      *ModifierDTO `json:"weakness,omitempty"`
	Resistance    *ModifierDTO `json:"resistance,omitempty"`
	Attacks       []AttackDTO  `json:"attacks,omitempty"`
	Ability       *AbilityDTO  `json:"ability,omitempty"`
	EvolvesFrom   string       `json:"evolvesFrom,omitempty"`
	Rules         []string     `json:"rules,omitempty"`
	TrainerType   string       `json:"trainerType,omitempty"`
	Effects       []EffectDTO  `json:"effects,omitempty"` // trainer effects
	EnergyType    string       `json:"energyType,omitempty"`
	SpecialEnergy bool         `json:"specialEnergy,omitempty"`
}

// LoadSetResult reports the outcome of loading one set file. A failed set
// never aborts loading of other sets.
type LoadSetResult struct {
	Success  bool
	Author   string
	SetName  string
	Version  string
	Loaded   int
	Filename string
	Err      error
}

// ParseSetFile decodes and validates a set file from raw JSON.
func ParseSetFile(data []byte) (*SetFile, []*Card, error) {
	var sf SetFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, nil, fmt.Errorf("decode set file: %w", err)
	}
	if sf.Metadata.Author == "" || sf.Metadata.SetName == "" || sf.Metadata.Version == "" {
		return nil, nil, fmt.Errorf("set metadata requires author, setName and version")
	}

	var cards []*Card
	var errs []string
	for i, dto := range sf.Cards {
		c, err := parseCard(sf.Metadata, dto)
		if err != nil {
			errs = append(errs, fmt.Sprintf("card %d (%s): %v", i, dto.Name, err))
			continue
		}
		cards = append(cards, c)
	}
	if len(errs) > 0 {
		return &sf, cards, fmt.Errorf("set %s: %s", sf.Metadata.SetName, strings.Join(errs, "; "))
	}
	return &sf, cards, nil
}

// ReadSetFile loads and parses a set file from disk.
func ReadSetFile(path string) (*SetFile, []*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return ParseSetFile(data)
}

func parseCard(meta SetMetadata, dto CardDTO) (*Card, error) {
	if dto.Name == "" {
		return nil, fmt.Errorf("card requires a name")
	}
	id := FormatCardID(meta.Author, meta.SetName, meta.Version, dto.Name, dto.Level, dto.CardNumber)

	switch dto.SuperType {
	case "Pokemon", "Pokémon":
		return parsePokemon(id, meta, dto)
	case "Trainer":
		return parseTrainer(id, meta, dto)
	case "Energy":
		return parseEnergy(id, meta, dto)
	default:
		return nil, fmt.Errorf("unknown supertype %q", dto.SuperType)
	}
}

func parsePokemon(id string, meta SetMetadata, dto CardDTO) (*Card, error) {
	ptype, err := ParseEnergyType(dto.PokemonType)
	if err != nil {
		return nil, err
	}
	stage, err := ParseStage(dto.Stage)
	if err != nil {
		return nil, err
	}
	c, err := NewPokemonCard(id, dto.Name, meta.SetName, ptype, stage, dto.HP, dto.RetreatCost)
	if err != nil {
		return nil, err
	}
	c.PokemonNumber = dto.PokemonNumber
	c.CardNumber = dto.CardNumber
	c.Rarity = dto.Rarity
	if dto.Level != "" {
		if err := c.SetLevel(dto.Level); err != nil {
			return nil, err
		}
	}

	if dto.Weakness != nil {
		et, err := ParseEnergyType(dto.Weakness.Type)
		if err != nil {
			return nil, fmt.Errorf("weakness: %w", err)
		}
		if dto.Weakness.Modifier != "×2" && dto.Weakness.Modifier != "x2" {
			return nil, fmt.Errorf("weakness modifier must be ×2, got %q", dto.Weakness.Modifier)
		}
		if err := c.SetWeakness(Weakness{EnergyType: et, Modifier: "×2"}); err != nil {
			return nil, err
		}
	}
	if dto.Resistance != nil {
		et, err := ParseEnergyType(dto.Resistance.Type)
		if err != nil {
			return nil, fmt.Errorf("resistance: %w", err)
		}
		amt, err := parseResistanceModifier(dto.Resistance.Modifier)
		if err != nil {
			return nil, err
		}
		if err := c.SetResistance(Resistance{EnergyType: et, Modifier: dto.Resistance.Modifier, Amount: amt}); err != nil {
			return nil, err
		}
	}

	for _, adto := range dto.Attacks {
		atk, err := parseAttack(adto)
		if err != nil {
			return nil, err
		}
		if err := c.AddAttack(atk); err != nil {
			return nil, err
		}
	}

	if dto.Ability != nil {
		ab, err := parseAbility(*dto.Ability)
		if err != nil {
			return nil, err
		}
		if err := c.SetAbility(ab); err != nil {
			return nil, err
		}
	}

	if dto.EvolvesFrom != "" {
		if err := c.SetEvolvesFrom(EvolvesFrom{Name: dto.EvolvesFrom, Stage: stage - 1}); err != nil {
			return nil, err
		}
	}

	for _, rs := range dto.Rules {
		r, err := parseCardRule(rs)
		if err != nil {
			return nil, err
		}
		if err := c.AddRule(r); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func parseTrainer(id string, meta SetMetadata, dto CardDTO) (*Card, error) {
	var ttype TrainerType
	switch dto.TrainerType {
	case "Item":
		ttype = TrainerItem
	case "Supporter":
		ttype = TrainerSupporter
	case "Stadium":
		ttype = TrainerStadium
	default:
		return nil, fmt.Errorf("unknown trainer type %q", dto.TrainerType)
	}
	var effects []TrainerEffect
	for _, edto := range dto.Effects {
		e, err := parseTrainerEffect(edto)
		if err != nil {
			return nil, err
		}
		effects = append(effects, e)
	}
	c, err := NewTrainerCard(id, dto.Name, meta.SetName, ttype, effects)
	if err != nil {
		return nil, err
	}
	c.CardNumber = dto.CardNumber
	c.Rarity = dto.Rarity
	return c, nil
}

func parseEnergy(id string, meta SetMetadata, dto CardDTO) (*Card, error) {
	etype, err := ParseEnergyType(dto.EnergyType)
	if err != nil {
		return nil, err
	}
	c := NewEnergyCard(id, dto.Name, meta.SetName, etype, dto.SpecialEnergy)
	c.CardNumber = dto.CardNumber
	c.Rarity = dto.Rarity
	return c, nil
}

func parseAttack(dto AttackDTO) (Attack, error) {
	var cost []EnergyType
	for _, cs := range dto.Cost {
		et, err := ParseEnergyType(cs)
		if err != nil {
			return Attack{}, fmt.Errorf("attack %q cost: %w", dto.Name, err)
		}
		cost = append(cost, et)
	}
	pre, err := parseConditions(dto.Preconditions)
	if err != nil {
		return Attack{}, fmt.Errorf("attack %q: %w", dto.Name, err)
	}
	var effects []AttackEffect
	for _, edto := range dto.Effects {
		e, err := parseAttackEffect(edto)
		if err != nil {
			return Attack{}, fmt.Errorf("attack %q: %w", dto.Name, err)
		}
		effects = append(effects, e)
	}
	atk, err := NewAttack(dto.Name, cost, dto.Damage, dto.Text, pre, effects)
	if err != nil {
		return Attack{}, err
	}
	atk.EnergyBonusCap = dto.EnergyBonusCap
	return atk, nil
}

func parseAbility(dto AbilityDTO) (Ability, error) {
	var effects []AbilityEffect
	for _, edto := range dto.Effects {
		e, err := parseAbilityEffect(edto)
		if err != nil {
			return Ability{}, fmt.Errorf("ability %q: %w", dto.Name, err)
		}
		effects = append(effects, e)
	}
	effects = NormalizeAbilityEffects(effects)

	ab := Ability{Name: dto.Name, Text: dto.Text, Trigger: dto.Trigger, Effects: effects}
	switch dto.Kind {
	case "", "activated":
		ab.Kind = AbilityActivated
	case "triggered":
		ab.Kind = AbilityTriggered
	case "passive":
		ab.Kind = AbilityPassive
	default:
		return Ability{}, fmt.Errorf("ability %q: unknown kind %q", dto.Name, dto.Kind)
	}
	switch dto.UsageLimit {
	case "", "UNLIMITED":
		ab.UsageLimit = UsageUnlimited
	case "ONCE_PER_TURN":
		ab.UsageLimit = UsageOncePerTurn
	case "ONCE_PER_GAME":
		ab.UsageLimit = UsageOncePerGame
	default:
		return Ability{}, fmt.Errorf("ability %q: unknown usage limit %q", dto.Name, dto.UsageLimit)
	}
	return ab, nil
}

func parseConditions(dtos []ConditionDTO) ([]Condition, error) {
	var out []Condition
	for _, dto := range dtos {
		c, err := parseCondition(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseCondition(dto ConditionDTO) (Condition, error) {
	var c Condition
	found := false
	for t := CondAlways; t <= CondStadiumInPlay; t++ {
		if t.String() == dto.Type {
			c.Type = t
			found = true
			break
		}
	}
	if !found {
		return Condition{}, fmt.Errorf("unknown condition type %q", dto.Type)
	}
	c.Amount = dto.Value
	c.Stadium = dto.Stadium
	if dto.Status != "" {
		st, err := ParseStatusEffect(dto.Status)
		if err != nil {
			return Condition{}, err
		}
		c.Status = st
	}
	if dto.EnergyType != "" {
		et, err := ParseEnergyType(dto.EnergyType)
		if err != nil {
			return Condition{}, err
		}
		c.EnergyType = et
	}
	if err := c.Validate(); err != nil {
		return Condition{}, err
	}
	return c, nil
}

func parseAttackEffect(dto EffectDTO) (AttackEffect, error) {
	var e AttackEffect
	found := false
	for t := AttackDiscardEnergy; t <= AttackSwitchPokemon; t++ {
		if t.String() == dto.Type {
			e.Type = t
			found = true
			break
		}
	}
	if !found {
		return AttackEffect{}, fmt.Errorf("unknown attack effect type %q", dto.Type)
	}
	if err := fillEffectCommon(dto, &e.Target, &e.Status, &e.Duration, &e.Source, &e.Selector); err != nil {
		return AttackEffect{}, err
	}
	e.Amount = int(dto.Amount)
	e.Count = dto.Count
	conds, err := parseConditions(dto.Conditions)
	if err != nil {
		return AttackEffect{}, err
	}
	e.Conditions = conds
	if err := e.Validate(); err != nil {
		return AttackEffect{}, err
	}
	return e, nil
}

func parseAbilityEffect(dto EffectDTO) (AbilityEffect, error) {
	var e AbilityEffect
	found := false
	for t := AbilityHeal; t <= AbilityRetrieveFromDiscard; t++ {
		if t.String() == dto.Type {
			e.Type = t
			found = true
			break
		}
	}
	if !found {
		return AbilityEffect{}, fmt.Errorf("unknown ability effect type %q", dto.Type)
	}
	if err := fillEffectCommon(dto, &e.Target, &e.Status, &e.Duration, &e.Source, &e.Selector); err != nil {
		return AbilityEffect{}, err
	}
	e.Amount = int(dto.Amount)
	e.Count = dto.Count
	conds, err := parseConditions(dto.Conditions)
	if err != nil {
		return AbilityEffect{}, err
	}
	e.Conditions = conds
	// Validation happens after NormalizeAbilityEffects in parseAbility; a
	// DEFENDING heal target is still recoverable at this point.
	return e, nil
}

func parseTrainerEffect(dto EffectDTO) (TrainerEffect, error) {
	var e TrainerEffect
	found := false
	for t := TrainerHeal; t <= TrainerTradeCards; t++ {
		if t.String() == dto.Type {
			e.Type = t
			found = true
			break
		}
	}
	if !found {
		return TrainerEffect{}, fmt.Errorf("unknown trainer effect type %q", dto.Type)
	}
	var dur EffectDuration
	var src EnergySource
	if err := fillEffectCommon(dto, &e.Target, &e.Status, &dur, &src, &e.Selector); err != nil {
		return TrainerEffect{}, err
	}
	e.Amount = int(dto.Amount)
	e.Count = dto.Count
	conds, err := parseConditions(dto.Conditions)
	if err != nil {
		return TrainerEffect{}, err
	}
	e.Conditions = conds
	if err := e.Validate(); err != nil {
		return TrainerEffect{}, err
	}
	return e, nil
}

func fillEffectCommon(dto EffectDTO, target *EffectTarget, status *StatusEffect, dur *EffectDuration, src *EnergySource, sel *Selector) error {
	switch dto.Target {
	case "", "SELF", "self":
		*target = TargetSelf
	case "DEFENDING", "defending":
		*target = TargetDefending
	case "BENCHED", "benched":
		*target = TargetBenched
	case "ANY_YOURS", "any_yours":
		*target = TargetAnyYours
	default:
		return fmt.Errorf("unknown effect target %q", dto.Target)
	}
	if dto.Status != "" {
		st, err := ParseStatusEffect(dto.Status)
		if err != nil {
			return err
		}
		*status = st
	}
	switch dto.Duration {
	case "", "this_turn":
		*dur = DurationThisTurn
	case "next_turn":
		*dur = DurationNextTurn
	default:
		return fmt.Errorf("unknown effect duration %q", dto.Duration)
	}
	switch dto.Source {
	case "", "deck":
		*src = SourceDeck
	case "discard":
		*src = SourceDiscard
	case "hand":
		*src = SourceHand
	default:
		return fmt.Errorf("unknown energy source %q", dto.Source)
	}
	switch dto.Selector {
	case "", "choice":
		*sel = SelectChoice
	case "random":
		*sel = SelectRandom
	default:
		return fmt.Errorf("unknown selector %q", dto.Selector)
	}
	return nil
}

func parseResistanceModifier(s string) (int, error) {
	if !strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("resistance modifier must be negative, got %q", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid resistance modifier %q", s)
	}
	return n, nil
}

func parseCardRule(s string) (CardRule, error) {
	for r := RuleCannotRetreat; r <= RulePrizeTwo; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return RuleCannotRetreat, fmt.Errorf("unknown card rule %q", s)
}
