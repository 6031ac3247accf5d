package deck

import (
	"fmt"

	"github.com/peterkuimelis/ptcgd/internal/card"
)

// Rules are the basic composition limits.
type Rules struct {
	MinDeckSize      int
	MaxDeckSize      int
	MaxCopiesPerCard int
}

// StandardRules matches tournament play: exactly 60 cards, 4 copies max.
var StandardRules = Rules{MinDeckSize: 60, MaxDeckSize: 60, MaxCopiesPerCard: 4}

// ValidationResult reports composition problems. Errors make the deck
// unplayable; warnings do not.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.IsValid = false
}

func (r *ValidationResult) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the deck against the basic composition limits.
func Validate(d *Deck, rules Rules) ValidationResult {
	res := ValidationResult{IsValid: true}

	total := d.GetTotalCardCount()
	if total < rules.MinDeckSize {
		res.addError("deck has %d cards, minimum is %d", total, rules.MinDeckSize)
	}
	if total > rules.MaxDeckSize {
		res.addError("deck has %d cards, maximum is %d", total, rules.MaxDeckSize)
	}
	for _, e := range d.Cards {
		if e.Quantity > rules.MaxCopiesPerCard {
			res.addError("card %s has %d copies, maximum is %d", e.CardID, e.Quantity, rules.MaxCopiesPerCard)
		}
	}
	return res
}

// TournamentRule is a pluggable composition check layered on top of the
// basic validation. Rules need the catalog to inspect card attributes.
type TournamentRule interface {
	Name() string
	Check(d *Deck, cat *card.Catalog, res *ValidationResult)
}

// ValidateForTournament runs the basic validation plus every tournament rule.
func ValidateForTournament(d *Deck, cat *card.Catalog, rules Rules, tournamentRules []TournamentRule) ValidationResult {
	res := Validate(d, rules)
	for _, tr := range tournamentRules {
		tr.Check(d, cat, &res)
	}
	return res
}

// --- Built-in tournament rules ---

// BasicPokemonRequired rejects decks with no Basic Pokemon: such a deck can
// never field an active Pokemon.
type BasicPokemonRequired struct{}

func (BasicPokemonRequired) Name() string { return "basic-pokemon-required" }

func (BasicPokemonRequired) Check(d *Deck, cat *card.Catalog, res *ValidationResult) {
	for _, e := range d.Cards {
		c, ok := cat.ByID(e.CardID)
		if ok && c.IsBasic() {
			return
		}
	}
	res.addError("deck contains no basic pokemon")
}

// BannedCards rejects decks containing any banned card id.
type BannedCards struct {
	CardIDs []string
}

func (BannedCards) Name() string { return "banned-cards" }

func (b BannedCards) Check(d *Deck, cat *card.Catalog, res *ValidationResult) {
	banned := make(map[string]bool, len(b.CardIDs))
	for _, id := range b.CardIDs {
		banned[id] = true
	}
	for _, e := range d.Cards {
		if banned[e.CardID] {
			res.addError("card %s is banned", e.CardID)
		}
	}
}

// EnergyMinimum warns when a deck carries too few energy cards to reliably
// power its attacks.
type EnergyMinimum struct {
	Min int
}

func (EnergyMinimum) Name() string { return "energy-minimum" }

func (m EnergyMinimum) Check(d *Deck, cat *card.Catalog, res *ValidationResult) {
	count := 0
	for _, e := range d.Cards {
		c, ok := cat.ByID(e.CardID)
		if ok && c.CardType == card.TypeEnergy {
			count += e.Quantity
		}
	}
	if count < m.Min {
		res.addWarning("deck has %d energy cards, recommended minimum is %d", count, m.Min)
	}
}
