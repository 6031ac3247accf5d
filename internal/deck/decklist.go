package deck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/ptcgd/internal/card"
)

// DecklistFile is the top-level YAML structure for prebuilt decklists.
type DecklistFile struct {
	Decks []DecklistEntry `yaml:"decks"`
}

// DecklistEntry is a single named decklist.
type DecklistEntry struct {
	Name  string         `yaml:"name"`
	Cards []DecklistCard `yaml:"cards"`
}

// DecklistCard references a catalog card by id with a copy count.
type DecklistCard struct {
	CardID  string `yaml:"cardId"`
	SetName string `yaml:"setName"`
	Count   int    `yaml:"count"`
}

// ParseDecklistFile parses a YAML decklist file into decks owned by the
// given player, resolving each card against the catalog.
func ParseDecklistFile(path, createdBy string, cat *card.Catalog) ([]*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var df DecklistFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse decklist YAML: %w", err)
	}

	var decks []*Deck
	for _, entry := range df.Decks {
		d := New(entry.Name, createdBy)
		for _, dc := range entry.Cards {
			if _, ok := cat.ByID(dc.CardID); !ok {
				return nil, fmt.Errorf("decklist %q: unknown card %s", entry.Name, dc.CardID)
			}
			if err := d.AddCard(dc.CardID, dc.SetName, dc.Count); err != nil {
				return nil, fmt.Errorf("decklist %q: %w", entry.Name, err)
			}
		}
		decks = append(decks, d)
	}
	return decks, nil
}
