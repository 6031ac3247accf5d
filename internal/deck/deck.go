// Package deck holds the deck entity, composition rules, and decklist files.
package deck

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgd/internal/card"
)

// Entry is one (cardId, setName) line of a deck with its copy count.
type Entry struct {
	CardID   string
	SetName  string
	Quantity int
}

// Deck is a player-built deck. It is mutable by its owner only while not
// bound to an active match; the engine treats it as read-only.
type Deck struct {
	ID           string
	Name         string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TournamentID string
	Cards        []Entry // (CardID, SetName) unique; Quantity >= 1
	IsValid      bool
}

// New creates an empty deck owned by a player.
func New(name, createdBy string) *Deck {
	now := time.Now().UTC()
	return &Deck{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *Deck) touch() {
	d.UpdatedAt = time.Now().UTC()
}

func (d *Deck) find(cardID, setName string) int {
	for i, e := range d.Cards {
		if e.CardID == cardID && e.SetName == setName {
			return i
		}
	}
	return -1
}

// AddCard adds copies of a card, merging with an existing entry.
func (d *Deck) AddCard(cardID, setName string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be >= 1, got %d", quantity)
	}
	if i := d.find(cardID, setName); i >= 0 {
		d.Cards[i].Quantity += quantity
	} else {
		d.Cards = append(d.Cards, Entry{CardID: cardID, SetName: setName, Quantity: quantity})
	}
	d.touch()
	return nil
}

// RemoveCard removes a card entry entirely.
func (d *Deck) RemoveCard(cardID, setName string) bool {
	i := d.find(cardID, setName)
	if i < 0 {
		return false
	}
	d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
	d.touch()
	return true
}

// SetCardQuantity sets the copy count for a card, adding or removing the
// entry as needed. Zero removes.
func (d *Deck) SetCardQuantity(cardID, setName string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must be >= 0, got %d", quantity)
	}
	if quantity == 0 {
		d.RemoveCard(cardID, setName)
		return nil
	}
	if i := d.find(cardID, setName); i >= 0 {
		d.Cards[i].Quantity = quantity
	} else {
		d.Cards = append(d.Cards, Entry{CardID: cardID, SetName: setName, Quantity: quantity})
	}
	d.touch()
	return nil
}

// ClearCards removes every entry.
func (d *Deck) ClearCards() {
	d.Cards = nil
	d.touch()
}

// GetTotalCardCount returns the summed quantity over all entries.
func (d *Deck) GetTotalCardCount() int {
	total := 0
	for _, e := range d.Cards {
		total += e.Quantity
	}
	return total
}

// GetCardQuantity returns the copy count for a card, zero if absent.
func (d *Deck) GetCardQuantity(cardID, setName string) int {
	if i := d.find(cardID, setName); i >= 0 {
		return d.Cards[i].Quantity
	}
	return 0
}

// HasCard reports whether the deck contains the card.
func (d *Deck) HasCard(cardID, setName string) bool {
	return d.find(cardID, setName) >= 0
}

// GetUniqueSets returns the distinct set names in entry order.
func (d *Deck) GetUniqueSets() []string {
	seen := make(map[string]bool)
	var sets []string
	for _, e := range d.Cards {
		if !seen[e.SetName] {
			seen[e.SetName] = true
			sets = append(sets, e.SetName)
		}
	}
	return sets
}

// Materialize expands the deck into one card.Card per copy, resolving
// against the catalog. Fails on any unknown card id.
func (d *Deck) Materialize(cat *card.Catalog) ([]*card.Card, error) {
	var cards []*card.Card
	for _, e := range d.Cards {
		c, ok := cat.ByID(e.CardID)
		if !ok {
			return nil, fmt.Errorf("deck %s: unknown card %s", d.ID, e.CardID)
		}
		for i := 0; i < e.Quantity; i++ {
			cards = append(cards, c)
		}
	}
	return cards, nil
}
