// Package repo defines the persistence contracts and their in-memory
// implementations. The interfaces are storage-agnostic; a durable backend
// plugs in behind the same contracts.
package repo

import (
	"context"
	"errors"

	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/deck"
	"github.com/peterkuimelis/ptcgd/internal/match"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// CardRepository answers catalog queries. card.Catalog satisfies it.
type CardRepository interface {
	ByID(cardID string) (*card.Card, bool)
	ByName(name string) []*card.Card
	BySet(setName string) []*card.Card
	IsSetLoaded(author, setName, version string) bool
	Sets() []card.SetMetadata
}

// DeckRepository stores player decks.
type DeckRepository interface {
	FindByID(ctx context.Context, id string) (*deck.Deck, error)
	FindAll(ctx context.Context, tournamentID string) ([]*deck.Deck, error)
	FindByCreator(ctx context.Context, createdBy string) ([]*deck.Deck, error)
	Save(ctx context.Context, d *deck.Deck) error
	Delete(ctx context.Context, id string) error
}

// MatchRepository stores matches.
type MatchRepository interface {
	FindByID(ctx context.Context, id string) (*match.Match, error)
	FindAll(ctx context.Context, tournamentID, playerID string) ([]*match.Match, error)
	FindActiveByPlayer(ctx context.Context, playerID string) ([]*match.Match, error)
	Save(ctx context.Context, m *match.Match) error
	Delete(ctx context.Context, id string) error
}
