package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/deck"
	"github.com/peterkuimelis/ptcgd/internal/repo"
)

// DeckService manages deck storage and validation.
type DeckService struct {
	decks   repo.DeckRepository
	catalog *card.Catalog
	logger  *zap.Logger
}

func NewDeckService(decks repo.DeckRepository, cat *card.Catalog, logger *zap.Logger) *DeckService {
	return &DeckService{decks: decks, catalog: cat, logger: logger}
}

// SaveDeck validates against the standard rules, records the result on the
// deck, and persists it. An invalid deck is still saved so the player can
// keep editing it.
func (s *DeckService) SaveDeck(ctx context.Context, d *deck.Deck) (deck.ValidationResult, error) {
	result := deck.Validate(d, deck.StandardRules)
	d.IsValid = result.IsValid
	if err := s.decks.Save(ctx, d); err != nil {
		return result, err
	}
	s.logger.Info("deck saved",
		zap.String("deckId", d.ID),
		zap.String("createdBy", d.CreatedBy),
		zap.Bool("valid", result.IsValid))
	return result, nil
}

// GetDeck fetches a deck by id.
func (s *DeckService) GetDeck(ctx context.Context, id string) (*deck.Deck, error) {
	return s.decks.FindByID(ctx, id)
}

// ListDecks returns decks, optionally scoped to a tournament.
func (s *DeckService) ListDecks(ctx context.Context, tournamentID string) ([]*deck.Deck, error) {
	return s.decks.FindAll(ctx, tournamentID)
}

// ListDecksByCreator returns a player's decks.
func (s *DeckService) ListDecksByCreator(ctx context.Context, createdBy string) ([]*deck.Deck, error) {
	return s.decks.FindByCreator(ctx, createdBy)
}

// DeleteDeck removes a deck.
func (s *DeckService) DeleteDeck(ctx context.Context, id string) error {
	if err := s.decks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deck deleted", zap.String("deckId", id))
	return nil
}
