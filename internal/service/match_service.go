// Package service coordinates repositories, the match state machine, and
// the action executor behind a transport-agnostic API. Each method locks
// the target match, applies one atomic action, persists, and returns the
// caller's projection.
package service

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/deck"
	"github.com/peterkuimelis/ptcgd/internal/match"
	"github.com/peterkuimelis/ptcgd/internal/repo"
)

// MatchService is the application-facing match API.
type MatchService struct {
	matches  repo.MatchRepository
	decks    repo.DeckRepository
	catalog  *card.Catalog
	executor *match.Executor
	logger   *zap.Logger
	seedFn   func() int64
}

// NewMatchService wires the service. The seed function feeds each match's
// PRNG; tests override it for determinism.
func NewMatchService(matches repo.MatchRepository, decks repo.DeckRepository, cat *card.Catalog, logger *zap.Logger) *MatchService {
	return &MatchService{
		matches:  matches,
		decks:    decks,
		catalog:  cat,
		executor: match.NewExecutor(cat),
		logger:   logger,
		seedFn:   func() int64 { return time.Now().UnixNano() ^ rand.Int63() },
	}
}

// SetSeedFunc overrides match seeding, for deterministic replays.
func (s *MatchService) SetSeedFunc(fn func() int64) { s.seedFn = fn }

// CreateMatch opens a match with the first player seated.
func (s *MatchService) CreateMatch(ctx context.Context, playerID, deckID, tournamentID string) (*match.Match, error) {
	if _, err := s.decks.FindByID(ctx, deckID); err != nil {
		return nil, err
	}
	m := match.New(playerID, deckID, tournamentID)
	if err := s.matches.Save(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("match created",
		zap.String("matchId", m.ID),
		zap.String("playerId", playerID),
		zap.String("deckId", deckID))
	return m, nil
}

// JoinMatch seats the second player and validates both decks.
func (s *MatchService) JoinMatch(ctx context.Context, matchID, playerID, deckID string) (*match.Match, error) {
	m, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	m.Lock()
	defer m.Unlock()

	if err := m.Join(playerID, deckID); err != nil {
		return nil, err
	}
	decks, err := s.loadDecks(ctx, m)
	if err != nil {
		return nil, err
	}
	if err := m.ValidateDecks(decks, s.catalog); err != nil {
		s.logger.Warn("deck validation failed",
			zap.String("matchId", m.ID),
			zap.Error(err))
		_ = s.matches.Save(ctx, m)
		return nil, err
	}
	if err := s.matches.Save(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("player joined",
		zap.String("matchId", m.ID),
		zap.String("playerId", playerID),
		zap.String("state", m.State.String()))
	return m, nil
}

func (s *MatchService) loadDecks(ctx context.Context, m *match.Match) ([2]*deck.Deck, error) {
	var out [2]*deck.Deck
	for i, p := range m.Players {
		d, err := s.decks.FindByID(ctx, p.DeckID)
		if err != nil {
			return out, err
		}
		out[i] = d
	}
	return out, nil
}

// StartMatch begins setup. firstPlayer < 0 leaves the opening coin flip to
// decide seating.
func (s *MatchService) StartMatch(ctx context.Context, matchID string, firstPlayer int) (*match.Match, error) {
	m, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	m.Lock()
	defer m.Unlock()

	seed := s.seedFn()
	if err := m.Start(seed, firstPlayer); err != nil {
		return nil, err
	}
	if err := s.matches.Save(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("match started",
		zap.String("matchId", m.ID),
		zap.Int64("seed", seed),
		zap.Int("firstPlayer", firstPlayer))
	return m, nil
}

// GetState returns the viewer's projection of the match.
func (s *MatchService) GetState(ctx context.Context, matchID, playerID string) (*match.Projection, error) {
	m, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	m.Lock()
	defer m.Unlock()
	return match.Project(m, s.executor.Filters, playerID)
}

// ExecuteAction applies one action and returns the caller's updated
// projection. Failed actions change nothing.
func (s *MatchService) ExecuteAction(ctx context.Context, matchID, playerID, actionType string, data map[string]any) (*match.Projection, error) {
	m, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	m.Lock()
	defer m.Unlock()

	if err := s.executor.Execute(m, playerID, actionType, data); err != nil {
		s.logger.Debug("action rejected",
			zap.String("matchId", matchID),
			zap.String("playerId", playerID),
			zap.String("actionType", actionType),
			zap.Error(err))
		return nil, err
	}
	if err := s.matches.Save(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("action executed",
		zap.String("matchId", matchID),
		zap.String("playerId", playerID),
		zap.String("actionType", actionType),
		zap.String("state", m.State.String()))
	return match.Project(m, s.executor.Filters, playerID)
}

// CancelMatch cancels a lobby-stage match and deletes the record.
func (s *MatchService) CancelMatch(ctx context.Context, matchID, playerID, reason string) error {
	m, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return err
	}
	m.Lock()
	defer m.Unlock()

	if err := m.Cancel(playerID, reason); err != nil {
		return err
	}
	if err := s.matches.Delete(ctx, matchID); err != nil {
		return err
	}
	s.logger.Info("match cancelled",
		zap.String("matchId", matchID),
		zap.String("playerId", playerID),
		zap.String("reason", reason))
	return nil
}
