package repo

import (
	"context"
	"sync"

	"github.com/peterkuimelis/ptcgd/internal/deck"
	"github.com/peterkuimelis/ptcgd/internal/match"
)

// MemoryDeckRepository is the in-memory DeckRepository for development and
// tests.
type MemoryDeckRepository struct {
	mu    sync.RWMutex
	decks map[string]*deck.Deck
}

func NewMemoryDeckRepository() *MemoryDeckRepository {
	return &MemoryDeckRepository{decks: make(map[string]*deck.Deck)}
}

func (r *MemoryDeckRepository) FindByID(_ context.Context, id string) (*deck.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (r *MemoryDeckRepository) FindAll(_ context.Context, tournamentID string) ([]*deck.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*deck.Deck
	for _, d := range r.decks {
		if tournamentID == "" || d.TournamentID == tournamentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *MemoryDeckRepository) FindByCreator(_ context.Context, createdBy string) ([]*deck.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*deck.Deck
	for _, d := range r.decks {
		if d.CreatedBy == createdBy {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *MemoryDeckRepository) Save(_ context.Context, d *deck.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decks[d.ID] = d
	return nil
}

func (r *MemoryDeckRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.decks[id]; !ok {
		return ErrNotFound
	}
	delete(r.decks, id)
	return nil
}

// MemoryMatchRepository is the in-memory MatchRepository.
type MemoryMatchRepository struct {
	mu      sync.RWMutex
	matches map[string]*match.Match
}

func NewMemoryMatchRepository() *MemoryMatchRepository {
	return &MemoryMatchRepository{matches: make(map[string]*match.Match)}
}

func (r *MemoryMatchRepository) FindByID(_ context.Context, id string) (*match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

func (r *MemoryMatchRepository) FindAll(_ context.Context, tournamentID, playerID string) ([]*match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*match.Match
	for _, m := range r.matches {
		if tournamentID != "" && m.TournamentID != tournamentID {
			continue
		}
		if playerID != "" && m.PlayerIndex(playerID) < 0 {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MemoryMatchRepository) FindActiveByPlayer(_ context.Context, playerID string) ([]*match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*match.Match
	for _, m := range r.matches {
		if m.PlayerIndex(playerID) >= 0 && !m.State.Terminal() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemoryMatchRepository) Save(_ context.Context, m *match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[m.ID] = m
	return nil
}

func (r *MemoryMatchRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok {
		return ErrNotFound
	}
	delete(r.matches, id)
	return nil
}
