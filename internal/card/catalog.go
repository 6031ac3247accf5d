package card

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// Catalog is the process-local card catalog. It is loaded explicitly at
// startup and read-only afterward from the engine's point of view; the
// mutex only guards load/clear against concurrent readers.
type Catalog struct {
	mu       sync.RWMutex
	byID     map[string]*Card
	byName   map[string][]*Card
	bySet    map[string][]*Card // key: setName, all loaded versions
	setCards map[string][]*Card // key: author/setName/version
	sets     map[string]SetMetadata
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byID:     make(map[string]*Card),
		byName:   make(map[string][]*Card),
		bySet:    make(map[string][]*Card),
		setCards: make(map[string][]*Card),
		sets:     make(map[string]SetMetadata),
	}
}

func setKey(author, setName, version string) string {
	return fmt.Sprintf("%s/%s/v%s", author, setName, version)
}

// Load registers a parsed set's cards under its metadata.
func (cat *Catalog) Load(cards []*Card, meta SetMetadata) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	key := setKey(meta.Author, meta.SetName, meta.Version)
	if _, ok := cat.sets[key]; ok {
		return fmt.Errorf("set %s already loaded", key)
	}
	for _, c := range cards {
		if _, dup := cat.byID[c.ID]; dup {
			return fmt.Errorf("duplicate card id %s", c.ID)
		}
	}
	for _, c := range cards {
		cat.byID[c.ID] = c
		cat.byName[c.Name] = append(cat.byName[c.Name], c)
		cat.bySet[meta.SetName] = append(cat.bySet[meta.SetName], c)
	}
	cat.setCards[key] = append([]*Card(nil), cards...)
	cat.sets[key] = meta
	return nil
}

// LoadSetFile reads, parses, and registers one set file. Errors are reported
// in the result; a failing file never aborts sibling loads.
func (cat *Catalog) LoadSetFile(path string) LoadSetResult {
	res := LoadSetResult{Filename: filepath.Base(path)}
	sf, cards, err := ReadSetFile(path)
	if sf != nil {
		res.Author = sf.Metadata.Author
		res.SetName = sf.Metadata.SetName
		res.Version = sf.Metadata.Version
	}
	if err != nil {
		res.Err = err
		return res
	}
	if err := cat.Load(cards, sf.Metadata); err != nil {
		res.Err = err
		return res
	}
	res.Success = true
	res.Loaded = len(cards)
	return res
}

// IsSetLoaded reports whether the given set version is registered.
func (cat *Catalog) IsSetLoaded(author, setName, version string) bool {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	_, ok := cat.sets[setKey(author, setName, version)]
	return ok
}

// ByID returns the card for a catalog id.
func (cat *Catalog) ByID(id string) (*Card, bool) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	c, ok := cat.byID[id]
	return c, ok
}

// ByName returns all cards sharing a printed name.
func (cat *Catalog) ByName(name string) []*Card {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	return append([]*Card(nil), cat.byName[name]...)
}

// BySet returns all cards in a named set.
func (cat *Catalog) BySet(setName string) []*Card {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	return append([]*Card(nil), cat.bySet[setName]...)
}

// Sets returns metadata for every loaded set, ordered by key.
func (cat *Catalog) Sets() []SetMetadata {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	keys := make([]string, 0, len(cat.sets))
	for k := range cat.sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]SetMetadata, 0, len(keys))
	for _, k := range keys {
		out = append(out, cat.sets[k])
	}
	return out
}

// Size returns the number of loaded cards.
func (cat *Catalog) Size() int {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	return len(cat.byID)
}

// Clear removes every loaded set.
func (cat *Catalog) Clear() {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	cat.byID = make(map[string]*Card)
	cat.byName = make(map[string][]*Card)
	cat.bySet = make(map[string][]*Card)
	cat.setCards = make(map[string][]*Card)
	cat.sets = make(map[string]SetMetadata)
}

// ClearSet removes a single set version and its cards. Other versions of
// the same set name stay loaded.
func (cat *Catalog) ClearSet(author, setName, version string) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	key := setKey(author, setName, version)
	meta, ok := cat.sets[key]
	if !ok {
		return
	}
	delete(cat.sets, key)

	for _, c := range cat.setCards[key] {
		cat.deleteCardLocked(c, meta.SetName)
	}
	delete(cat.setCards, key)
}

func (cat *Catalog) deleteCardLocked(c *Card, setName string) {
	delete(cat.byID, c.ID)
	same := cat.byName[c.Name]
	for i, other := range same {
		if other.ID == c.ID {
			cat.byName[c.Name] = append(same[:i], same[i+1:]...)
			break
		}
	}
	if len(cat.byName[c.Name]) == 0 {
		delete(cat.byName, c.Name)
	}
	inSet := cat.bySet[setName]
	for i, other := range inSet {
		if other.ID == c.ID {
			cat.bySet[setName] = append(inSet[:i], inSet[i+1:]...)
			break
		}
	}
	if len(cat.bySet[setName]) == 0 {
		delete(cat.bySet, setName)
	}
}

// ResolveEvolution finds the card a given evolution card evolves from, using
// the symbolic reference. Matching is by name (and pokemonNumber when set).
func (cat *Catalog) ResolveEvolution(ref EvolvesFrom) (*Card, bool) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	for _, c := range cat.byName[ref.Name] {
		if ref.PokemonNumber != 0 && c.PokemonNumber != ref.PokemonNumber {
			continue
		}
		return c, true
	}
	return nil, false
}
