package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDecklist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseDecklistFile(t *testing.T) {
	cat := testCatalog(t)
	path := writeDecklist(t, `
decks:
  - name: Lightning Starter
    cards:
      - cardId: a-base-v1-sparkit--1
        setName: base
        count: 4
      - cardId: a-base-v1-lightning-energy--2
        setName: base
        count: 10
  - name: Energy Only
    cards:
      - cardId: a-base-v1-lightning-energy--2
        setName: base
        count: 6
`)

	decks, err := ParseDecklistFile(path, "house", cat)
	require.NoError(t, err)
	require.Len(t, decks, 2)

	assert.Equal(t, "Lightning Starter", decks[0].Name)
	assert.Equal(t, "house", decks[0].CreatedBy)
	assert.Equal(t, 14, decks[0].GetTotalCardCount())
	assert.Equal(t, 6, decks[1].GetTotalCardCount())
}

func TestParseDecklistFileUnknownCard(t *testing.T) {
	cat := testCatalog(t)
	path := writeDecklist(t, `
decks:
  - name: Broken
    cards:
      - cardId: a-base-v1-missing--7
        setName: base
        count: 2
`)

	_, err := ParseDecklistFile(path, "house", cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown card")
}

func TestParseDecklistFileBadYAML(t *testing.T) {
	cat := testCatalog(t)
	path := writeDecklist(t, "decks: [notamap")

	_, err := ParseDecklistFile(path, "house", cat)
	require.Error(t, err)
}
