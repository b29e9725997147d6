// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package venues

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/venue-harvester/pkg/types"
)

func TestDefaultsAreValid(t *testing.T) {
	list := Defaults()
	valid, problems := Split(list)
	assert.Empty(t, problems)
	assert.Len(t, valid, len(list))

	paths := map[types.ResolutionPath]int{}
	for _, v := range list {
		paths[v.Path()]++
	}
	assert.Equal(t, 9, paths[types.PathSecondaryIndex])
	assert.Equal(t, 13, paths[types.PathSourceIDs])
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), f.Venues)
	assert.Empty(t, f.Keywords)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venues.yaml")
	body := `venues:
  - code: QIP
    name: Quantum Information Processing
    search: QIP
  - code: PRL
    name: Physical Review Letters
    source_ids: ["https://openalex.org/S24807848"]
    require_keywords: true
  - code: STOC
    dblp_venue: STOC
    require_keywords: true
keywords: [qubit, entanglement]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Venues, 3)
	assert.Equal(t, types.PathSearch, f.Venues[0].Path())
	assert.Equal(t, []string{"https://openalex.org/S24807848"}, f.Venues[1].SourceIDs)
	assert.True(t, f.Venues[1].RequireKeywordMatch)
	assert.Equal(t, types.PathSecondaryIndex, f.Venues[2].Path())
	assert.Equal(t, []string{"qubit", "entanglement"}, f.Keywords)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("venues: [unterminated"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("keywords: [x]\n"), 0o644))
	_, err = Load(empty)
	assert.ErrorContains(t, err, "lists no venues")
}

func TestSplit(t *testing.T) {
	list := []types.VenueDescriptor{
		{Code: "A", SearchTerm: "a"},
		{Code: "", SearchTerm: "nameless"},
		{Code: "B"},
		{Code: "A", SourceIDs: []string{"S1"}},
	}
	valid, problems := Split(list)
	require.Len(t, valid, 1)
	assert.Equal(t, "A", valid[0].DisplayName)
	require.Len(t, problems, 3)
	for _, p := range problems {
		assert.ErrorIs(t, p, ErrInvalidVenue)
	}
}

func TestSelect(t *testing.T) {
	list := Defaults()
	sel, unknown := Select(list, []string{"prl", "STOC", "NOPE"})
	require.Len(t, sel, 2)
	assert.Equal(t, "STOC", sel[0].Code)
	assert.Equal(t, "PRL", sel[1].Code)
	assert.Equal(t, []string{"NOPE"}, unknown)

	all, unknown := Select(list, nil)
	assert.Len(t, all, len(list))
	assert.Empty(t, unknown)
}
