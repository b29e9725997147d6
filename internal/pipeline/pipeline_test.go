// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/venue-harvester/internal/aggregate"
	"github.com/pdiddy/venue-harvester/internal/archive"
	"github.com/pdiddy/venue-harvester/internal/bridge"
	"github.com/pdiddy/venue-harvester/internal/cache"
	"github.com/pdiddy/venue-harvester/internal/dataset"
	"github.com/pdiddy/venue-harvester/internal/relevance"
	"github.com/pdiddy/venue-harvester/internal/resolve"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

type fakeResolver struct {
	search map[string][]string
}

func (f *fakeResolver) Resolve(_ context.Context, v types.VenueDescriptor) ([]string, error) {
	switch v.Path() {
	case types.PathSourceIDs:
		return v.SourceIDs, nil
	case types.PathSearch:
		return f.search[v.SearchTerm], nil
	case types.PathSecondaryIndex:
		return nil, nil
	}
	return nil, resolve.ErrNoResolutionPath
}

type fakeWorks struct {
	bySource map[string][]types.Work
	fail     map[string]error
}

func (f *fakeWorks) Works(_ context.Context, sourceID string, y0, y1 int, _ bool) iter.Seq2[types.Work, error] {
	return func(yield func(types.Work, error) bool) {
		for _, w := range f.bySource[sourceID] {
			if !yield(w, nil) {
				return
			}
		}
		if err := f.fail[sourceID]; err != nil {
			yield(types.Work{}, err)
		}
	}
}

type fakeBridge struct {
	works map[string][]types.Work
}

func (f *fakeBridge) Harvest(_ context.Context, v types.VenueDescriptor, y0, y1 int, emit func(types.Work)) bridge.Stats {
	for _, w := range f.works[v.SecondaryIndexKey] {
		emit(w)
	}
	return bridge.Stats{Candidates: len(f.works[v.SecondaryIndexKey]), Resolved: len(f.works[v.SecondaryIndexKey])}
}

func qwork(id, title string, year int, authorID, instID, country string) types.Work {
	return types.Work{
		ID: id, Title: title, Year: types.YearPtr(year),
		Authorships: []types.Authorship{{
			AuthorID: authorID, AuthorName: "Author " + authorID,
			Institutions: []types.InstitutionRef{{ID: instID, DisplayName: "Inst " + instID, CountryCode: country}},
		}},
	}
}

var testVenues = []types.VenueDescriptor{
	{Code: "PRL", DisplayName: "Physical Review Letters", SourceIDs: []string{"S-prl"}, RequireKeywordMatch: true},
	{Code: "QIP", DisplayName: "QIP", SearchTerm: "qip"},
	{Code: "STOC", DisplayName: "STOC", SecondaryIndexKey: "STOC", RequireKeywordMatch: true},
	{Code: "BAD", DisplayName: "Nothing"},
	{Code: "GONE", DisplayName: "Unresolvable", SearchTerm: "gone"},
}

func newTestPipeline(t *testing.T) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return &Pipeline{
		Resolver: &fakeResolver{search: map[string][]string{"qip": {"S-qip1", "S-qip2"}}},
		Works: &fakeWorks{bySource: map[string][]types.Work{
			"S-prl":  {qwork("W1", "Quantum error correction", 2020, "A1", "I1", "US"), qwork("W2", "Superconductivity", 2020, "A2", "I2", "DE")},
			"S-qip1": {qwork("W3", "Anything goes", 2019, "A1", "I1", "US")},
			"S-qip2": {qwork("W3", "Anything goes", 2019, "A1", "I1", "US"), {ID: "W4", Title: "No year"}},
		}},
		Bridge: &fakeBridge{works: map[string][]types.Work{
			"STOC": {qwork("W1", "Quantum error correction", 2020, "A1", "I1", "US"), qwork("W5", "Qubit lower bounds", 2021, "A3", "I3", "JP")},
		}},
		Cache: cache.New(filepath.Join(t.TempDir(), "cache.json")),
		Log:   &buf,
	}, &buf
}

func TestRunEndToEnd(t *testing.T) {
	p, buf := newTestPipeline(t)
	p.Filter = relevance.New([]string{"quantum", "qubit"})
	dir := t.TempDir()
	cfg := Config{
		Harvest: types.HarvestConfig{MinYear: 2018, MaxYear: 2022, Thresholds: types.Thresholds{MinPapersPerAuthor: 1}},
		Output: types.OutputConfig{
			JSONPath: filepath.Join(dir, "data.json"),
			JSPath:   filepath.Join(dir, "data.js"),
		},
		Venues: testVenues,
	}

	rep, err := p.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []types.DatasetVenue{
		{Code: "PRL", Name: "Physical Review Letters"},
		{Code: "QIP", Name: "QIP"},
		{Code: "STOC", Name: "STOC"},
	}, rep.Dataset.Venues)

	byCode := map[string]VenueReport{}
	for _, vr := range rep.Venues {
		byCode[vr.Code] = vr
	}
	assert.Equal(t, 1, byCode["PRL"].Added)
	assert.Equal(t, 1, byCode["PRL"].OutOfDomain)
	assert.Equal(t, 2, byCode["QIP"].Sources)
	assert.Equal(t, 1, byCode["QIP"].Added)
	assert.Equal(t, 1, byCode["QIP"].Duplicates)
	assert.Equal(t, 1, byCode["QIP"].NoYear)
	assert.Equal(t, 1, byCode["STOC"].Duplicates, "W1 was already harvested from PRL")
	assert.Equal(t, 1, byCode["STOC"].Added)
	require.NotNil(t, byCode["STOC"].Bridge)
	assert.False(t, byCode["BAD"].Included)
	assert.False(t, byCode["GONE"].Included)

	// A1@I1 has W1 (PRL) and W3 (QIP); A3@I3 has W5 (STOC).
	require.Len(t, rep.Dataset.Authors, 2)
	assert.Equal(t, "Author A1", rep.Dataset.Authors[0].Name)
	assert.Len(t, rep.Dataset.Authors[0].Publications, 2)
	assert.Len(t, rep.Dataset.Institutions, 2)

	onDisk, err := dataset.ReadJSON(cfg.Output.JSONPath)
	require.NoError(t, err)
	assert.Equal(t, rep.Dataset, onDisk)
	_, err = os.Stat(cfg.Output.JSPath)
	assert.NoError(t, err)
	_, err = os.Stat(p.Cache.Path())
	assert.NoError(t, err, "cache is saved at the end of the run")

	log := buf.String()
	assert.Contains(t, log, "[venue] STOC: harvesting via DBLP venue 'STOC'")
	assert.Contains(t, log, "[venue] QIP: resolved 2 source id(s) for 'qip'")
	assert.Contains(t, log, "[venue] GONE: no sources found for search='gone'; skipping")
	assert.Contains(t, log, "warning: [venue] BAD")
	assert.Contains(t, log, "[summary] Institutions found: 2")
	assert.Contains(t, log, "[relevance] matching 2 keywords: quantum, qubit")
	assert.Contains(t, log, "[summary] works: 3 added, 2 duplicate, 1 without year, 1 out of domain")
	assert.Equal(t, map[aggregate.AddOutcome]int{
		aggregate.Added: 3, aggregate.Duplicate: 2, aggregate.NoYear: 1, aggregate.OutOfDomain: 1,
	}, rep.Outcomes)
}

func TestRunParallelMatchesSequential(t *testing.T) {
	cfg := func(dir string, workers int) Config {
		return Config{
			Harvest: types.HarvestConfig{MinYear: 2018, MaxYear: 2022, Workers: workers},
			Output:  types.OutputConfig{JSONPath: filepath.Join(dir, "data.json")},
			Venues:  testVenues[:2],
		}
	}
	seq, _ := newTestPipeline(t)
	par, _ := newTestPipeline(t)

	a, err := seq.Run(context.Background(), cfg(t.TempDir(), 1))
	require.NoError(t, err)
	b, err := par.Run(context.Background(), cfg(t.TempDir(), 4))
	require.NoError(t, err)
	assert.Equal(t, a.Dataset, b.Dataset)
}

func TestRunThresholds(t *testing.T) {
	p, _ := newTestPipeline(t)
	rep, err := p.Run(context.Background(), Config{
		Harvest: types.HarvestConfig{MinYear: 2018, MaxYear: 2022, Thresholds: types.Thresholds{MinPapersPerAuthor: 2}},
		Output:  types.OutputConfig{JSONPath: filepath.Join(t.TempDir(), "data.json")},
		Venues:  testVenues,
	})
	require.NoError(t, err)
	require.Len(t, rep.Dataset.Authors, 1)
	assert.Equal(t, "Author A1", rep.Dataset.Authors[0].Name)
}

func TestRunIteratorErrorsAreCounted(t *testing.T) {
	p, buf := newTestPipeline(t)
	p.Works.(*fakeWorks).fail = map[string]error{"S-prl": errors.New("HTTP 500")}

	rep, err := p.Run(context.Background(), Config{
		Harvest: types.HarvestConfig{MinYear: 2018, MaxYear: 2022},
		Output:  types.OutputConfig{JSONPath: filepath.Join(t.TempDir(), "data.json")},
		Venues:  testVenues[:1],
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Venues[0].Errors)
	assert.Contains(t, buf.String(), "warning: [venue] PRL: HTTP 500")
}

func TestRunCancelledStillWritesOutput(t *testing.T) {
	p, _ := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "data.json")
	_, err := p.Run(ctx, Config{
		Harvest: types.HarvestConfig{MinYear: 2018, MaxYear: 2022},
		Output:  types.OutputConfig{JSONPath: path},
		Venues:  testVenues,
	})
	assert.ErrorIs(t, err, context.Canceled)

	ds, readErr := dataset.ReadJSON(path)
	require.NoError(t, readErr)
	assert.Empty(t, ds.Authors)
}

func TestRunInvalidConfig(t *testing.T) {
	p, _ := newTestPipeline(t)
	path := filepath.Join(t.TempDir(), "data.json")
	_, err := p.Run(context.Background(), Config{
		Harvest: types.HarvestConfig{MinYear: 2022, MaxYear: 2018},
		Output:  types.OutputConfig{JSONPath: path},
	})
	assert.ErrorContains(t, err, "invalid harvest config")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunUnwritableOutput(t *testing.T) {
	p, _ := newTestPipeline(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := p.Run(context.Background(), Config{
		Harvest: types.HarvestConfig{MinYear: 2018, MaxYear: 2022},
		Output:  types.OutputConfig{JSONPath: filepath.Join(blocker, "data.json")},
	})
	assert.Error(t, err)
}

func TestRunRecordsArchive(t *testing.T) {
	store, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	defer store.Close()

	p, _ := newTestPipeline(t)
	p.Archive = store
	rep, err := p.Run(context.Background(), Config{
		Harvest: types.HarvestConfig{MinYear: 2018, MaxYear: 2022},
		Output:  types.OutputConfig{JSONPath: filepath.Join(t.TempDir(), "data.json")},
		Venues:  testVenues,
	})
	require.NoError(t, err)
	require.NotEmpty(t, rep.RunID)

	run, err := store.LastRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rep.RunID, run.ID)
	assert.Equal(t, 3, run.Works)
	assert.Equal(t, len(rep.Dataset.Authors), run.Authors)

	counts, err := store.VenueCounts(context.Background(), rep.RunID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []archive.VenueCount{{Venue: "PRL", Works: 1}, {Venue: "QIP", Works: 1}, {Venue: "STOC", Works: 1}}, counts)
}
