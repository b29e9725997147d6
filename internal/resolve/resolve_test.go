// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/venue-harvester/internal/openalex"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

type fakeSearcher struct {
	sources []openalex.Source
	err     error
	calls   int
	terms   []string
}

func (f *fakeSearcher) SearchSources(_ context.Context, term string, max int) ([]openalex.Source, error) {
	f.calls++
	f.terms = append(f.terms, term)
	return f.sources, f.err
}

func TestResolveExplicitIDs(t *testing.T) {
	fs := &fakeSearcher{}
	r := New(fs, nil)
	v := types.VenueDescriptor{Code: "PRL", SourceIDs: []string{"S2", "S1"}, SearchTerm: "ignored"}

	ids, err := r.Resolve(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, []string{"S2", "S1"}, ids)
	assert.Zero(t, fs.calls, "explicit ids must not hit the network")
}

func TestResolveSearchTerm(t *testing.T) {
	fs := &fakeSearcher{sources: []openalex.Source{
		{ID: "S1", DisplayName: "Symposium on Theory of Computing 2019"},
		{ID: "S2", DisplayName: "Theory of Computing"},
		{ID: "S3", DisplayName: "Journal of Computing"},
		{ID: "", DisplayName: "Theory of Computing (no id)"},
		{ID: "S4", DisplayName: "COMPUTING THEORY letters"},
	}}
	r := New(fs, nil)
	v := types.VenueDescriptor{Code: "STOC", SearchTerm: "Theory  Computing"}

	ids, err := r.Resolve(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2", "S4"}, ids)

	// Second resolution of the same term is served from the memo.
	ids, err = r.Resolve(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2", "S4"}, ids)
	assert.Equal(t, 1, fs.calls)
}

func TestResolveSearchFailureIsEmpty(t *testing.T) {
	var buf bytes.Buffer
	fs := &fakeSearcher{err: errors.New("connection reset")}
	r := New(fs, &buf)

	ids, err := r.Resolve(context.Background(), types.VenueDescriptor{Code: "X", SearchTerm: "qip"})
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Contains(t, buf.String(), "warning: source search")

	// Failures are not memoised.
	_, _ = r.Resolve(context.Background(), types.VenueDescriptor{Code: "X", SearchTerm: "qip"})
	assert.Equal(t, 2, fs.calls)
}

func TestResolveSecondaryIndexDefers(t *testing.T) {
	fs := &fakeSearcher{}
	ids, err := New(fs, nil).Resolve(context.Background(), types.VenueDescriptor{Code: "STOC", SecondaryIndexKey: "STOC"})
	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.Zero(t, fs.calls)
}

func TestResolveNoPath(t *testing.T) {
	_, err := New(&fakeSearcher{}, nil).Resolve(context.Background(), types.VenueDescriptor{Code: "BAD"})
	assert.ErrorIs(t, err, ErrNoResolutionPath)
}

func TestFilterCandidatesEmptyTerm(t *testing.T) {
	srcs := []openalex.Source{{ID: "S1", DisplayName: "Anything"}}
	assert.Equal(t, []string{"S1"}, FilterCandidates("   ", srcs))
}
