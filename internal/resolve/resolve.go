// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns a venue descriptor into the catalog source
// identifiers to enumerate.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pdiddy/venue-harvester/internal/openalex"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

// MaxCandidates is how many sources one search term inspects.
const MaxCandidates = 25

// ErrNoResolutionPath is returned for descriptors with none of source ids,
// search term or secondary index key.
var ErrNoResolutionPath = errors.New("venue has neither source_ids, search nor dblp_venue")

// SourceSearcher finds catalog sources by free text.
type SourceSearcher interface {
	SearchSources(ctx context.Context, term string, maxCandidates int) ([]openalex.Source, error)
}

// Resolver resolves venue descriptors. Search results are memoised per term
// for the Resolver's lifetime.
type Resolver struct {
	searcher SourceSearcher
	w        io.Writer
	memo     *gocache.Cache
}

// New returns a Resolver that logs to w.
func New(searcher SourceSearcher, w io.Writer) *Resolver {
	if w == nil {
		w = io.Discard
	}
	return &Resolver{
		searcher: searcher,
		w:        w,
		memo:     gocache.New(gocache.NoExpiration, 0),
	}
}

// Resolve returns the ordered source identifiers for venue. Explicit ids are
// returned verbatim; a search term is resolved through the catalog; a
// secondary-index venue yields nil because the bridge enumerates it. A
// transport failure during search is logged and yields no candidates.
func (r *Resolver) Resolve(ctx context.Context, venue types.VenueDescriptor) ([]string, error) {
	switch venue.Path() {
	case types.PathSourceIDs:
		return append([]string(nil), venue.SourceIDs...), nil
	case types.PathSearch:
		return r.search(ctx, venue.SearchTerm), nil
	case types.PathSecondaryIndex:
		return nil, nil
	default:
		return nil, fmt.Errorf("venue %s: %w", venue.Code, ErrNoResolutionPath)
	}
}

func (r *Resolver) search(ctx context.Context, term string) []string {
	if v, ok := r.memo.Get(term); ok {
		return append([]string(nil), v.([]string)...)
	}

	candidates, err := r.searcher.SearchSources(ctx, term, MaxCandidates)
	if err != nil {
		fmt.Fprintf(r.w, "warning: source search for %q failed: %v\n", term, err)
		return nil
	}
	ids := FilterCandidates(term, candidates)
	r.memo.Set(term, ids, gocache.NoExpiration)
	return append([]string(nil), ids...)
}

// FilterCandidates keeps sources whose lowercased display name contains every
// whitespace-separated token of term, in any order.
func FilterCandidates(term string, candidates []openalex.Source) []string {
	tokens := strings.Fields(strings.ToLower(term))
	var ids []string
	for _, src := range candidates {
		if src.ID == "" {
			continue
		}
		name := strings.ToLower(src.DisplayName)
		ok := true
		for _, tok := range tokens {
			if !strings.Contains(name, tok) {
				ok = false
				break
			}
		}
		if ok {
			ids = append(ids, src.ID)
		}
	}
	return ids
}
