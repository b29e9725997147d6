// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bridge harvests a conference venue through the secondary index and
// resolves each paper to its catalog work, by DOI where one is known and by
// year-windowed title search otherwise.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/venue-harvester/internal/cache"
	"github.com/pdiddy/venue-harvester/internal/dblp"
	"github.com/pdiddy/venue-harvester/internal/openalex"
	"github.com/pdiddy/venue-harvester/internal/relevance"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

// TitleSearchResults is how many catalog candidates a title search inspects.
const TitleSearchResults = 5

// PaperIndex lists a venue's papers from the secondary index.
type PaperIndex interface {
	VenuePapers(ctx context.Context, key string, y0, y1 int, w io.Writer) []dblp.Paper
}

// WorkLookup resolves papers against the catalog.
type WorkLookup interface {
	WorkByDOI(ctx context.Context, doi string) (types.Work, error)
	SearchWorks(ctx context.Context, text string, from, to, maxResults int) ([]types.Work, error)
}

// Stats summarizes one venue's bridge harvest.
type Stats struct {
	Candidates      int
	FilteredByTitle int
	Resolved        int
	Unresolved      int
	OutOfRange      int
	CacheHits       int
}

// Bridge resolves secondary-index papers into catalog works.
type Bridge struct {
	Index   PaperIndex
	Catalog WorkLookup
	Cache   *cache.Cache
	Filter  *relevance.Filter
	Log     io.Writer
}

func (b *Bridge) log() io.Writer {
	if b.Log == nil {
		return io.Discard
	}
	return b.Log
}

func (b *Bridge) filter() *relevance.Filter {
	if b.Filter == nil {
		return relevance.New(nil)
	}
	return b.Filter
}

// Harvest enumerates venue's papers published in [y0, y1], resolves them and
// passes each resolved work with a year in range to emit. Works are not
// deduplicated here; emit owns the global seen set.
func (b *Bridge) Harvest(ctx context.Context, venue types.VenueDescriptor, y0, y1 int, emit func(types.Work)) Stats {
	var st Stats
	papers := b.Index.VenuePapers(ctx, venue.SecondaryIndexKey, y0, y1, b.log())
	st.Candidates = len(papers)

	for _, p := range papers {
		if ctx.Err() != nil {
			break
		}
		if venue.RequireKeywordMatch && !b.filter().TitleMatches(p.Title) {
			st.FilteredByTitle++
			continue
		}

		work, ok := b.resolve(ctx, p, &st)
		if !ok {
			st.Unresolved++
			fmt.Fprintf(b.log(), "[dblp] %s: could not resolve catalog work for %q (%d)\n",
				venue.Code, truncate(p.Title, 80), p.Year)
			continue
		}
		st.Resolved++

		if work.Title == "" {
			work.Title = p.Title
		}
		if work.Year == nil {
			work.Year = types.YearPtr(p.Year)
		}
		if *work.Year < y0 || *work.Year > y1 {
			st.OutOfRange++
			continue
		}
		emit(work)
	}

	fmt.Fprintf(b.log(), "[dblp] %s: %d candidates, %d filtered by title, %d resolved via catalog\n",
		venue.Code, st.Candidates, st.FilteredByTitle, st.Resolved)
	return st
}

// resolve tries the DOI first and falls back to a title search.
func (b *Bridge) resolve(ctx context.Context, p dblp.Paper, st *Stats) (types.Work, bool) {
	if p.DOI != "" {
		if w, ok := b.byDOI(ctx, p.DOI, st); ok {
			return w, true
		}
	}
	return b.byTitle(ctx, p.Title, p.Year, st)
}

func (b *Bridge) byDOI(ctx context.Context, doi string, st *Stats) (types.Work, bool) {
	if b.Cache != nil {
		if w, ok := b.Cache.GetDOI(doi); ok {
			st.CacheHits++
			return w, true
		}
	}
	w, err := b.Catalog.WorkByDOI(ctx, doi)
	if errors.Is(err, openalex.ErrNotFound) {
		return types.Work{}, false
	}
	if err != nil {
		fmt.Fprintf(b.log(), "warning: DOI %s: %v\n", doi, err)
		return types.Work{}, false
	}
	// Bridged works match on title only, cached or not.
	w.Abstract = ""
	if b.Cache != nil {
		b.Cache.PutDOI(doi, w)
	}
	return w, true
}

func (b *Bridge) byTitle(ctx context.Context, title string, yearHint int, st *Stats) (types.Work, bool) {
	if title == "" {
		return types.Work{}, false
	}
	hint := types.YearPtr(yearHint)
	if b.Cache != nil {
		if w, ok := b.Cache.GetTitle(title, hint); ok {
			st.CacheHits++
			return w, true
		}
	}
	results, err := b.Catalog.SearchWorks(ctx, title, yearHint-1, yearHint+1, TitleSearchResults)
	if err != nil {
		fmt.Fprintf(b.log(), "warning: title search failed for %q: %v\n", truncate(title, 80), err)
		return types.Work{}, false
	}
	if len(results) == 0 {
		return types.Work{}, false
	}
	chosen := PickByYear(results, yearHint)
	chosen.Abstract = ""
	if b.Cache != nil {
		b.Cache.PutTitle(title, hint, chosen)
	}
	return chosen, true
}

// PickByYear returns the first result published within one year of hint, or
// the first result when none is.
func PickByYear(results []types.Work, hint int) types.Work {
	for _, w := range results {
		if w.Year == nil {
			continue
		}
		if d := *w.Year - hint; d >= -1 && d <= 1 {
			return w
		}
	}
	return results[0]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
