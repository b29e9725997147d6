// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest enumerates every catalog work of a source within a year
// range, splitting the range whenever the catalog's result cap would truncate
// the listing.
package harvest

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
	"sync/atomic"

	"github.com/pdiddy/venue-harvester/internal/httputil"
	"github.com/pdiddy/venue-harvester/internal/openalex"
	"github.com/pdiddy/venue-harvester/internal/relevance"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

const (
	// ResultCap is the deepest offset the catalog serves for one query.
	ResultCap = 10000

	// DefaultPerPage is the page size used when Iterator.PerPage is zero.
	DefaultPerPage = 200
)

// WorksLister fetches one page of a filtered works listing.
type WorksLister interface {
	ListWorks(ctx context.Context, filter string, page, perPage int) (openalex.WorksPage, error)
}

// Iterator pages through a source's works. It is safe for concurrent use.
type Iterator struct {
	Lister WorksLister

	// Filter supplies the title prefilter used when keywords are required.
	// Nil selects the default keyword list.
	Filter *relevance.Filter

	PerPage  int
	MaxPages int // zero means no cap beyond ResultCap
	Log      io.Writer

	capExceeded atomic.Int64
	pagesRead   atomic.Int64
}

// CapExceeded returns how many single-year ranges still exceeded ResultCap.
func (it *Iterator) CapExceeded() int { return int(it.capExceeded.Load()) }

// PagesRead returns how many listing pages were fetched.
func (it *Iterator) PagesRead() int { return int(it.pagesRead.Load()) }

// BuildFilter returns the works filter for one source and year range.
func BuildFilter(sourceID string, y0, y1 int, titleSearch string) string {
	f := fmt.Sprintf("primary_location.source.id:%s,from_publication_date:%d-01-01,to_publication_date:%d-12-31",
		sourceID, y0, y1)
	if titleSearch != "" {
		f += ",title.search:" + titleSearch
	}
	return f
}

// PageLimit returns the number of pages worth requesting for a query that
// reported count results.
func PageLimit(count, perPage, maxPages int) int {
	limit := ResultCap / perPage
	if maxPages > 0 && maxPages < limit {
		limit = maxPages
	}
	if fromCount := (count + perPage - 1) / perPage; fromCount < limit {
		limit = fromCount
	}
	return limit
}

// Works yields every work of sourceID published in [y0, y1]. A transport
// failure is yielded as the error value and ends the affected range.
func (it *Iterator) Works(ctx context.Context, sourceID string, y0, y1 int, requireKeywords bool) iter.Seq2[types.Work, error] {
	return func(yield func(types.Work, error) bool) {
		var titleSearch string
		if requireKeywords {
			f := it.Filter
			if f == nil {
				f = relevance.New(nil)
			}
			titleSearch = f.TitleSearchExpression()
		}
		it.walk(ctx, sourceID, y0, y1, titleSearch, yield)
	}
}

func (it *Iterator) perPage() int {
	if it.PerPage > 0 {
		return it.PerPage
	}
	return DefaultPerPage
}

func (it *Iterator) log() io.Writer {
	if it.Log == nil {
		return io.Discard
	}
	return it.Log
}

// walk enumerates one year range and reports whether the consumer wants more.
func (it *Iterator) walk(ctx context.Context, sourceID string, y0, y1 int, titleSearch string, yield func(types.Work, error) bool) bool {
	perPage := it.perPage()
	filter := BuildFilter(sourceID, y0, y1, titleSearch)

	first, err := it.Lister.ListWorks(ctx, filter, 1, perPage)
	if err != nil {
		return yield(types.Work{}, fmt.Errorf("listing %s [%d,%d]: %w", sourceID, y0, y1, err))
	}
	it.pagesRead.Add(1)

	count := first.Meta.Count
	if count > ResultCap {
		if y0 < y1 {
			mid := (y0 + y1) / 2
			if !it.walk(ctx, sourceID, y0, mid, titleSearch, yield) {
				return false
			}
			return it.walk(ctx, sourceID, mid+1, y1, titleSearch, yield)
		}
		it.capExceeded.Add(1)
		fmt.Fprintf(it.log(), "warning: cap-exceeded source %s year %d reports %d works, only %d reachable\n",
			sourceID, y0, count, ResultCap)
	}

	limit := PageLimit(count, perPage, it.MaxPages)
	works := first.Works
	for page := 1; ; page++ {
		if len(works) == 0 {
			return true
		}
		for _, w := range works {
			if !yield(w, nil) {
				return false
			}
		}
		if page+1 > limit {
			return true
		}

		next, err := it.Lister.ListWorks(ctx, filter, page+1, perPage)
		if httputil.IsStatus(err, http.StatusConflict, http.StatusBadRequest) {
			fmt.Fprintf(it.log(), "warning: source %s years [%d,%d] page %d out of range; stopping pagination\n",
				sourceID, y0, y1, page+1)
			return true
		}
		if err != nil {
			return yield(types.Work{}, fmt.Errorf("listing %s [%d,%d] page %d: %w", sourceID, y0, y1, page+1, err))
		}
		it.pagesRead.Add(1)
		works = next.Works
	}
}
