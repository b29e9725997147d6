// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate folds catalog works into per-author, per-institution
// publication lists and applies the publication-count thresholds.
package aggregate

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/venue-harvester/internal/region"
	"github.com/pdiddy/venue-harvester/internal/relevance"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

// Defaults substituted for missing catalog fields.
const (
	UntitledTitle      = "(untitled)"
	UnknownAuthor      = "Unknown"
	UnknownInstitution = "Unknown institution"
)

// AddOutcome reports what Add did with a work.
type AddOutcome int

const (
	// Added means the work was in-domain and contributed its authorships.
	Added AddOutcome = iota
	// Duplicate means the work id was already seen in this run.
	Duplicate
	// NoYear means the work carries no publication year.
	NoYear
	// OutOfDomain means the relevance filter rejected the work.
	OutOfDomain
)

func (o AddOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	case NoYear:
		return "no-year"
	case OutOfDomain:
		return "out-of-domain"
	default:
		return fmt.Sprintf("AddOutcome(%d)", int(o))
	}
}

// Institution is the first-seen name and region of an institution.
type Institution struct {
	ID     string
	Name   string
	Region string
}

// Entry is one (author, institution) pair and its publications.
type Entry struct {
	AuthorID      string
	AuthorName    string
	InstitutionID string
	Publications  []types.PublicationRecord
}

type entryKey struct {
	author, institution string
}

// Aggregator accumulates works across all venues of one run. It is safe for
// concurrent use.
type Aggregator struct {
	mu           sync.Mutex
	filter       *relevance.Filter
	seen         map[string]struct{}
	institutions map[string]Institution
	entries      map[entryKey]*Entry
	order        []entryKey
	outcomes     map[AddOutcome]int
}

// New returns an empty Aggregator. A nil filter selects the default keywords.
func New(filter *relevance.Filter) *Aggregator {
	if filter == nil {
		filter = relevance.New(nil)
	}
	return &Aggregator{
		filter:       filter,
		seen:         make(map[string]struct{}),
		institutions: make(map[string]Institution),
		entries:      make(map[entryKey]*Entry),
		outcomes:     make(map[AddOutcome]int),
	}
}

// Add folds one work into the aggregate. The work id joins the seen set
// before the year and relevance checks, so a rejected work is never
// reconsidered. Works without an id are never treated as duplicates.
func (a *Aggregator) Add(work types.Work, venueCode string, requireKeywords bool) AddOutcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.add(work, venueCode, requireKeywords)
	a.outcomes[out]++
	return out
}

func (a *Aggregator) add(work types.Work, venueCode string, requireKeywords bool) AddOutcome {
	if work.ID != "" {
		if _, ok := a.seen[work.ID]; ok {
			return Duplicate
		}
		a.seen[work.ID] = struct{}{}
	}
	if !work.HasYear() {
		return NoYear
	}
	if !a.filter.Matches(work, requireKeywords) {
		return OutOfDomain
	}

	title := strings.TrimSpace(work.Title)
	if title == "" {
		title = UntitledTitle
	}
	rec := types.PublicationRecord{Year: *work.Year, Venue: venueCode, Title: title}

	for _, au := range work.Authorships {
		if au.AuthorID == "" || len(au.Institutions) == 0 {
			continue
		}
		name := au.AuthorName
		if name == "" {
			name = UnknownAuthor
		}
		for _, inst := range au.Institutions {
			if inst.ID == "" {
				continue
			}
			if _, ok := a.institutions[inst.ID]; !ok {
				instName := inst.DisplayName
				if instName == "" {
					instName = UnknownInstitution
				}
				a.institutions[inst.ID] = Institution{
					ID:     inst.ID,
					Name:   instName,
					Region: region.Classify(inst.CountryCode),
				}
			}
			key := entryKey{au.AuthorID, inst.ID}
			e, ok := a.entries[key]
			if !ok {
				e = &Entry{AuthorID: au.AuthorID, AuthorName: name, InstitutionID: inst.ID}
				a.entries[key] = e
				a.order = append(a.order, key)
			}
			if !containsRecord(e.Publications, rec) {
				e.Publications = append(e.Publications, rec)
			}
		}
	}
	return Added
}

func containsRecord(recs []types.PublicationRecord, r types.PublicationRecord) bool {
	for _, p := range recs {
		if p == r {
			return true
		}
	}
	return false
}

// Outcomes returns how many works ended in each outcome.
func (a *Aggregator) Outcomes() map[AddOutcome]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[AddOutcome]int, len(a.outcomes))
	for k, v := range a.outcomes {
		out[k] = v
	}
	return out
}

// Counts records the sizes of the aggregate at each filtering stage.
type Counts struct {
	Institutions            int
	Pairs                   int
	PairsAfterAuthorFilter  int
	InstitutionsAfterFilter int
	PairsAfterFilter        int
}

// Result is the filtered aggregate.
type Result struct {
	Institutions map[string]Institution
	Entries      []Entry
	Counts       Counts
}

// Finalize applies the thresholds to a snapshot of the aggregate, in order:
// the per-author minimum, the per-institution minimum (zero disables), and
// the top-K institution cap (zero disables, ties broken by id). Entries whose
// institution did not survive are dropped. The Aggregator is not modified.
func (a *Aggregator) Finalize(th types.Thresholds) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	res := Result{Institutions: make(map[string]Institution)}
	res.Counts.Institutions = len(a.institutions)
	res.Counts.Pairs = len(a.entries)

	var kept []Entry
	for _, k := range a.order {
		e := a.entries[k]
		if len(e.Publications) < th.MinPapersPerAuthor {
			continue
		}
		cp := *e
		cp.Publications = append([]types.PublicationRecord(nil), e.Publications...)
		kept = append(kept, cp)
	}
	res.Counts.PairsAfterAuthorFilter = len(kept)

	totals := make(map[string]int)
	for _, e := range kept {
		totals[e.InstitutionID] += len(e.Publications)
	}

	var survivors []string
	for id, n := range totals {
		if th.MinPapersPerInstitution > 0 && n < th.MinPapersPerInstitution {
			continue
		}
		survivors = append(survivors, id)
	}

	sort.Slice(survivors, func(i, j int) bool {
		ni, nj := totals[survivors[i]], totals[survivors[j]]
		if ni != nj {
			return ni > nj
		}
		return survivors[i] < survivors[j]
	})
	if th.MaxInstitutions > 0 && len(survivors) > th.MaxInstitutions {
		survivors = survivors[:th.MaxInstitutions]
	}
	for _, id := range survivors {
		res.Institutions[id] = a.institutions[id]
	}

	for _, e := range kept {
		if _, ok := res.Institutions[e.InstitutionID]; ok {
			res.Entries = append(res.Entries, e)
		}
	}
	res.Counts.InstitutionsAfterFilter = len(res.Institutions)
	res.Counts.PairsAfterFilter = len(res.Entries)
	return res
}

// Summarize writes the run summary lines.
func (r Result) Summarize(w io.Writer) {
	fmt.Fprintf(w, "[summary] Institutions found: %d\n", r.Counts.Institutions)
	fmt.Fprintf(w, "[summary] Author+institution pairs (after min_papers filter): %d\n", r.Counts.PairsAfterAuthorFilter)
	fmt.Fprintf(w, "[summary] Institutions after institution-level filters: %d\n", r.Counts.InstitutionsAfterFilter)
	fmt.Fprintf(w, "[summary] Author+institution pairs after institution-level filters: %d\n", r.Counts.PairsAfterFilter)
}
