// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline coordinates one harvest run: it resolves every configured
// venue, enumerates its works directly or through the DBLP bridge, folds them
// into a shared aggregate and writes the dataset.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/venue-harvester/internal/aggregate"
	"github.com/pdiddy/venue-harvester/internal/archive"
	"github.com/pdiddy/venue-harvester/internal/bridge"
	"github.com/pdiddy/venue-harvester/internal/cache"
	"github.com/pdiddy/venue-harvester/internal/dataset"
	"github.com/pdiddy/venue-harvester/internal/relevance"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

// SourceResolver maps a venue to catalog source identifiers.
type SourceResolver interface {
	Resolve(ctx context.Context, venue types.VenueDescriptor) ([]string, error)
}

// WorkSource enumerates a source's works over a year range.
type WorkSource interface {
	Works(ctx context.Context, sourceID string, y0, y1 int, requireKeywords bool) iter.Seq2[types.Work, error]
}

// VenueBridge harvests a venue through the secondary index.
type VenueBridge interface {
	Harvest(ctx context.Context, venue types.VenueDescriptor, y0, y1 int, emit func(types.Work)) bridge.Stats
}

// Recorder archives runs and accepted works.
type Recorder interface {
	BeginRun(ctx context.Context, cfg types.HarvestConfig) (string, error)
	RecordWork(ctx context.Context, runID, venue string, w types.Work) error
	FinishRun(ctx context.Context, runID string, totals archive.RunTotals) error
}

// Config holds everything one run needs besides its collaborators.
type Config struct {
	Harvest types.HarvestConfig
	Output  types.OutputConfig
	Venues  []types.VenueDescriptor
}

// Pipeline wires the run's collaborators. Resolver, Works and Bridge are
// required; Cache and Archive are optional.
type Pipeline struct {
	Resolver SourceResolver
	Works    WorkSource
	Bridge   VenueBridge
	Cache    *cache.Cache
	Archive  Recorder
	Filter   *relevance.Filter
	Log      io.Writer
}

// VenueReport summarizes one venue's harvest.
type VenueReport struct {
	Code        string
	Path        types.ResolutionPath
	Included    bool
	Sources     int
	Added       int
	Duplicates  int
	NoYear      int
	OutOfDomain int
	Errors      int
	Bridge      *bridge.Stats
}

// Report summarizes a run.
type Report struct {
	RunID    string
	Venues   []VenueReport
	Outcomes map[aggregate.AddOutcome]int
	Result   aggregate.Result
	Dataset  types.Dataset
}

// Run harvests every venue, saves the cache and writes the dataset. The
// dataset is written even when ctx is cancelled mid-run; the returned error
// then wraps ctx.Err().
func (p *Pipeline) Run(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.Harvest.Validate(); err != nil {
		return Report{}, fmt.Errorf("invalid harvest config: %w", err)
	}
	jsonPath := cfg.Output.JSONPath
	if jsonPath == "" {
		jsonPath = "data.json"
	}

	w := p.Log
	if w == nil {
		w = io.Discard
	}
	w = &lockedWriter{w: w}

	agg := aggregate.New(p.Filter)
	var rep Report
	if p.Filter != nil {
		fmt.Fprintf(w, "[relevance] matching %d keywords: %s\n", len(p.Filter.Keywords()), strings.Join(p.Filter.Keywords(), ", "))
	}

	if p.Archive != nil {
		id, err := p.Archive.BeginRun(ctx, cfg.Harvest)
		if err != nil {
			fmt.Fprintf(w, "warning: archive disabled for this run: %v\n", err)
		} else {
			rep.RunID = id
		}
	}

	workers := cfg.Harvest.Workers
	if workers <= 0 {
		workers = 1
	}
	rep.Venues = make([]VenueReport, len(cfg.Venues))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, v := range cfg.Venues {
		g.Go(func() error {
			rep.Venues[i] = p.harvestVenue(ctx, w, agg, rep.RunID, cfg.Harvest, v)
			return nil
		})
	}
	g.Wait()

	rep.Outcomes = agg.Outcomes()
	fmt.Fprintf(w, "[summary] works: %d added, %d duplicate, %d without year, %d out of domain\n",
		rep.Outcomes[aggregate.Added], rep.Outcomes[aggregate.Duplicate],
		rep.Outcomes[aggregate.NoYear], rep.Outcomes[aggregate.OutOfDomain])

	if p.Cache != nil {
		if err := p.Cache.Save(); err != nil {
			fmt.Fprintf(w, "[cache] %v\n", err)
		} else {
			fmt.Fprintf(w, "[cache] saved cache to %s\n", p.Cache.Path())
		}
	}

	rep.Result = agg.Finalize(cfg.Harvest.Thresholds)
	rep.Result.Summarize(w)

	var venues []types.DatasetVenue
	for i, v := range cfg.Venues {
		if rep.Venues[i].Included {
			venues = append(venues, types.DatasetVenue{Code: v.Code, Name: v.DisplayName})
		}
	}
	rep.Dataset = dataset.Build(venues, rep.Result)

	if err := dataset.WriteJSON(jsonPath, rep.Dataset); err != nil {
		return rep, err
	}
	fmt.Fprintf(w, "Wrote JSON dataset to %s\n", jsonPath)
	if cfg.Output.JSPath != "" {
		if err := dataset.WriteJS(cfg.Output.JSPath, rep.Dataset); err != nil {
			return rep, err
		}
		fmt.Fprintf(w, "Wrote JS dataset to %s\n", cfg.Output.JSPath)
	}

	if p.Archive != nil && rep.RunID != "" {
		totals := archive.RunTotals{
			Institutions: len(rep.Dataset.Institutions),
			Authors:      len(rep.Dataset.Authors),
		}
		// The run is stamped finished even after cancellation.
		if err := p.Archive.FinishRun(context.WithoutCancel(ctx), rep.RunID, totals); err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return rep, fmt.Errorf("harvest interrupted: %w", err)
	}
	return rep, nil
}

func (p *Pipeline) harvestVenue(ctx context.Context, w io.Writer, agg *aggregate.Aggregator, runID string, hc types.HarvestConfig, v types.VenueDescriptor) VenueReport {
	vr := VenueReport{Code: v.Code, Path: v.Path()}
	if ctx.Err() != nil {
		return vr
	}

	accept := func(work types.Work) {
		switch agg.Add(work, v.Code, v.RequireKeywordMatch) {
		case aggregate.Added:
			vr.Added++
			if p.Archive != nil && runID != "" {
				if err := p.Archive.RecordWork(ctx, runID, v.Code, work); err != nil {
					fmt.Fprintf(w, "warning: %v\n", err)
				}
			}
		case aggregate.Duplicate:
			vr.Duplicates++
		case aggregate.NoYear:
			vr.NoYear++
		case aggregate.OutOfDomain:
			vr.OutOfDomain++
		}
	}

	switch vr.Path {
	case types.PathSecondaryIndex:
		fmt.Fprintf(w, "[venue] %s: harvesting via DBLP venue '%s'\n", v.Code, v.SecondaryIndexKey)
		vr.Included = true
		st := p.Bridge.Harvest(ctx, v, hc.MinYear, hc.MaxYear, accept)
		vr.Bridge = &st

	case types.PathSourceIDs, types.PathSearch:
		ids, err := p.Resolver.Resolve(ctx, v)
		if err != nil {
			fmt.Fprintf(w, "warning: [venue] %s: %v; skipping\n", v.Code, err)
			return vr
		}
		if len(ids) == 0 {
			fmt.Fprintf(w, "[venue] %s: no sources found for search='%s'; skipping\n", v.Code, v.SearchTerm)
			return vr
		}
		if vr.Path == types.PathSearch {
			fmt.Fprintf(w, "[venue] %s: resolved %d source id(s) for '%s'\n", v.Code, len(ids), v.SearchTerm)
		}
		vr.Included = true
		vr.Sources = len(ids)

		for _, id := range ids {
			if ctx.Err() != nil {
				break
			}
			fmt.Fprintf(w, "[venue] %s: harvesting works from source %s\n", v.Code, id)
			for work, err := range p.Works.Works(ctx, id, hc.MinYear, hc.MaxYear, v.RequireKeywordMatch) {
				if err != nil {
					vr.Errors++
					fmt.Fprintf(w, "warning: [venue] %s: %v\n", v.Code, err)
					continue
				}
				accept(work)
			}
		}

	default:
		fmt.Fprintf(w, "warning: [venue] %s: neither 'source_ids', 'search' nor 'dblp_venue' provided; skipping\n", v.Code)
		return vr
	}

	fmt.Fprintf(w, "[venue] %s: %d works added, %d duplicates, %d out of domain\n",
		v.Code, vr.Added, vr.Duplicates, vr.OutOfDomain)
	return vr
}

// lockedWriter serializes log lines from concurrent venue workers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
