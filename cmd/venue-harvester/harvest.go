package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/venue-harvester/internal/archive"
	"github.com/pdiddy/venue-harvester/internal/bridge"
	"github.com/pdiddy/venue-harvester/internal/cache"
	"github.com/pdiddy/venue-harvester/internal/dblp"
	"github.com/pdiddy/venue-harvester/internal/harvest"
	"github.com/pdiddy/venue-harvester/internal/openalex"
	"github.com/pdiddy/venue-harvester/internal/pipeline"
	"github.com/pdiddy/venue-harvester/internal/relevance"
	"github.com/pdiddy/venue-harvester/internal/resolve"
	"github.com/pdiddy/venue-harvester/internal/venues"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest venues and write the rankings dataset",
	Long: `Harvest resolves every configured venue to OpenAlex sources (or DBLP for
conference venues), enumerates their works in the year range, keeps the
quantum-relevant ones, and writes the author/institution dataset.

The resolution cache is loaded at start and saved at the end. Interrupting a
run still saves the cache and writes the partial dataset.`,
	RunE: runHarvest,
}

func init() {
	f := harvestCmd.Flags()
	f.Int("min-year", 2005, "minimum publication year (inclusive)")
	f.Int("max-year", 2025, "maximum publication year (inclusive)")
	f.String("mailto", "", "contact email for the OpenAlex polite pool (default: .secrets/openalex-email)")
	f.Int("min-papers-per-author", 1, "drop author/institution pairs with fewer publications")
	f.Int("min-papers-per-institution", 3, "drop institutions with fewer total publications (0 disables)")
	f.Int("max-institutions", 1000, "keep only the top-K institutions by publications (0 disables)")
	f.Int("max-pages-per-source", 0, "page cap per source query (0 means no cap)")
	f.Duration("delay", 0, "courtesy delay between throttled OpenAlex calls (default 200ms, negative disables)")
	f.Duration("timeout", 0, "HTTP request timeout (default 30s)")
	f.Int("workers", 1, "venues harvested concurrently")
	f.String("output-js", "", "also write the dataset as window.dataset = ...; to this file")
	f.StringSlice("keywords", nil, "relevance keywords (default: built-in quantum list)")
	f.StringSlice("venue", nil, "harvest only these venue codes")

	bindFlags(harvestCmd, "min-year", "max-year", "mailto", "min-papers-per-author",
		"min-papers-per-institution", "max-institutions", "max-pages-per-source",
		"delay", "timeout", "workers", "output-js", "keywords")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hc := types.HarvestConfig{
		MinYear:           viper.GetInt("min_year"),
		MaxYear:           viper.GetInt("max_year"),
		MaxPagesPerSource: viper.GetInt("max_pages_per_source"),
		Workers:           viper.GetInt("workers"),
		Thresholds: types.Thresholds{
			MinPapersPerAuthor:      viper.GetInt("min_papers_per_author"),
			MinPapersPerInstitution: viper.GetInt("min_papers_per_institution"),
			MaxInstitutions:         viper.GetInt("max_institutions"),
		},
	}
	if err := hc.Validate(); err != nil {
		return err
	}
	out := types.OutputConfig{
		JSONPath:    viper.GetString("output_json"),
		JSPath:      viper.GetString("output_js"),
		CachePath:   viper.GetString("cache_path"),
		ArchivePath: viper.GetString("archive_path"),
	}

	vf, err := venues.Load(viper.GetString("venues_file"))
	if err != nil {
		return err
	}
	list, problems := venues.Split(vf.Venues)
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "warning: %v; skipping\n", p)
	}
	codes, _ := cmd.Flags().GetStringSlice("venue")
	list, unknown := venues.Select(list, codes)
	for _, c := range unknown {
		fmt.Fprintf(os.Stderr, "warning: unknown venue code %q\n", c)
	}
	if len(list) == 0 {
		return fmt.Errorf("no venues to harvest")
	}

	keywords := viper.GetStringSlice("keywords")
	if len(keywords) == 0 {
		keywords = vf.Keywords
	}
	filter := relevance.New(keywords)

	httpCfg := types.HTTPConfig{
		Timeout:   viper.GetDuration("timeout"),
		UserAgent: defaultUserAgent,
	}
	catalog := openalex.NewClient(types.CatalogConfig{
		HTTPConfig: httpCfg,
		Mailto:     loadedSecrets.Mailto(viper.GetString("mailto")),
		Delay:      viper.GetDuration("delay"),
	})
	if catalog.Mailto == "" {
		fmt.Fprintln(os.Stderr, "warning: no mailto configured; OpenAlex may rate-limit anonymous clients")
	}

	c := cache.Load(out.CachePath, os.Stderr)
	it := &harvest.Iterator{
		Lister:   catalog,
		Filter:   filter,
		MaxPages: hc.MaxPagesPerSource,
		Log:      os.Stderr,
	}
	p := &pipeline.Pipeline{
		Resolver: resolve.New(catalog, os.Stderr),
		Works:    it,
		Bridge: &bridge.Bridge{
			Index:   dblp.NewClient(httpCfg),
			Catalog: catalog,
			Cache:   c,
			Filter:  filter,
			Log:     os.Stderr,
		},
		Cache:  c,
		Filter: filter,
		Log:    os.Stderr,
	}

	if out.ArchivePath != "" {
		store, err := archive.Open(out.ArchivePath)
		if err != nil {
			return err
		}
		defer store.Close()
		p.Archive = store
	}

	fmt.Fprintf(os.Stderr, "Harvesting %d venue(s), years %d-%d\n", len(list), hc.MinYear, hc.MaxYear)
	rep, err := p.Run(ctx, pipeline.Config{Harvest: hc, Output: out, Venues: list})
	if n := it.CapExceeded(); n > 0 {
		fmt.Fprintf(os.Stderr, "[summary] %d single-year range(s) exceeded the result cap; some works were not reachable\n", n)
	}
	fmt.Fprintf(os.Stderr, "[summary] %d listing pages read\n", it.PagesRead())
	if rep.RunID != "" {
		fmt.Fprintf(os.Stderr, "[summary] archived as run %s\n", rep.RunID)
	}
	if err != nil && ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "interrupted; partial dataset written")
	}
	return err
}
