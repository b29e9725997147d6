// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists catalog resolutions between runs. Two tables map a
// bare DOI or a normalized title key to the slimmed catalog work it resolved
// to. The on-disk format is {"doi": {...}, "title": {...}}.
package cache

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"github.com/segmentio/encoding/json"

	"github.com/pdiddy/venue-harvester/internal/fsutil"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

// DefaultPath is the cache file used when none is configured.
const DefaultPath = "openalex_cache.json"

// Cache holds the DOI and title tables. Entries never expire and the tables
// are unbounded. It is safe for concurrent use.
type Cache struct {
	path  string
	doi   *gocache.Cache
	title *gocache.Cache
}

// New returns an empty cache that saves to path.
func New(path string) *Cache {
	if path == "" {
		path = DefaultPath
	}
	return &Cache{
		path:  path,
		doi:   gocache.New(gocache.NoExpiration, 0),
		title: gocache.New(gocache.NoExpiration, 0),
	}
}

// Load reads the cache file at path. A missing file yields an empty cache; an
// unreadable or corrupt file is logged to w and also yields an empty cache.
func Load(path string, w io.Writer) *Cache {
	if w == nil {
		w = io.Discard
	}
	c := New(path)

	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return c
	}
	if err != nil {
		fmt.Fprintf(w, "[cache] failed to load cache (%v); starting fresh\n", err)
		return c
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		fmt.Fprintf(w, "[cache] failed to load cache (%v); starting fresh\n", err)
		return c
	}
	for k, v := range f.DOI {
		c.doi.Set(k, v.toWork(), gocache.NoExpiration)
	}
	for k, v := range f.Title {
		c.title.Set(k, v.toWork(), gocache.NoExpiration)
	}
	fmt.Fprintf(w, "[cache] loaded %d DOI and %d title entries from %s\n", c.doi.ItemCount(), c.title.ItemCount(), c.path)
	return c
}

// Path returns the file the cache saves to.
func (c *Cache) Path() string { return c.path }

// Save writes both tables atomically.
func (c *Cache) Save() error {
	f := fileFormat{
		DOI:   snapshot(c.doi),
		Title: snapshot(c.title),
	}
	err := fsutil.WriteAtomic(c.path, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(f)
	})
	if err != nil {
		return fmt.Errorf("saving cache: %w", err)
	}
	return nil
}

// GetDOI returns the work cached for a bare DOI.
func (c *Cache) GetDOI(doi string) (types.Work, bool) {
	return get(c.doi, doi)
}

// PutDOI records the work a DOI resolved to.
func (c *Cache) PutDOI(doi string, w types.Work) {
	c.doi.Set(doi, slim(w), gocache.NoExpiration)
}

// GetTitle returns the work cached for a title and optional year hint.
func (c *Cache) GetTitle(title string, yearHint *int) (types.Work, bool) {
	return get(c.title, TitleKey(title, yearHint))
}

// PutTitle records the work a title search resolved to.
func (c *Cache) PutTitle(title string, yearHint *int, w types.Work) {
	c.title.Set(TitleKey(title, yearHint), slim(w), gocache.NoExpiration)
}

// Sizes returns the number of DOI and title entries.
func (c *Cache) Sizes() (doi, title int) {
	return c.doi.ItemCount(), c.title.ItemCount()
}

// TitleKey normalizes a title lookup: lowercased trimmed title, followed by
// "|<year>" when a year hint is present.
func TitleKey(title string, yearHint *int) string {
	key := strings.ToLower(strings.TrimSpace(title))
	if yearHint != nil {
		key += "|" + strconv.Itoa(*yearHint)
	}
	return key
}

func get(table *gocache.Cache, key string) (types.Work, bool) {
	v, ok := table.Get(key)
	if !ok {
		return types.Work{}, false
	}
	return v.(types.Work), true
}

// slim drops the fields the cache does not persist so in-memory hits behave
// the same as hits loaded from disk.
func slim(w types.Work) types.Work {
	w.Abstract = ""
	return w
}

func snapshot(table *gocache.Cache) map[string]slimWork {
	items := table.Items()
	out := make(map[string]slimWork, len(items))
	for k, it := range items {
		out[k] = fromWork(it.Object.(types.Work))
	}
	return out
}
