// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "venue-harvester/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CatalogConfig holds settings for the primary catalog client.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline"`

	// Mailto is the contact address sent as the identity token for the
	// catalog's polite pool.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// Delay is the courtesy delay between throttled catalog calls (default 200ms).
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// Thresholds controls which aggregated entries survive into the dataset.
type Thresholds struct {
	// MinPapersPerAuthor drops author/institution pairs with fewer publications.
	MinPapersPerAuthor int `json:"min_papers_per_author" yaml:"min_papers_per_author"`

	// MinPapersPerInstitution drops institutions whose summed publication
	// count is lower. Zero disables the filter.
	MinPapersPerInstitution int `json:"min_papers_per_institution" yaml:"min_papers_per_institution"`

	// MaxInstitutions keeps only the top-K institutions by publication count.
	// Zero disables the cap.
	MaxInstitutions int `json:"max_institutions" yaml:"max_institutions"`
}

// HarvestConfig holds settings for one pipeline run.
type HarvestConfig struct {
	// MinYear and MaxYear bound the inclusive publication year range.
	MinYear int `json:"min_year" yaml:"min_year"`
	MaxYear int `json:"max_year" yaml:"max_year"`

	// MaxPagesPerSource caps pages per source query. Zero means no cap.
	MaxPagesPerSource int `json:"max_pages_per_source" yaml:"max_pages_per_source"`

	// Workers is the number of venues harvested concurrently (default 1).
	Workers int `json:"workers" yaml:"workers"`

	Thresholds `yaml:",inline"`
}

// Validate reports configuration errors that make a run impossible.
func (c HarvestConfig) Validate() error {
	if c.MinYear <= 0 || c.MaxYear <= 0 {
		return fmt.Errorf("year range must be positive, got [%d, %d]", c.MinYear, c.MaxYear)
	}
	if c.MinYear > c.MaxYear {
		return fmt.Errorf("min year %d is after max year %d", c.MinYear, c.MaxYear)
	}
	if c.MinPapersPerAuthor < 0 || c.MinPapersPerInstitution < 0 || c.MaxInstitutions < 0 {
		return fmt.Errorf("thresholds must not be negative")
	}
	return nil
}

// OutputConfig holds output locations for a pipeline run.
type OutputConfig struct {
	// JSONPath is the dataset JSON file (default "data.json").
	JSONPath string `json:"output_json" yaml:"output_json"`

	// JSPath optionally writes the dataset as "window.dataset = ...;".
	JSPath string `json:"output_js,omitempty" yaml:"output_js,omitempty"`

	// CachePath is the resolution cache file (default "openalex_cache.json").
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// ArchivePath optionally records the run in a SQLite archive.
	ArchivePath string `json:"archive_path,omitempty" yaml:"archive_path,omitempty"`
}
