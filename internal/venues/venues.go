// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package venues loads and validates the list of venues to harvest.
package venues

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/venue-harvester/pkg/types"
)

// ErrInvalidVenue marks a descriptor that cannot be harvested.
var ErrInvalidVenue = errors.New("invalid venue")

// File is the on-disk venue configuration.
type File struct {
	Venues []types.VenueDescriptor `yaml:"venues"`

	// Keywords optionally replaces the built-in relevance keyword list.
	Keywords []string `yaml:"keywords,omitempty"`
}

// Load reads a venue file. An empty path returns the built-in defaults.
func Load(path string) (File, error) {
	if path == "" {
		return File{Venues: Defaults()}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading venue file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing venue file %s: %w", path, err)
	}
	if len(f.Venues) == 0 {
		return File{}, fmt.Errorf("venue file %s lists no venues", path)
	}
	return f, nil
}

// Validate checks one descriptor. A descriptor needs a code and at least one
// resolution field.
func Validate(v types.VenueDescriptor) error {
	if strings.TrimSpace(v.Code) == "" {
		return fmt.Errorf("%w: missing code", ErrInvalidVenue)
	}
	if v.Path() == types.PathNone {
		return fmt.Errorf("%w %s: neither source_ids, search nor dblp_venue", ErrInvalidVenue, v.Code)
	}
	return nil
}

// Split separates harvestable descriptors from invalid ones. Duplicate codes
// are reported as invalid after their first occurrence.
func Split(list []types.VenueDescriptor) (valid []types.VenueDescriptor, problems []error) {
	seen := make(map[string]bool)
	for _, v := range list {
		if err := Validate(v); err != nil {
			problems = append(problems, err)
			continue
		}
		if seen[v.Code] {
			problems = append(problems, fmt.Errorf("%w %s: duplicate code", ErrInvalidVenue, v.Code))
			continue
		}
		seen[v.Code] = true
		if v.DisplayName == "" {
			v.DisplayName = v.Code
		}
		valid = append(valid, v)
	}
	return valid, problems
}

// Select keeps the venues whose codes are listed, in list order. An empty
// codes slice keeps everything. Unknown codes are returned separately.
func Select(list []types.VenueDescriptor, codes []string) (selected []types.VenueDescriptor, unknown []string) {
	if len(codes) == 0 {
		return list, nil
	}
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	found := make(map[string]bool)
	for _, v := range list {
		if want[strings.ToUpper(v.Code)] {
			selected = append(selected, v)
			found[strings.ToUpper(v.Code)] = true
		}
	}
	for _, c := range codes {
		if !found[strings.ToUpper(strings.TrimSpace(c))] {
			unknown = append(unknown, c)
		}
	}
	return selected, unknown
}
