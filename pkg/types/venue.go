// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the venue-harvester pipeline:
// venue descriptors, catalog works, aggregated publication records, the
// emitted dataset, and stage configuration.
package types

// ResolutionPath identifies how a venue's works are enumerated.
type ResolutionPath int

const (
	// PathNone marks a descriptor with no usable resolution field.
	PathNone ResolutionPath = iota
	// PathSourceIDs uses the explicit catalog source identifiers verbatim.
	PathSourceIDs
	// PathSearch resolves source identifiers through a catalog source search.
	PathSearch
	// PathSecondaryIndex enumerates the venue through the secondary index.
	PathSecondaryIndex
)

func (p ResolutionPath) String() string {
	switch p {
	case PathSourceIDs:
		return "source_ids"
	case PathSearch:
		return "search"
	case PathSecondaryIndex:
		return "dblp"
	default:
		return "none"
	}
}

// VenueDescriptor describes one publication venue to harvest. Exactly one of
// SourceIDs (non-empty), SearchTerm or SecondaryIndexKey selects the
// resolution path; when several are set, that order is the precedence.
type VenueDescriptor struct {
	// Code is the short venue code written into publication records (e.g. "PRL").
	Code string `json:"code" yaml:"code"`

	// DisplayName is the human-readable venue name written to the dataset.
	DisplayName string `json:"name" yaml:"name"`

	// SourceIDs lists explicit catalog source identifiers.
	SourceIDs []string `json:"source_ids,omitempty" yaml:"source_ids,omitempty"`

	// SearchTerm is passed to the catalog source search when SourceIDs is empty.
	SearchTerm string `json:"search,omitempty" yaml:"search,omitempty"`

	// SecondaryIndexKey is the venue acronym as it appears in the secondary
	// index (e.g. "STOC").
	SecondaryIndexKey string `json:"dblp_venue,omitempty" yaml:"dblp_venue,omitempty"`

	// RequireKeywordMatch gates the relevance filter for generic venues.
	RequireKeywordMatch bool `json:"require_keywords" yaml:"require_keywords"`
}

// Path returns the resolution path selected by the descriptor's fields.
func (v VenueDescriptor) Path() ResolutionPath {
	switch {
	case len(v.SourceIDs) > 0:
		return PathSourceIDs
	case v.SearchTerm != "":
		return PathSearch
	case v.SecondaryIndexKey != "":
		return PathSecondaryIndex
	default:
		return PathNone
	}
}
