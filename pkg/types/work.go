// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// InstitutionRef is an institution as listed on an authorship record.
type InstitutionRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	// CountryCode is the 2-letter country code; empty when the catalog has none.
	CountryCode string `json:"country_code"`
}

// Authorship associates one author with a work and zero or more institutions.
type Authorship struct {
	AuthorID     string           `json:"author_id"`
	AuthorName   string           `json:"author_name"`
	Institutions []InstitutionRef `json:"institutions"`
}

// Work is one publication as represented in the primary catalog. Works are
// never mutated after creation.
type Work struct {
	// ID is the opaque catalog identifier (e.g. "https://openalex.org/W123").
	ID string `json:"id"`

	Title string `json:"title"`

	// Year is the publication year; nil when the catalog does not report one.
	Year *int `json:"year,omitempty"`

	// Abstract is flattened abstract text used only for relevance matching.
	Abstract string `json:"-"`

	Authorships []Authorship `json:"authorships"`
}

// HasYear reports whether the work carries a publication year.
func (w Work) HasYear() bool { return w.Year != nil }

// YearPtr returns a pointer to y, for building Work literals.
func YearPtr(y int) *int { return &y }

// PublicationRecord is the unit stored per author/institution pair. Two records
// are equal when year, venue and title are all equal.
type PublicationRecord struct {
	Year  int    `json:"year" yaml:"year"`
	Venue string `json:"venue" yaml:"venue"`
	Title string `json:"title" yaml:"title"`
}

// Less orders records by (year, venue, title).
func (p PublicationRecord) Less(o PublicationRecord) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	if p.Venue != o.Venue {
		return p.Venue < o.Venue
	}
	return p.Title < o.Title
}
