// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance decides whether a work belongs to the target subfield
// using case-insensitive keyword substring matching over title and abstract.
package relevance

import (
	"sort"
	"strings"

	"github.com/pdiddy/venue-harvester/pkg/types"
)

// minSearchTermLen drops terms too short for the catalog's title search.
const minSearchTermLen = 3

// Filter matches works against a keyword list.
type Filter struct {
	keywords []string
}

// New returns a Filter over keywords. Keywords are lowercased and trimmed;
// empty entries are dropped. A nil or empty list selects DefaultKeywords.
func New(keywords []string) *Filter {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	f := &Filter{}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			f.keywords = append(f.keywords, kw)
		}
	}
	return f
}

// Keywords returns the normalized keyword list.
func (f *Filter) Keywords() []string {
	return append([]string(nil), f.keywords...)
}

// Matches reports whether work is in-domain. When require is false every
// work matches; otherwise some keyword must occur in the lowercased title or
// flattened abstract.
func (f *Filter) Matches(work types.Work, require bool) bool {
	if !require {
		return true
	}
	text := strings.ToLower(work.Title) + " " + strings.ToLower(work.Abstract)
	return f.contains(text)
}

// TitleMatches is the title-only prefilter used before spending a catalog
// lookup on a secondary-index hit. An empty title never matches.
func (f *Filter) TitleMatches(title string) bool {
	t := strings.ToLower(title)
	if t == "" {
		return false
	}
	return f.contains(t)
}

func (f *Filter) contains(text string) bool {
	for _, kw := range f.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// TitleSearchExpression builds the disjunctive value for the catalog's
// title.search filter: commas become spaces, terms shorter than three
// characters are dropped, and the rest are deduplicated, sorted and joined
// with "|".
func (f *Filter) TitleSearchExpression() string {
	seen := make(map[string]bool)
	var terms []string
	for _, kw := range f.keywords {
		term := strings.TrimSpace(strings.ReplaceAll(kw, ",", " "))
		if len(term) < minSearchTermLen || seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return strings.Join(terms, "|")
}
