// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/venue-harvester/internal/httputil"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

// WorksPage is one page of a /works listing.
type WorksPage struct {
	Meta  Meta
	Works []types.Work
}

type worksResponse struct {
	Meta    Meta         `json:"meta"`
	Results []workRecord `json:"results"`
}

type workRecord struct {
	ID                    string             `json:"id"`
	Title                 string             `json:"title"`
	DisplayName           string             `json:"display_name"`
	DOI                   string             `json:"doi"`
	PublicationYear       *int               `json:"publication_year"`
	Abstract              string             `json:"abstract"`
	AbstractInvertedIndex map[string][]int   `json:"abstract_inverted_index"`
	Authorships           []authorshipRecord `json:"authorships"`
}

type authorshipRecord struct {
	Author       authorRecord        `json:"author"`
	Institutions []institutionRecord `json:"institutions"`
}

type authorRecord struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type institutionRecord struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
}

// toWork converts the wire record into the pipeline's Work.
func (r workRecord) toWork() types.Work {
	w := types.Work{
		ID:    r.ID,
		Title: r.Title,
		Year:  r.PublicationYear,
	}
	if w.Title == "" {
		w.Title = r.DisplayName
	}
	if r.Abstract != "" {
		w.Abstract = r.Abstract
	} else {
		w.Abstract = flattenAbstract(r.AbstractInvertedIndex)
	}
	for _, a := range r.Authorships {
		au := types.Authorship{
			AuthorID:   a.Author.ID,
			AuthorName: a.Author.DisplayName,
		}
		for _, inst := range a.Institutions {
			au.Institutions = append(au.Institutions, types.InstitutionRef{
				ID:          inst.ID,
				DisplayName: inst.DisplayName,
				CountryCode: inst.CountryCode,
			})
		}
		w.Authorships = append(w.Authorships, au)
	}
	return w
}

// flattenAbstract turns the abstract_inverted_index (word -> positions) into
// its bag of words: every key once, ordered by first position, so repeated
// words do not recreate phrases. Keys without positions come last.
func flattenAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type keyPos struct {
		first int
		word  string
	}
	keys := make([]keyPos, 0, len(invertedIndex))
	for word, positions := range invertedIndex {
		first := math.MaxInt
		for _, p := range positions {
			first = min(first, p)
		}
		keys = append(keys, keyPos{first: first, word: word})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].first != keys[j].first {
			return keys[i].first < keys[j].first
		}
		return keys[i].word < keys[j].word
	})

	words := make([]string, len(keys))
	for i, k := range keys {
		words[i] = k.word
	}
	return strings.Join(words, " ")
}

// ListWorks fetches one page of /works matching filter. The call is throttled.
func (c *Client) ListWorks(ctx context.Context, filter string, page, perPage int) (WorksPage, error) {
	params := url.Values{
		"filter":   {filter},
		"page":     {strconv.Itoa(page)},
		"per-page": {strconv.Itoa(perPage)},
	}
	var resp worksResponse
	if err := c.Get(ctx, "/works", params, true, &resp); err != nil {
		return WorksPage{}, err
	}
	out := WorksPage{Meta: resp.Meta, Works: make([]types.Work, 0, len(resp.Results))}
	for _, r := range resp.Results {
		out.Works = append(out.Works, r.toWork())
	}
	return out, nil
}

// WorkByDOI resolves a bare DOI via /works/doi:<doi>. A 404 answer yields
// ErrNotFound. DOI lookups are not throttled.
func (c *Client) WorkByDOI(ctx context.Context, doi string) (types.Work, error) {
	var rec workRecord
	err := c.Get(ctx, "/works/doi:"+doi, nil, false, &rec)
	if httputil.IsStatus(err, http.StatusNotFound) {
		return types.Work{}, ErrNotFound
	}
	if err != nil {
		return types.Work{}, fmt.Errorf("looking up DOI %s: %w", doi, err)
	}
	if rec.ID == "" {
		return types.Work{}, ErrNotFound
	}
	return rec.toWork(), nil
}

// SearchWorks runs a free-text /works search, optionally restricted to a
// publication year window [from, to] (both zero for no restriction). The call
// is not throttled.
func (c *Client) SearchWorks(ctx context.Context, text string, from, to, maxResults int) ([]types.Work, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	params := url.Values{
		"search":   {text},
		"per_page": {strconv.Itoa(maxResults)},
	}
	if from > 0 && to > 0 {
		params.Set("filter", fmt.Sprintf("from_publication_date:%d-01-01,to_publication_date:%d-12-31", from, to))
	}
	var resp worksResponse
	if err := c.Get(ctx, "/works", params, false, &resp); err != nil {
		return nil, fmt.Errorf("searching works: %w", err)
	}
	works := make([]types.Work, 0, len(resp.Results))
	for _, r := range resp.Results {
		works = append(works, r.toWork())
	}
	return works, nil
}
