// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dblp queries the DBLP publication search API, the secondary
// bibliographic index used for conference venues the catalog does not
// attribute reliably.
package dblp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/venue-harvester/internal/httputil"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

// DefaultBaseURL is the DBLP publication search endpoint.
const DefaultBaseURL = "https://dblp.org/search/publ/api"

// DefaultMaxHits is the per-query hit limit.
const DefaultMaxHits = 1000

const serviceName = "DBLP"

// Client queries DBLP.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

// NewClient builds a client from cfg.
func NewClient(cfg types.HTTPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   DefaultBaseURL,
		UserAgent: cfg.UserAgent,
	}
}

// Hit is one publication record returned by a search.
type Hit struct {
	Title  string
	Venues []string
	Year   string
	Type   string
	DOI    string
	EE     []string
}

// MatchesVenue reports whether the hit's venue equals key exactly.
func (h Hit) MatchesVenue(key string) bool {
	for _, v := range h.Venues {
		if v == key {
			return true
		}
	}
	return false
}

// IsEditorship reports whether the hit is a proceedings volume rather than a paper.
func (h Hit) IsEditorship() bool {
	return strings.HasPrefix(strings.ToLower(h.Type), "editorship")
}

// YearInt parses the hit's year.
func (h Hit) YearInt() (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(h.Year))
	if err != nil {
		return 0, false
	}
	return y, true
}

// ExtractDOI returns the bare DOI of the hit, taken from the doi field or,
// failing that, from the first ee link on doi.org. It returns "" when the hit
// carries no DOI.
func (h Hit) ExtractDOI() string {
	doi := h.DOI
	if doi == "" {
		for _, ee := range h.EE {
			if i := strings.Index(ee, "doi.org/"); i >= 0 {
				doi = ee[i+len("doi.org/"):]
				break
			}
		}
	}
	doi = strings.TrimSpace(doi)
	lower := strings.ToLower(doi)
	switch {
	case strings.HasPrefix(lower, "https://doi.org/"):
		doi = doi[len("https://doi.org/"):]
	case strings.HasPrefix(lower, "http://doi.org/"):
		doi = doi[len("http://doi.org/"):]
	}
	return doi
}

// Paper is a hit that passed the venue, type and year filters.
type Paper struct {
	Title string
	Year  int
	DOI   string
}

// Search runs one free-text query and returns the parsed hits.
func (c *Client) Search(ctx context.Context, query string, maxHits int) ([]Hit, error) {
	if maxHits <= 0 {
		maxHits = DefaultMaxHits
	}
	params := url.Values{
		"q":      {query},
		"h":      {strconv.Itoa(maxHits)},
		"format": {"json"},
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("DBLP API request: %w", err)
	}
	defer resp.Body.Close()
	if err := httputil.CheckStatus(serviceName, resp); err != nil {
		return nil, err
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding DBLP response: %w", err)
	}

	hits := make([]Hit, 0, len(sr.Result.Hits.Hit))
	for _, h := range sr.Result.Hits.Hit {
		hits = append(hits, Hit{
			Title:  h.Info.Title,
			Venues: h.Info.Venue,
			Year:   h.Info.Year,
			Type:   h.Info.Type,
			DOI:    h.Info.DOI,
			EE:     h.Info.EE,
		})
	}
	return hits, nil
}

// SearchVenueYear queries "<key> <year>" and returns the raw hits.
func (c *Client) SearchVenueYear(ctx context.Context, key string, year, maxHits int) ([]Hit, error) {
	return c.Search(ctx, fmt.Sprintf("%s %d", key, year), maxHits)
}

// VenuePapers queries every year of [y0, y1] and keeps the hits whose venue
// equals key, that are not editorships, and whose year lies in the range.
// Failed year queries are logged to w and skipped.
func (c *Client) VenuePapers(ctx context.Context, key string, y0, y1 int, w io.Writer) []Paper {
	if w == nil {
		w = io.Discard
	}
	var papers []Paper
	for year := y0; year <= y1; year++ {
		if ctx.Err() != nil {
			break
		}
		hits, err := c.SearchVenueYear(ctx, key, year, DefaultMaxHits)
		if err != nil {
			fmt.Fprintf(w, "[dblp] %s %d: request failed: %v\n", key, year, err)
			continue
		}
		for _, h := range hits {
			if !h.MatchesVenue(key) || h.IsEditorship() {
				continue
			}
			y, ok := h.YearInt()
			if !ok || y < y0 || y > y1 {
				continue
			}
			papers = append(papers, Paper{Title: h.Title, Year: y, DOI: h.ExtractDOI()})
		}
	}
	fmt.Fprintf(w, "[dblp] %s: collected %d candidate papers\n", key, len(papers))
	return papers
}

type searchResponse struct {
	Result struct {
		Hits struct {
			Hit hitList `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

type hitRecord struct {
	Info struct {
		Title string     `json:"title"`
		Venue stringList `json:"venue"`
		Year  string     `json:"year"`
		Type  string     `json:"type"`
		DOI   string     `json:"doi"`
		EE    stringList `json:"ee"`
	} `json:"info"`
}

// hitList accepts either a single hit object or an array of hits.
type hitList []hitRecord

func (l *hitList) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}
	if data[0] == '{' {
		var one hitRecord
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*l = hitList{one}
		return nil
	}
	var many []hitRecord
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// stringList accepts either a JSON string or an array of strings.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		*s = nil
		return nil
	}
	if data[0] == '"' {
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}
