// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"net/url"
	"strconv"
)

// Source is a catalog venue entity (a journal or one conference edition).
type Source struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type sourcesResponse struct {
	Meta    Meta     `json:"meta"`
	Results []Source `json:"results"`
}

// SearchSources runs /sources?search=term and returns up to maxCandidates
// candidates in catalog order.
func (c *Client) SearchSources(ctx context.Context, term string, maxCandidates int) ([]Source, error) {
	if maxCandidates <= 0 {
		maxCandidates = 25
	}
	params := url.Values{
		"search":   {term},
		"per-page": {strconv.Itoa(maxCandidates)},
	}
	var resp sourcesResponse
	if err := c.Get(ctx, "/sources", params, true, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
