// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities esearch endpoint and returns
// the PMID set matching a search term.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/d-genk/pubmeb-ventilation-terminology/pkg/types"
)

// esearchAPIBase is the NCBI esearch endpoint. Declared as a var so tests
// can substitute an httptest server.
var esearchAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"

const defaultRetMax = 1000

// ResultSet is the set of PMIDs a query returned.
type ResultSet map[string]struct{}

// NewResultSet builds a ResultSet from a PMID list, dropping duplicates.
func NewResultSet(ids ...string) ResultSet {
	s := make(ResultSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Client issues esearch queries against PubMed. It never sleeps between
// calls; rate limiting is the caller's scheduling concern.
type Client struct {
	HTTP *http.Client

	// BaseURL overrides the esearch endpoint when non-empty.
	BaseURL string
}

// Fetch runs one esearch query and returns the matching PMIDs. Any failure
// (network, non-200 status, malformed body) is returned as an error with an
// empty set; there is exactly one attempt per call, and the caller decides
// whether a failure degrades to an empty result.
func (c *Client) Fetch(ctx context.Context, term string, cfg types.PubMedConfig) (ResultSet, error) {
	retmax := cfg.RetMax
	if retmax <= 0 {
		retmax = defaultRetMax
	}

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {term},
		"retmax":  {fmt.Sprintf("%d", retmax)},
		"retmode": {"json"},
		"tool":    {cfg.Tool},
		"email":   {cfg.Email},
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}

	base := c.BaseURL
	if base == "" {
		base = esearchAPIBase
	}
	reqURL := base + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esearch returned HTTP %d", resp.StatusCode)
	}

	var er esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	if er.Result == nil {
		return nil, fmt.Errorf("esearch response missing esearchresult")
	}

	return NewResultSet(er.Result.IDList...), nil
}

// NCBI esearch JSON structures; only the fields we read.
type esearchResponse struct {
	Result *esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	RetMax string   `json:"retmax"`
	IDList []string `json:"idlist"`
}
