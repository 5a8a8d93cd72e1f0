// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/d-genk/pubmeb-ventilation-terminology/pkg/types"
)

func testCfg() types.PubMedConfig {
	return types.PubMedConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "term-overlap-test/0.1",
		},
		RetMax: 1000,
		Tool:   "term_overlap_analyzer",
		Email:  "researcher@example.com",
	}
}

// --- Request construction (URL params, headers) ---

func TestFetchRequestParams(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"esearchresult":{"count":"0","retmax":"0","idlist":[]}}`)
	}))
	defer ts.Close()

	old := esearchAPIBase
	esearchAPIBase = ts.URL
	defer func() { esearchAPIBase = old }()

	c := &Client{HTTP: ts.Client()}
	_, err := c.Fetch(context.Background(), `"pediatric tracheostomy" AND "mechanical ventilation"`, testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	q := capturedReq.URL.Query()
	if got := q.Get("db"); got != "pubmed" {
		t.Errorf("db param = %q, want %q", got, "pubmed")
	}
	if got := q.Get("term"); got != `"pediatric tracheostomy" AND "mechanical ventilation"` {
		t.Errorf("term param = %q, want the full quoted term", got)
	}
	if got := q.Get("retmax"); got != "1000" {
		t.Errorf("retmax param = %q, want %q", got, "1000")
	}
	if got := q.Get("retmode"); got != "json" {
		t.Errorf("retmode param = %q, want %q", got, "json")
	}
	if got := q.Get("tool"); got != "term_overlap_analyzer" {
		t.Errorf("tool param = %q, want %q", got, "term_overlap_analyzer")
	}
	if got := q.Get("email"); got != "researcher@example.com" {
		t.Errorf("email param = %q, want %q", got, "researcher@example.com")
	}
	if got := capturedReq.Header.Get("User-Agent"); got != "term-overlap-test/0.1" {
		t.Errorf("User-Agent = %q, want %q", got, "term-overlap-test/0.1")
	}
}

func TestFetchAPIKeyParam(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		wantKey bool
	}{
		{"with API key", "nk_test_123", true},
		{"without API key", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedReq *http.Request
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedReq = r
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"esearchresult":{"count":"0","retmax":"0","idlist":[]}}`)
			}))
			defer ts.Close()

			old := esearchAPIBase
			esearchAPIBase = ts.URL
			defer func() { esearchAPIBase = old }()

			cfg := testCfg()
			cfg.APIKey = tt.apiKey

			c := &Client{HTTP: ts.Client()}
			if _, err := c.Fetch(context.Background(), "test", cfg); err != nil {
				t.Fatalf("Fetch: %v", err)
			}

			got := capturedReq.URL.Query().Get("api_key")
			if tt.wantKey && got != tt.apiKey {
				t.Errorf("api_key param = %q, want %q", got, tt.apiKey)
			}
			if !tt.wantKey && got != "" {
				t.Errorf("api_key param should be absent, got %q", got)
			}
		})
	}
}

func TestFetchDefaultRetMax(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"esearchresult":{"count":"0","retmax":"0","idlist":[]}}`)
	}))
	defer ts.Close()

	old := esearchAPIBase
	esearchAPIBase = ts.URL
	defer func() { esearchAPIBase = old }()

	cfg := testCfg()
	cfg.RetMax = 0 // Should default to 1000.

	c := &Client{HTTP: ts.Client()}
	if _, err := c.Fetch(context.Background(), "test", cfg); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if got := capturedReq.URL.Query().Get("retmax"); got != "1000" {
		t.Errorf("retmax param = %q, want %q (default)", got, "1000")
	}
}

// --- Response parsing ---

func TestFetchParsesIDList(t *testing.T) {
	resp := `{"esearchresult":{"count":"3","retmax":"3","idlist":["38012345","37999888","36000001"]}}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, resp)
	}))
	defer ts.Close()

	old := esearchAPIBase
	esearchAPIBase = ts.URL
	defer func() { esearchAPIBase = old }()

	c := &Client{HTTP: ts.Client()}
	got, err := c.Fetch(context.Background(), "test", testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len(result) = %d, want 3", len(got))
	}
	for _, id := range []string{"38012345", "37999888", "36000001"} {
		if _, ok := got[id]; !ok {
			t.Errorf("result missing PMID %s", id)
		}
	}
}

func TestFetchDeduplicatesIDs(t *testing.T) {
	resp := `{"esearchresult":{"count":"3","retmax":"3","idlist":["111","111","222"]}}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, resp)
	}))
	defer ts.Close()

	old := esearchAPIBase
	esearchAPIBase = ts.URL
	defer func() { esearchAPIBase = old }()

	c := &Client{HTTP: ts.Client()}
	got, err := c.Fetch(context.Background(), "test", testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(result) = %d, want 2 after dedup", len(got))
	}
}

func TestFetchEmptyIDList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"esearchresult":{"count":"0","retmax":"0","idlist":[]}}`)
	}))
	defer ts.Close()

	old := esearchAPIBase
	esearchAPIBase = ts.URL
	defer func() { esearchAPIBase = old }()

	c := &Client{HTTP: ts.Client()}
	got, err := c.Fetch(context.Background(), "obscure topic xyz", testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(result) = %d, want 0", len(got))
	}
}

// --- Error cases ---

func TestFetchHTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"429 rate limit", http.StatusTooManyRequests, "HTTP 429"},
		{"500 server error", http.StatusInternalServerError, "HTTP 500"},
		{"400 bad request", http.StatusBadRequest, "HTTP 400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls++
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			old := esearchAPIBase
			esearchAPIBase = ts.URL
			defer func() { esearchAPIBase = old }()

			c := &Client{HTTP: ts.Client()}
			_, err := c.Fetch(context.Background(), "test", testCfg())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
			// Single attempt per query, no retry.
			if calls != 1 {
				t.Errorf("server saw %d calls, want 1", calls)
			}
		})
	}
}

func TestFetchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{invalid json`)
	}))
	defer ts.Close()

	old := esearchAPIBase
	esearchAPIBase = ts.URL
	defer func() { esearchAPIBase = old }()

	c := &Client{HTTP: ts.Client()}
	_, err := c.Fetch(context.Background(), "test", testCfg())
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("error = %q, want substring 'parsing'", err.Error())
	}
}

func TestFetchMissingResultField(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"header":{"type":"esearch"}}`)
	}))
	defer ts.Close()

	old := esearchAPIBase
	esearchAPIBase = ts.URL
	defer func() { esearchAPIBase = old }()

	c := &Client{HTTP: ts.Client()}
	_, err := c.Fetch(context.Background(), "test", testCfg())
	if err == nil {
		t.Fatal("expected error for missing esearchresult")
	}
	if !strings.Contains(err.Error(), "esearchresult") {
		t.Errorf("error = %q, want substring 'esearchresult'", err.Error())
	}
}

func TestFetchNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	client := ts.Client()
	ts.Close() // Connection refused from here on.

	old := esearchAPIBase
	esearchAPIBase = ts.URL
	defer func() { esearchAPIBase = old }()

	c := &Client{HTTP: client}
	_, err := c.Fetch(context.Background(), "test", testCfg())
	if err == nil {
		t.Fatal("expected error for refused connection")
	}
}

// --- ResultSet ---

func TestNewResultSet(t *testing.T) {
	s := NewResultSet("1", "2", "2", "3")
	if len(s) != 3 {
		t.Errorf("len = %d, want 3", len(s))
	}
	if _, ok := s["2"]; !ok {
		t.Error("missing id 2")
	}
}
