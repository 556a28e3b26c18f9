// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package impl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternlabs/tern/api"
	"github.com/ternlabs/tern/config"
	"github.com/ternlabs/tern/extract"
	"github.com/ternlabs/tern/query/parser"
	"github.com/ternlabs/tern/rdf"
	"github.com/ternlabs/tern/util/clocks"
)

// fixedSource serves a canned graph or error instead of fetching.
type fixedSource struct {
	graph *rdf.Graph
	err   error
}

func (f *fixedSource) FromURL(ctx context.Context, url string) (*rdf.Graph, error) {
	return f.graph, f.err
}

func testServer(t *testing.T, src documentSource) *Server {
	cfg := &config.Tern{
		API: &config.API{HTTPAddress: ":0"},
		Namespaces: config.Namespaces{
			Default:  "ex",
			Prefixes: map[string]string{"ex": "http://example.org/"},
		},
	}
	s, err := New(cfg)
	require.NoError(t, err)
	if src != nil {
		s.extractor = src
	}
	return s
}

func librarysource(t *testing.T, s *Server) *fixedSource {
	triples, err := parser.ParseTriples(s.ns, `
		ex:Book1 ex:hasAuthor ex:Alice .
		ex:Book2 ex:hasAuthor ex:Alice .
		ex:Book1 ex:hasGenre ex:SciFi .
		ex:Book2 ex:hasGenre ex:SciFi .
	`)
	require.NoError(t, err)
	g := rdf.NewGraph()
	g.AddAll(triples...)
	return &fixedSource{graph: g}
}

func postForm(t *testing.T, s *Server, fields map[string]string) (*httptest.ResponseRecorder, api.QueryResponse) {
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, "/q", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.queryHTTP(w, req, nil)
	var resp api.QueryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w, resp
}

func Test_QuerySelect(t *testing.T) {
	s := testServer(t, nil)
	s.extractor = librarysource(t, s)
	w, resp := postForm(t, s, map[string]string{
		"url":   "http://example.org/catalog",
		"query": `SELECT ?b ?a WHERE { ?b ex:hasAuthor ?a }`,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Error)
	assert.Equal(t, "SELECT", resp.Form)
	require.NotNil(t, resp.Select)
	assert.Equal(t, []string{"b", "a"}, resp.Select.Headers)
	assert.Len(t, resp.Select.Rows, 2)
}

func Test_QueryJSONBody(t *testing.T) {
	s := testServer(t, nil)
	s.extractor = librarysource(t, s)
	body, err := json.Marshal(api.QueryRequest{
		URL:   "http://example.org/catalog",
		Query: `ASK ex:Book1 ex:hasGenre ex:SciFi`,
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/q", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.queryHTTP(w, req, nil)

	var resp api.QueryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Ask)
	assert.True(t, *resp.Ask)
}

func Test_QueryWithRules(t *testing.T) {
	s := testServer(t, nil)
	s.extractor = librarysource(t, s)
	w, resp := postForm(t, s, map[string]string{
		"url":      "http://example.org/catalog",
		"rulemode": "basic",
		"query":    `SELECT ?b WHERE { ex:Alice ex:wrote ?b }`,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Select)
	assert.Len(t, resp.Select.Rows, 2)
}

func Test_QueryDeclarativeReport(t *testing.T) {
	s := testServer(t, nil)
	s.extractor = librarysource(t, s)
	w, resp := postForm(t, s, map[string]string{
		"url":      "http://example.org/catalog",
		"rulemode": "declarative",
		"rules":    "bad rule line\n?x ex:hasAuthor ?y => ?y ex:wrote ?x",
		"query":    `ASK ex:Alice ex:wrote ex:Book1`,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Ask)
	assert.True(t, *resp.Ask)
	require.NotNil(t, resp.Rules)
	assert.Equal(t, 2, resp.Rules.Added)
	require.Len(t, resp.Rules.Skipped, 1)
	assert.Equal(t, 1, resp.Rules.Skipped[0].Line)
}

func Test_QueryConstructGraph(t *testing.T) {
	s := testServer(t, nil)
	s.extractor = librarysource(t, s)
	w, resp := postForm(t, s, map[string]string{
		"url":   "http://example.org/catalog",
		"query": `CONSTRUCT { ?a ex:wrote ?b } WHERE { ?b ex:hasAuthor ?a }`,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp.Graph, "<http://example.org/Alice> <http://example.org/wrote> <http://example.org/Book1> .")
}

func Test_QueryBadRequest(t *testing.T) {
	s := testServer(t, nil)
	s.extractor = librarysource(t, s)
	for name, fields := range map[string]map[string]string{
		"missing url":   {"query": "ASK ex:a ex:b ex:c"},
		"missing query": {"url": "http://example.org/catalog"},
		"bad query": {
			"url":   "http://example.org/catalog",
			"query": "EXPLAIN ?s",
		},
		"bad rule mode": {
			"url":      "http://example.org/catalog",
			"rulemode": "turbo",
			"query":    "ASK ex:a ex:b ex:c",
		},
		"malformed custom rule": {
			"url":      "http://example.org/catalog",
			"rulemode": "custom",
			"rules":    "IF book hasAuthor author",
			"query":    "ASK ex:a ex:b ex:c",
		},
	} {
		t.Run(name, func(t *testing.T) {
			w, resp := postForm(t, s, fields)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

// tickingSource advances a mock clock during the fetch, standing in for a slow
// upstream document server.
type tickingSource struct {
	fixed *fixedSource
	clock *clocks.Mock
	delay time.Duration
}

func (f *tickingSource) FromURL(ctx context.Context, url string) (*rdf.Graph, error) {
	f.clock.Advance(f.delay)
	return f.fixed.FromURL(ctx, url)
}

func Test_QueryFetchLatency(t *testing.T) {
	s := testServer(t, nil)
	clock := clocks.NewMock()
	s.clock = clock
	s.extractor = &tickingSource{
		fixed: librarysource(t, s),
		clock: clock,
		delay: 250 * time.Millisecond,
	}

	before := fetchLatencySum(t)
	w, _ := postForm(t, s, map[string]string{
		"url":   "http://example.org/catalog",
		"query": `ASK ex:Book1 ex:hasGenre ex:SciFi`,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 0.25, fetchLatencySum(t)-before, 1e-9)
}

// fetchLatencySum reads the running total of the fetch latency summary from
// the default registry.
func fetchLatencySum(t *testing.T) float64 {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "tern_api_fetch_latency_seconds" {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetSummary().GetSampleSum()
		}
	}
	t.Fatal("tern_api_fetch_latency_seconds is not registered")
	return 0
}

func Test_QuerySourceUnavailable(t *testing.T) {
	s := testServer(t, &fixedSource{err: &extract.SourceError{URL: "http://example.org/x", Status: 503}})
	w, resp := postForm(t, s, map[string]string{
		"url":   "http://example.org/x",
		"query": "ASK ex:a ex:b ex:c",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, resp.Error, "503")
}

func Test_QueryExtractionFailed(t *testing.T) {
	s := testServer(t, &fixedSource{err: &extract.ExtractError{URL: "http://example.org/x", Err: assert.AnError}})
	w, resp := postForm(t, s, map[string]string{
		"url":   "http://example.org/x",
		"query": "ASK ex:a ex:b ex:c",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NotEmpty(t, resp.Error)
}
