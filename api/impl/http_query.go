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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"

	"github.com/ternlabs/tern/api"
	"github.com/ternlabs/tern/extract"
	"github.com/ternlabs/tern/query/exec"
	"github.com/ternlabs/tern/query/parser"
	"github.com/ternlabs/tern/rules"
	"github.com/ternlabs/tern/util/web"
)

// Runs one fetch/rules/query pipeline. Accepts either a JSON QueryRequest
// body or form fields (url, rulemode, rules, query).
func (s *Server) queryHTTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	querySpan, ctx := opentracing.StartSpanFromContext(r.Context(), "query")
	defer querySpan.Finish()

	resp := api.QueryResponse{}
	status := http.StatusOK
	// Always write out JSON, even for errors.
	defer func() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		web.Write(w, resp)
	}()

	req, err := readQueryRequest(r)
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusBadRequest
		return
	}
	resp.Query = req.Query
	mode, err := rules.ParseMode(req.RuleMode, req.Rules)
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusBadRequest
		return
	}

	query, err := parser.Parse(s.ns, req.Query)
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusBadRequest
		metrics.queryErrors.Inc()
		return
	}
	resp.Form = query.Form.String()
	log.Debugf("query string:\n%s", req.Query)

	fetchSpan, ctx := opentracing.StartSpanFromContext(ctx, "fetch")
	start := s.clock.Now()
	graph, err := s.extractor.FromURL(ctx, req.URL)
	fetchSpan.Finish()
	metrics.fetchLatencySeconds.Observe(s.clock.Now().Sub(start).Seconds())
	if err != nil {
		resp.Error = err.Error()
		status = fetchStatus(err)
		metrics.queryErrors.Inc()
		return
	}

	ruleSpan, _ := opentracing.StartSpanFromContext(ctx, "rules")
	graph, report, err := s.engine.Apply(graph, mode)
	ruleSpan.Finish()
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusBadRequest
		metrics.queryErrors.Inc()
		return
	}
	if report != nil {
		resp.Rules = ruleReport(report)
	}

	result, err := exec.Run(graph, query)
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusInternalServerError
		metrics.queryErrors.Inc()
		return
	}
	fillResult(&resp, result)
	metrics.queriesTotal.WithLabelValues(strings.ToLower(resp.Form)).Inc()
}

func readQueryRequest(r *http.Request) (*api.QueryRequest, error) {
	req := &api.QueryRequest{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, fmt.Errorf("unable to parse request body: %v", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("unable to parse POST data: %v", err)
		}
		req.URL = r.Form.Get("url")
		req.RuleMode = r.Form.Get("rulemode")
		req.Rules = r.Form.Get("rules")
		req.Query = r.Form.Get("query")
	}
	if req.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	return req, nil
}

// fetchStatus maps a document retrieval failure to an HTTP status: upstream
// trouble is a gateway problem, an unprocessable document is the caller's.
func fetchStatus(err error) int {
	var srcErr *extract.SourceError
	if errors.As(err, &srcErr) {
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}

func fillResult(resp *api.QueryResponse, result exec.Result) {
	switch res := result.(type) {
	case exec.SelectResult:
		resp.Select = &api.SelectResult{Headers: res.Headers, Rows: res.Rows}
	case exec.AskResult:
		resp.Ask = &res.Answer
	case exec.GraphResult:
		resp.Graph = res.Graph.NTriples()
	default:
		panic(fmt.Sprintf("unknown result type: %T", result))
	}
}

func ruleReport(report *rules.Report) *api.RuleReport {
	out := &api.RuleReport{Added: report.Added}
	for _, d := range report.Skipped {
		out.Skipped = append(out.Skipped, api.SkippedRule{
			Line:   d.Line,
			Rule:   d.Rule,
			Reason: d.Err.Error(),
		})
	}
	return out
}
