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

package exec

import (
	"fmt"
	"strings"

	"github.com/ternlabs/tern/query/parser"
	"github.com/ternlabs/tern/rdf"
)

// NotApplicable is the rendering of a selected variable that no binding row
// bound, e.g. a SELECT variable that never appears in the where clause.
const NotApplicable = "N/A"

// Result is the outcome of running one query: a SelectResult, an AskResult
// or a GraphResult depending on the query form.
type Result interface {
	aResult()
	String() string
}

// SelectResult is a header row plus zero or more value rows.
type SelectResult struct {
	Headers []string
	Rows    [][]string
}

// AskResult reports whether the query's pattern had any match.
type AskResult struct {
	Answer bool
}

// GraphResult holds the graph built by a CONSTRUCT or DESCRIBE query.
type GraphResult struct {
	Graph *rdf.Graph
}

func (SelectResult) aResult() {}
func (AskResult) aResult()    {}
func (GraphResult) aResult()  {}

func (r SelectResult) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(r.Headers, "\t"))
	for _, row := range r.Rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}

func (r AskResult) String() string {
	return fmt.Sprintf("%t", r.Answer)
}

func (r GraphResult) String() string {
	return r.Graph.NTriples()
}

// EvalError reports a query that parsed but could not be evaluated.
type EvalError struct {
	Details string
}

func (e *EvalError) Error() string {
	return "unable to evaluate query: " + e.Details
}

// Run evaluates the query against the graph and projects the binding rows
// into the query's result form. Evaluation itself never fails once the query
// parsed; a no-match simply produces an empty result.
func Run(g *rdf.Graph, query *parser.Query) (Result, error) {
	rows := Evaluate(g, query.Where)
	switch query.Form {
	case parser.FormSelect:
		return projectSelect(query, rows), nil
	case parser.FormAsk:
		return AskResult{Answer: len(rows) > 0}, nil
	case parser.FormConstruct, parser.FormDescribe:
		return GraphResult{Graph: InstantiateAll(rows, query.Construct)}, nil
	}
	return nil, &EvalError{Details: fmt.Sprintf("unsupported query form: %v", query.Form)}
}

func projectSelect(query *parser.Query, rows []Bindings) SelectResult {
	headers := query.Select
	if query.SelectAll {
		headers = whereVariables(query.Where)
	}
	result := SelectResult{Headers: headers, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		record := make([]string, len(headers))
		for i, name := range headers {
			if term, ok := row[name]; ok {
				record[i] = rdf.Text(term)
			} else {
				record[i] = NotApplicable
			}
		}
		result.Rows = append(result.Rows, record)
	}
	return result
}

// whereVariables lists the variables of the pattern list in order of first
// appearance. This is the projection for SELECT *.
func whereVariables(patterns []rdf.Pattern) []string {
	var names []string
	seen := map[string]bool{}
	for _, pattern := range patterns {
		for _, name := range pattern.Variables() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
