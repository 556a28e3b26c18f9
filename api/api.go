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

// Package api defines the wire types of the Tern HTTP API.
package api

// QueryRequest is one invocation of the query endpoint: fetch a document,
// optionally apply a rule tier, then run one query over the resulting graph.
type QueryRequest struct {
	// Location of the source document to harvest triples from. Required.
	URL string `json:"url"`

	// Which rule tier to apply: "none", "basic", "advanced", "custom" or
	// "declarative". Empty means none.
	RuleMode string `json:"ruleMode,omitempty"`

	// Rule text for the custom and declarative tiers.
	Rules string `json:"rules,omitempty"`

	// The query to run. Required.
	Query string `json:"query"`
}

// QueryResponse carries the result of one query invocation. Exactly one of
// Select, Ask and Graph is set on success, matching the query's form.
type QueryResponse struct {
	// Set when the invocation failed; the other fields are then empty.
	Error string `json:"error,omitempty"`

	// The query as executed.
	Query string `json:"query"`

	// The query form: SELECT, ASK, CONSTRUCT or DESCRIBE.
	Form string `json:"form,omitempty"`

	Select *SelectResult `json:"select,omitempty"`
	Ask    *bool         `json:"ask,omitempty"`

	// N-Triples rendering of a CONSTRUCT/DESCRIBE result, one statement per
	// line.
	Graph string `json:"graph,omitempty"`

	// Set when a declarative rule batch ran.
	Rules *RuleReport `json:"rules,omitempty"`
}

// SelectResult is a SELECT projection: a header row plus value rows.
type SelectResult struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// RuleReport summarizes a declarative rule batch.
type RuleReport struct {
	// Triples added to the working graph by the batch.
	Added int `json:"added"`

	// One entry per rule line that was skipped.
	Skipped []SkippedRule `json:"skipped,omitempty"`
}

// SkippedRule describes one declarative rule line that failed to apply.
type SkippedRule struct {
	Line   int    `json:"line"`
	Rule   string `json:"rule"`
	Reason string `json:"reason"`
}
