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

// Package rules derives new triples from a graph. Three tiers are available:
// fixed library-domain pipelines (basic, advanced), a deliberately minimal
// heuristic matcher over IF/THEN text, and a declarative rule language where
// antecedents are evaluated by the query engine. Every tier only ever adds
// triples; the input graph is never mutated.
package rules

import (
	"fmt"

	"github.com/ternlabs/tern/rdf"
)

// vocabulary holds the library-domain terms the fixed tiers derive over,
// resolved once against the deployment's default namespace.
type vocabulary struct {
	hasAuthor        rdf.IRI
	wrote            rdf.IRI
	writtenBy        rdf.IRI
	hasGenre         rdf.IRI
	relatedTo        rdf.IRI
	borrowedBy       rdf.IRI
	frequentBorrower rdf.IRI
	book             rdf.IRI
	hasExpertise     rdf.IRI
	prefersGenre     rdf.IRI
	recommendedFor   rdf.IRI
}

// Engine applies rule tiers. An Engine is immutable after construction and
// safe to share across invocations; each Apply call owns its graphs
// exclusively.
type Engine struct {
	ns    *rdf.Namespaces
	vocab vocabulary
}

// NewEngine builds an engine whose fixed-tier vocabulary lives in the default
// namespace of ns.
func NewEngine(ns *rdf.Namespaces) *Engine {
	return &Engine{
		ns: ns,
		vocab: vocabulary{
			hasAuthor:        ns.MustResolveBare("hasAuthor"),
			wrote:            ns.MustResolveBare("wrote"),
			writtenBy:        ns.MustResolveBare("writtenBy"),
			hasGenre:         ns.MustResolveBare("hasGenre"),
			relatedTo:        ns.MustResolveBare("relatedTo"),
			borrowedBy:       ns.MustResolveBare("borrowedBy"),
			frequentBorrower: ns.MustResolveBare("FrequentBorrower"),
			book:             ns.MustResolveBare("Book"),
			hasExpertise:     ns.MustResolveBare("hasExpertise"),
			prefersGenre:     ns.MustResolveBare("prefersGenre"),
			recommendedFor:   ns.MustResolveBare("recommendedFor"),
		},
	}
}

// Report summarizes one declarative batch: how many triples the batch added
// and which rule lines were skipped. The other tiers return an empty report.
type Report struct {
	Added   int
	Skipped []Diagnostic
}

// Diagnostic describes one skipped declarative rule line.
type Diagnostic struct {
	// 1-based line number within the submitted rule text.
	Line int
	// The rule text as submitted.
	Rule string
	// Why the rule was skipped.
	Err error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: rule '%s' skipped: %v", d.Line, d.Rule, d.Err)
}

// SyntaxError reports malformed rule text in the heuristic tier. Unlike
// declarative diagnostics it aborts the whole batch.
type SyntaxError struct {
	// 1-based line number within the submitted rule text.
	Line int
	// The offending line.
	Text string
	// What is wrong with it.
	Details string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid rule on line %d: %s: '%s'", e.Line, e.Details, e.Text)
}

// Apply runs the selected rule tier and returns the extended graph. The input
// graph is never modified: the result is always an independent copy, so a
// failed application leaves the caller's graph untouched. The report is
// non-nil only for the declarative tier.
func (e *Engine) Apply(g *rdf.Graph, mode Mode) (*rdf.Graph, *Report, error) {
	out := g.Clone()
	switch mode.kind {
	case kindNone:
		return out, nil, nil
	case kindBasic:
		e.applyBasic(out)
		return out, nil, nil
	case kindAdvanced:
		e.applyBasic(out)
		e.applyAdvanced(out)
		return out, nil, nil
	case kindCustom:
		if err := e.applyCustom(out, mode.text); err != nil {
			return nil, nil, err
		}
		return out, nil, nil
	case kindDeclarative:
		report := e.applyDeclarative(out, mode.text)
		return out, report, nil
	}
	return nil, nil, fmt.Errorf("rules: unknown rule mode: %v", mode)
}
