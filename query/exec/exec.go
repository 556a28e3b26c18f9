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

// Package exec evaluates parsed queries against an in-memory graph. The
// evaluator performs an incremental join over the pattern list in the order
// given; it does no reordering or planning.
package exec

import (
	"github.com/ternlabs/tern/rdf"
)

// Bindings is one result row of pattern evaluation: an assignment of
// variable names to ground terms.
type Bindings map[string]rdf.Term

// clone returns an independent copy of the row.
func (b Bindings) clone() Bindings {
	out := make(Bindings, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Evaluate matches the pattern list against the graph and returns the
// surviving binding rows. Patterns are joined incrementally in the order
// given. Every returned row binds every variable that appears anywhere in
// the pattern list. An empty pattern list evaluates to a single empty row,
// which is what makes a bare ASK against a non-empty graph answer true.
func Evaluate(g *rdf.Graph, patterns []rdf.Pattern) []Bindings {
	rows := []Bindings{{}}
	for _, pattern := range patterns {
		next := make([]Bindings, 0, len(rows))
		for _, row := range rows {
			next = append(next, matchPattern(g, pattern, row)...)
		}
		rows = next
		if len(rows) == 0 {
			break
		}
	}
	return rows
}

// matchPattern extends one row with every triple matching the pattern. Terms
// already bound in the row are substituted before the scan, so the graph only
// returns candidate triples for the still-free positions.
func matchPattern(g *rdf.Graph, pattern rdf.Pattern, row Bindings) []Bindings {
	bound := func(t rdf.Term) rdf.Term {
		if v, ok := t.(rdf.Variable); ok {
			return row[v.Name] // nil when unbound, i.e. wildcard
		}
		return t
	}
	matches := g.Find(bound(pattern.Subject), bound(pattern.Predicate), bound(pattern.Object))
	out := make([]Bindings, 0, len(matches))
	for _, triple := range matches {
		if ext, ok := extend(row, pattern, triple); ok {
			out = append(out, ext)
		}
	}
	return out
}

// extend binds the pattern's variables to the matched triple's terms. It
// reports false when a variable repeated within the pattern would have to
// take two different values.
func extend(row Bindings, pattern rdf.Pattern, triple rdf.Triple) (Bindings, bool) {
	next := row.clone()
	positions := [3]struct {
		pattern rdf.Term
		matched rdf.Term
	}{
		{pattern.Subject, triple.Subject},
		{pattern.Predicate, triple.Predicate},
		{pattern.Object, triple.Object},
	}
	for _, pos := range positions {
		v, ok := pos.pattern.(rdf.Variable)
		if !ok {
			continue
		}
		if existing, isBound := next[v.Name]; isBound {
			if !rdf.TermsEqual(existing, pos.matched) {
				return nil, false
			}
			continue
		}
		next[v.Name] = pos.matched
	}
	return next, true
}

// Instantiate substitutes the row's bindings into the template. It reports
// false when the template references a variable the row does not bind; such
// templates are skipped rather than producing partial triples.
func Instantiate(row Bindings, template rdf.Template) (rdf.Triple, bool) {
	fill := func(t rdf.Term) rdf.Term {
		if v, ok := t.(rdf.Variable); ok {
			return row[v.Name]
		}
		return t
	}
	s, p, o := fill(template.Subject), fill(template.Predicate), fill(template.Object)
	if s == nil || p == nil || o == nil {
		return rdf.Triple{}, false
	}
	return rdf.Triple{Subject: s, Predicate: p, Object: o}, true
}

// InstantiateAll instantiates every template for every row and returns the
// union as a graph, collapsing duplicates produced by different rows.
func InstantiateAll(rows []Bindings, templates []rdf.Template) *rdf.Graph {
	out := rdf.NewGraph()
	for _, row := range rows {
		for _, template := range templates {
			if triple, ok := Instantiate(row, template); ok {
				out.Add(triple)
			}
		}
	}
	return out
}
