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

package rdf

import (
	"sort"
	"strings"

	"github.com/ternlabs/tern/util/cmp"
)

// Graph is a set of triples. Adding a triple that is already present is a
// no-op; no two triples in a graph are structurally equal. A Graph is owned by
// a single invocation and is not safe for concurrent mutation.
type Graph struct {
	triples map[string]Triple
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{triples: map[string]Triple{}}
}

// Add inserts t into the graph. It reports whether the triple was newly added.
func (g *Graph) Add(t Triple) bool {
	k := cmp.GetKey(t)
	if _, ok := g.triples[k]; ok {
		return false
	}
	g.triples[k] = t
	return true
}

// AddAll inserts every triple and returns how many were newly added.
func (g *Graph) AddAll(ts ...Triple) int {
	added := 0
	for _, t := range ts {
		if g.Add(t) {
			added++
		}
	}
	return added
}

// Contains reports whether t is present in the graph.
func (g *Graph) Contains(t Triple) bool {
	_, ok := g.triples[cmp.GetKey(t)]
	return ok
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns the graph's triples sorted by their identity key. The order
// is deterministic to keep query results and serializations stable.
func (g *Graph) Triples() []Triple {
	keys := make([]string, 0, len(g.triples))
	for k := range g.triples {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Triple, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.triples[k])
	}
	return out
}

// Find returns the triples whose positions match the given terms. A nil term
// matches any value in that position. The result is in the same deterministic
// order as Triples.
func (g *Graph) Find(s, p, o Term) []Triple {
	var out []Triple
	for _, t := range g.Triples() {
		if s != nil && !TermsEqual(s, t.Subject) {
			continue
		}
		if p != nil && !TermsEqual(p, t.Predicate) {
			continue
		}
		if o != nil && !TermsEqual(o, t.Object) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Clone returns an independent copy of the graph.
func (g *Graph) Clone() *Graph {
	out := &Graph{triples: make(map[string]Triple, len(g.triples))}
	for k, t := range g.triples {
		out.triples[k] = t
	}
	return out
}

// NTriples serializes the graph as one "subject predicate object ." statement
// per line, terms rendered as full IRIs or quoted literals.
func (g *Graph) NTriples() string {
	var b strings.Builder
	for _, t := range g.Triples() {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}
