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

package rules

import (
	"github.com/ternlabs/tern/rdf"
	"github.com/ternlabs/tern/util/cmp"
)

// The fixed tiers are short pipelines of derivation steps run once, in
// order. Each step takes its own snapshot of the graph (Find materializes
// one), so later steps observe earlier steps' output while no step observes
// its own. Re-running a pipeline on its own output adds nothing: every
// step's condition reads only relations the step does not produce.

func (e *Engine) applyBasic(g *rdf.Graph) {
	e.stepAuthorInversion(g)
	e.stepGenreCoMembership(g)
	e.stepFrequentBorrowers(g)
}

func (e *Engine) applyAdvanced(g *rdf.Graph) {
	e.stepAuthorExpertise(g)
	e.stepRecommendations(g)
}

// stepAuthorInversion derives (author, wrote, book) and the convenience
// inverse (book, writtenBy, author) from every (book, hasAuthor, author).
func (e *Engine) stepAuthorInversion(g *rdf.Graph) {
	for _, t := range g.Find(nil, e.vocab.hasAuthor, nil) {
		g.Add(rdf.Triple{Subject: t.Object, Predicate: e.vocab.wrote, Object: t.Subject})
		g.Add(rdf.Triple{Subject: t.Subject, Predicate: e.vocab.writtenBy, Object: t.Object})
	}
}

// stepGenreCoMembership relates every ordered pair of distinct subjects that
// share a hasGenre value. Symmetric because both orderings of each pair are
// visited; irreflexive because self pairs are skipped.
func (e *Engine) stepGenreCoMembership(g *rdf.Graph) {
	byGenre := map[string][]rdf.Term{}
	var genres []string
	for _, t := range g.Find(nil, e.vocab.hasGenre, nil) {
		key := cmp.GetKey(t.Object)
		if _, ok := byGenre[key]; !ok {
			genres = append(genres, key)
		}
		byGenre[key] = append(byGenre[key], t.Subject)
	}
	for _, genre := range genres {
		subjects := byGenre[genre]
		for _, s1 := range subjects {
			for _, s2 := range subjects {
				if rdf.TermsEqual(s1, s2) {
					continue
				}
				g.Add(rdf.Triple{Subject: s1, Predicate: e.vocab.relatedTo, Object: s2})
			}
		}
	}
}

// stepFrequentBorrowers types any member holding two or more loans as a
// FrequentBorrower. Set semantics make the classification single regardless
// of how far past two the loan count goes.
func (e *Engine) stepFrequentBorrowers(g *rdf.Graph) {
	counts := map[string]int{}
	members := map[string]rdf.Term{}
	for _, t := range g.Find(nil, e.vocab.borrowedBy, nil) {
		key := cmp.GetKey(t.Object)
		counts[key]++
		members[key] = t.Object
	}
	for key, count := range counts {
		if count > 1 {
			g.Add(rdf.Triple{Subject: members[key], Predicate: rdf.RDFType, Object: e.vocab.frequentBorrower})
		}
	}
}

// stepAuthorExpertise records (author, hasExpertise, genre) for every
// author/genre pair observed on a typed Book.
func (e *Engine) stepAuthorExpertise(g *rdf.Graph) {
	for _, typed := range g.Find(nil, rdf.RDFType, e.vocab.book) {
		book := typed.Subject
		authors := g.Find(book, e.vocab.hasAuthor, nil)
		genres := g.Find(book, e.vocab.hasGenre, nil)
		for _, a := range authors {
			for _, gn := range genres {
				g.Add(rdf.Triple{Subject: a.Object, Predicate: e.vocab.hasExpertise, Object: gn.Object})
			}
		}
	}
}

// stepRecommendations recommends every book of a genre to each entity that
// prefers that genre.
func (e *Engine) stepRecommendations(g *rdf.Graph) {
	for _, pref := range g.Find(nil, e.vocab.prefersGenre, nil) {
		for _, book := range g.Find(nil, e.vocab.hasGenre, pref.Object) {
			g.Add(rdf.Triple{Subject: book.Subject, Predicate: e.vocab.recommendedFor, Object: pref.Subject})
		}
	}
}
