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
	"fmt"
	"strings"
)

// Triple is a stored (subject, predicate, object) statement. None of its
// positions may hold a Variable; use NewTriple to enforce that.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewTriple builds a stored triple. It returns an error if any position is nil
// or holds a Variable.
func NewTriple(s, p, o Term) (Triple, error) {
	for _, t := range []Term{s, p, o} {
		if t == nil {
			return Triple{}, fmt.Errorf("rdf: triple position must not be nil")
		}
		if IsVariable(t) {
			return Triple{}, fmt.Errorf("rdf: variable %s not allowed in a stored triple", t)
		}
	}
	return Triple{Subject: s, Predicate: p, Object: o}, nil
}

// MustTriple is like NewTriple but panics on error. It simplifies variable
// initialization and is primarily meant for writing unit tests.
func MustTriple(s, p, o Term) Triple {
	t, err := NewTriple(s, p, o)
	if err != nil {
		panic(err)
	}
	return t
}

// Key implements cmp.Key.
func (t Triple) Key(b *strings.Builder) {
	t.Subject.Key(b)
	t.Predicate.Key(b)
	t.Object.Key(b)
}

func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// Pattern is shaped like a Triple but any position may hold a Variable.
type Pattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Variables returns the names of the variables appearing in the pattern, in
// subject, predicate, object order, without duplicates.
func (p Pattern) Variables() []string {
	var names []string
	seen := map[string]bool{}
	for _, t := range []Term{p.Subject, p.Predicate, p.Object} {
		if v, ok := t.(Variable); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
	}
	return names
}

func (p Pattern) String() string {
	return fmt.Sprintf("%s %s %s", p.Subject, p.Predicate, p.Object)
}

// Template is shaped like a Pattern but is used on the producing side of a
// rule. A template whose variable is unbound for a given binding row is
// skipped during instantiation.
type Template struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func (t Template) String() string {
	return fmt.Sprintf("%s %s %s", t.Subject, t.Predicate, t.Object)
}

// Rule pairs an antecedent pattern list with a consequent template list.
type Rule struct {
	Antecedent []Pattern
	Consequent []Template
}

func (r *Rule) String() string {
	var b strings.Builder
	for i, p := range r.Antecedent {
		if i > 0 {
			b.WriteString(" . ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(" => ")
	for i, t := range r.Consequent {
		if i > 0 {
			b.WriteString(" . ")
		}
		b.WriteString(t.String())
	}
	return b.String()
}
