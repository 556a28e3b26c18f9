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

// Package rdf defines the term and triple data model shared by the query
// engine and the rule engine. Terms are immutable values; equality is
// structural and implemented through the cmp.Key serialization.
package rdf

import (
	"fmt"
	"strings"

	"github.com/ternlabs/tern/util/cmp"
)

// A Term is an IRI, a blank node, a literal, or a variable. Variables are only
// legal inside patterns and templates, never inside a stored triple.
type Term interface {
	// Marker method to prevent other types from implementing Term.
	aTerm()
	// Key implements cmp.Key. Two terms are equal iff their keys are equal.
	Key(*strings.Builder)
	// String returns an N-Triples-like rendering of the term.
	String() string
}

// Ensures that each of these implements the Term interface.
var _ = []Term{
	IRI{},
	BlankNode{},
	Literal{},
	Variable{},
}

// IRI identifies a resource by its full (already resolved) IRI string.
type IRI struct {
	Value string
}

// BlankNode is a graph-scoped node with an opaque identifier.
type BlankNode struct {
	ID string
}

// Literal is a lexical value with an optional datatype IRI and an optional
// language tag. At most one of Datatype and Language is set.
type Literal struct {
	Value    string
	Datatype string
	Language string
}

// Variable is a named placeholder that may appear in patterns and templates.
type Variable struct {
	Name string
}

func (IRI) aTerm()       {}
func (BlankNode) aTerm() {}
func (Literal) aTerm()   {}
func (Variable) aTerm()  {}

// Key implements cmp.Key.
func (i IRI) Key(b *strings.Builder) {
	b.WriteString("i:")
	b.WriteString(i.Value)
	b.WriteByte(';')
}

// Key implements cmp.Key.
func (n BlankNode) Key(b *strings.Builder) {
	b.WriteString("b:")
	b.WriteString(n.ID)
	b.WriteByte(';')
}

// Key implements cmp.Key. Value, datatype and language all contribute to the
// literal's identity.
func (l Literal) Key(b *strings.Builder) {
	fmt.Fprintf(b, "l:%q@%s^^%s;", l.Value, l.Language, l.Datatype)
}

// Key implements cmp.Key.
func (v Variable) Key(b *strings.Builder) {
	b.WriteString("v:")
	b.WriteString(v.Name)
	b.WriteByte(';')
}

func (i IRI) String() string {
	return fmt.Sprintf("<%s>", i.Value)
}

func (n BlankNode) String() string {
	return "_:" + n.ID
}

func (l Literal) String() string {
	switch {
	case l.Language != "":
		return fmt.Sprintf("%q@%s", l.Value, l.Language)
	case l.Datatype != "":
		return fmt.Sprintf("%q^^<%s>", l.Value, l.Datatype)
	default:
		return fmt.Sprintf("%q", l.Value)
	}
}

func (v Variable) String() string {
	return "?" + v.Name
}

// TermsEqual reports whether a and b are structurally equal.
func TermsEqual(a, b Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	return cmp.GetKey(a) == cmp.GetKey(b)
}

// IsVariable reports whether t is a Variable.
func IsVariable(t Term) bool {
	_, ok := t.(Variable)
	return ok
}

// Text returns the plain textual rendering of a bound term as used in query
// result rows: the IRI string for IRIs, the lexical value for literals, and
// the _:id form for blank nodes.
func Text(t Term) string {
	switch v := t.(type) {
	case IRI:
		return v.Value
	case Literal:
		return v.Value
	case BlankNode:
		return "_:" + v.ID
	case Variable:
		return "?" + v.Name
	}
	return ""
}
