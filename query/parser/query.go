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

package parser

import (
	"fmt"
	"strings"

	"github.com/ternlabs/tern/rdf"
)

// Form identifies which of the four query result shapes a query produces.
type Form int

const (
	// FormSelect projects bindings into a header row plus value rows.
	FormSelect Form = iota
	// FormAsk reports whether any binding row exists.
	FormAsk
	// FormConstruct instantiates a template list into a result graph.
	FormConstruct
	// FormDescribe matches a pattern list and returns the satisfying triples.
	FormDescribe
)

// String returns the query keyword for the form.
func (f Form) String() string {
	switch f {
	case FormSelect:
		return "SELECT"
	case FormAsk:
		return "ASK"
	case FormConstruct:
		return "CONSTRUCT"
	case FormDescribe:
		return "DESCRIBE"
	}
	return fmt.Sprintf("Form(%d)", int(f))
}

// ParseForm maps a (case-insensitive) form name to a Form.
func ParseForm(name string) (Form, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SELECT":
		return FormSelect, nil
	case "ASK":
		return FormAsk, nil
	case "CONSTRUCT":
		return FormConstruct, nil
	case "DESCRIBE":
		return FormDescribe, nil
	}
	return 0, fmt.Errorf("parser: unsupported query form: %q", name)
}

// Query is a parsed query, ready for evaluation. All compact identifiers have
// already been resolved to full IRIs.
type Query struct {
	Form Form

	// The requested variable names, in order, for SELECT. Empty when
	// SelectAll is set or for the other forms.
	Select []string

	// Set for "SELECT *": project every variable, in order of first
	// appearance in Where.
	SelectAll bool

	// The basic graph pattern to match.
	Where []rdf.Pattern

	// The templates instantiated per binding row for CONSTRUCT. For DESCRIBE
	// this holds the Where patterns again, so the result is the graph of
	// triples that satisfied the pattern.
	Construct []rdf.Template
}

func (q *Query) String() string {
	var b strings.Builder
	b.WriteString(q.Form.String())
	if q.Form == FormSelect {
		if q.SelectAll {
			b.WriteString(" *")
		}
		for _, v := range q.Select {
			b.WriteString(" ?")
			b.WriteString(v)
		}
	}
	if q.Form == FormConstruct {
		b.WriteString(" {")
		for _, t := range q.Construct {
			fmt.Fprintf(&b, " %s .", t)
		}
		b.WriteString(" }")
	}
	b.WriteString(" WHERE {")
	for _, p := range q.Where {
		fmt.Fprintf(&b, " %s .", p)
	}
	b.WriteString(" }")
	return b.String()
}

// Raw AST produced by the grammar, before namespace resolution. The grammar
// cannot resolve prefixes itself: the namespace table is per-deployment state
// while the grammar is initialized once.
type rawTerm interface {
	aRawTerm()
}

// rawVariable is a ?name token.
type rawVariable struct {
	Name string
}

// rawIRI is a <full-iri> token.
type rawIRI struct {
	Value string
}

// rawName is a bare or prefixed token, resolved later against the namespace
// table.
type rawName struct {
	Value string
}

// rawLiteral is a quoted string with optional language tag or datatype. The
// datatype may itself need resolving.
type rawLiteral struct {
	Value    string
	Language string
	Datatype rawTerm
}

func (rawVariable) aRawTerm() {}
func (rawIRI) aRawTerm()     {}
func (rawName) aRawTerm()    {}
func (rawLiteral) aRawTerm() {}

// rawTriple is a 3-term clause as parsed.
type rawTriple struct {
	subject   rawTerm
	predicate rawTerm
	object    rawTerm
}

// rawQuery is a query as parsed, before resolution.
type rawQuery struct {
	form      Form
	sel       []string
	selectAll bool
	where     []rawTriple
	construct []rawTriple
}

// rawRule is a rule line as parsed, before resolution.
type rawRule struct {
	antecedent []rawTriple
	consequent []rawTriple
}
