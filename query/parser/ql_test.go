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
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternlabs/tern/rdf"
)

// dump uses reflection to serialize a deep structure as a human-readable
// string. It makes mismatched pattern assertions much easier to read.
func dump(v interface{}) string {
	config := spew.NewDefaultConfig()
	config.DisableMethods = true
	config.DisablePointerMethods = true
	config.DisablePointerAddresses = true
	config.DisableCapacities = true
	config.SortKeys = true
	config.Indent = "  "
	return config.Sdump(v)
}

func testNamespaces(t *testing.T) *rdf.Namespaces {
	ns, err := rdf.NewNamespaces("ex", map[string]string{
		"ex":  "http://example.org/",
		"xsd": "http://www.w3.org/2001/XMLSchema#",
	})
	require.NoError(t, err)
	return ns
}

func iri(s string) rdf.IRI           { return rdf.IRI{Value: s} }
func v(s string) rdf.Variable        { return rdf.Variable{Name: s} }
func ex(local string) rdf.IRI        { return rdf.IRI{Value: "http://example.org/" + local} }
func pat(s, p, o rdf.Term) rdf.Pattern {
	return rdf.Pattern{Subject: s, Predicate: p, Object: o}
}

func Test_ParseSelect(t *testing.T) {
	ns := testNamespaces(t)
	q, err := Parse(ns, `SELECT ?book ?author WHERE {
		?book ex:hasAuthor ?author .
		?book rdf:type ex:Book .
	}`)
	require.NoError(t, err)
	assert.Equal(t, FormSelect, q.Form)
	assert.Equal(t, []string{"book", "author"}, q.Select)
	assert.False(t, q.SelectAll)
	require.Len(t, q.Where, 2, "parsed: %s", dump(q))
	assert.Equal(t, pat(v("book"), ex("hasAuthor"), v("author")), q.Where[0])
	assert.Equal(t, pat(v("book"), rdf.RDFType, ex("Book")), q.Where[1])
}

func Test_ParseSelectStar(t *testing.T) {
	ns := testNamespaces(t)
	q, err := Parse(ns, `SELECT * WHERE { ?s ?p ?o }`)
	require.NoError(t, err)
	assert.Equal(t, FormSelect, q.Form)
	assert.True(t, q.SelectAll)
	assert.Empty(t, q.Select)
	require.Len(t, q.Where, 1)
	assert.Equal(t, pat(v("s"), v("p"), v("o")), q.Where[0])
}

func Test_ParseAsk(t *testing.T) {
	ns := testNamespaces(t)
	t.Run("braced", func(t *testing.T) {
		q, err := Parse(ns, `ASK { ex:Book1 ex:hasGenre ex:SciFi }`)
		require.NoError(t, err)
		assert.Equal(t, FormAsk, q.Form)
		require.Len(t, q.Where, 1)
		assert.Equal(t, pat(ex("Book1"), ex("hasGenre"), ex("SciFi")), q.Where[0])
	})
	t.Run("bare", func(t *testing.T) {
		q, err := Parse(ns, `ASK ex:Book1 ex:hasGenre ex:SciFi`)
		require.NoError(t, err)
		assert.Equal(t, FormAsk, q.Form)
		require.Len(t, q.Where, 1)
	})
}

func Test_ParseConstruct(t *testing.T) {
	ns := testNamespaces(t)
	q, err := Parse(ns, `CONSTRUCT { ?a ex:wrote ?b . } WHERE { ?b ex:hasAuthor ?a . }`)
	require.NoError(t, err)
	assert.Equal(t, FormConstruct, q.Form)
	require.Len(t, q.Construct, 1)
	assert.Equal(t, rdf.Template(pat(v("a"), ex("wrote"), v("b"))), q.Construct[0])
	require.Len(t, q.Where, 1)
}

func Test_ParseDescribe(t *testing.T) {
	ns := testNamespaces(t)
	q, err := Parse(ns, `DESCRIBE { ex:Book1 ?p ?o }`)
	require.NoError(t, err)
	assert.Equal(t, FormDescribe, q.Form)
	require.Len(t, q.Where, 1)
	// DESCRIBE re-emits its matched patterns.
	require.Len(t, q.Construct, 1)
	assert.Equal(t, rdf.Template(q.Where[0]), q.Construct[0])
}

func Test_ParseCaseInsensitiveKeywords(t *testing.T) {
	ns := testNamespaces(t)
	for _, in := range []string{
		`select ?s where { ?s ?p ?o }`,
		`Select ?s Where { ?s ?p ?o }`,
		`SELECT ?s WHERE { ?s ?p ?o }`,
	} {
		q, err := Parse(ns, in)
		require.NoError(t, err, "input: %s", in)
		assert.Equal(t, FormSelect, q.Form)
	}
}

func Test_ParseTerms(t *testing.T) {
	ns := testNamespaces(t)
	q, err := Parse(ns, `SELECT ?s WHERE {
		?s <http://example.org/name> "Ursula K. Le Guin" .
		?s ex:published "1969"^^xsd:gYear .
		?s ex:title "La main gauche de la nuit"@fr .
		?s ex:local Book1 .
	}`)
	require.NoError(t, err)
	require.Len(t, q.Where, 4)
	assert.Equal(t, iri("http://example.org/name"), q.Where[0].Predicate)
	assert.Equal(t, rdf.Literal{Value: "Ursula K. Le Guin"}, q.Where[0].Object)
	assert.Equal(t, rdf.Literal{Value: "1969", Datatype: "http://www.w3.org/2001/XMLSchema#gYear"}, q.Where[1].Object)
	assert.Equal(t, rdf.Literal{Value: "La main gauche de la nuit", Language: "fr"}, q.Where[2].Object)
	// bare token with no prefix resolves against the default base
	assert.Equal(t, ex("Book1"), q.Where[3].Object)
}

func Test_ParseOptionalDots(t *testing.T) {
	ns := testNamespaces(t)
	with := MustParse(ns, `SELECT ?s WHERE { ?s ?p ?o . ?o ?q ?r . }`)
	without := MustParse(ns, `SELECT ?s WHERE { ?s ?p ?o ?o ?q ?r }`)
	assert.Equal(t, with.Where, without.Where)
}

func Test_ParseErrors(t *testing.T) {
	ns := testNamespaces(t)
	for _, in := range []string{
		``,
		`FETCH ?s WHERE { ?s ?p ?o }`,
		`SELECT WHERE { ?s ?p ?o }`,
		`SELECT ?s WHERE { ?s ?p }`,
		`SELECT ?s WHERE { ?s ?p ?o`,
		`SELECT ?s { ?s ?p ?o } trailing`,
	} {
		_, err := Parse(ns, in)
		assert.Error(t, err, "input: %s", in)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, "input: %s", in)
		assert.Equal(t, ParseTypeQuery, parseErr.ParseType)
	}
}

func Test_ParseErrorCoordinates(t *testing.T) {
	ns := testNamespaces(t)
	_, err := Parse(ns, "SELECT ?s WHERE {\n?s ?p\n}")
	require.Error(t, err)
	parseErr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.True(t, parseErr.Line >= 2, "error should point past the first line, got line %d", parseErr.Line)
	assert.Contains(t, parseErr.Error(), "line")
}

func Test_ParseUnknownPrefix(t *testing.T) {
	ns := testNamespaces(t)
	_, err := Parse(ns, `SELECT ?s WHERE { ?s foaf:knows ?o }`)
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.ErrorIs(t, err, rdf.ErrUnknownPrefix)
	assert.Contains(t, parseErr.Details, "foaf")
}

func Test_ParseRule(t *testing.T) {
	ns := testNamespaces(t)
	rule, err := ParseRule(ns, `?b ex:hasAuthor ?a => ?a ex:wrote ?b`)
	require.NoError(t, err)
	require.Len(t, rule.Antecedent, 1, "parsed: %s", dump(rule))
	require.Len(t, rule.Consequent, 1, "parsed: %s", dump(rule))
	assert.Equal(t, pat(v("b"), ex("hasAuthor"), v("a")), rule.Antecedent[0])
	assert.Equal(t, rdf.Template(pat(v("a"), ex("wrote"), v("b"))), rule.Consequent[0])
}

func Test_ParseRuleMultiClause(t *testing.T) {
	ns := testNamespaces(t)
	rule, err := ParseRule(ns,
		`?x ex:hasGenre ?g . ?y ex:hasGenre ?g => ?x ex:relatedTo ?y . ?y ex:relatedTo ?x`)
	require.NoError(t, err)
	assert.Len(t, rule.Antecedent, 2)
	assert.Len(t, rule.Consequent, 2)
}

func Test_ParseRuleEmptySides(t *testing.T) {
	ns := testNamespaces(t)
	t.Run("empty antecedent", func(t *testing.T) {
		rule, err := ParseRule(ns, `=> ex:a ex:b ex:c`)
		require.NoError(t, err)
		assert.Empty(t, rule.Antecedent)
		assert.Len(t, rule.Consequent, 1)
	})
	t.Run("empty consequent", func(t *testing.T) {
		rule, err := ParseRule(ns, `ex:a ex:b ex:c =>`)
		require.NoError(t, err)
		assert.Len(t, rule.Antecedent, 1)
		assert.Empty(t, rule.Consequent)
	})
}

func Test_ParseRuleErrors(t *testing.T) {
	ns := testNamespaces(t)
	for _, in := range []string{
		`?b ex:hasAuthor ?a`,                            // no arrow
		`?a ex:p ?b => ?b ex:q ?a => ?a ex:r ?b`,        // two arrows
		`?b ex:hasAuthor => ?a ex:wrote ?b`,             // short clause
	} {
		_, err := ParseRule(ns, in)
		require.Error(t, err, "input: %s", in)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, "input: %s", in)
		assert.Equal(t, ParseTypeRule, parseErr.ParseType)
	}
}

func Test_ParseTriples(t *testing.T) {
	ns := testNamespaces(t)
	triples, err := ParseTriples(ns, `
		ex:Book1 ex:hasAuthor ex:AuthorA .
		ex:Book1 rdf:type ex:Book .
	`)
	require.NoError(t, err)
	require.Len(t, triples, 2)
	assert.Equal(t, rdf.MustTriple(ex("Book1"), ex("hasAuthor"), ex("AuthorA")), triples[0])
}

func Test_ParseTriplesRejectsVariables(t *testing.T) {
	ns := testNamespaces(t)
	_, err := ParseTriples(ns, `ex:Book1 ex:hasAuthor ?a`)
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, ParseTypeTriples, parseErr.ParseType)
}

func Test_QueryString(t *testing.T) {
	ns := testNamespaces(t)
	q := MustParse(ns, `SELECT ?book WHERE { ?book ex:hasAuthor ?a . }`)
	s := q.String()
	assert.True(t, strings.HasPrefix(s, "SELECT ?book WHERE {"), s)
	assert.Contains(t, s, "?book <http://example.org/hasAuthor> ?a .")
}

func Test_MustParsePanics(t *testing.T) {
	ns := testNamespaces(t)
	assert.Panics(t, func() {
		MustParse(ns, `not a query`)
	})
}
