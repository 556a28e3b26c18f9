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
	p "github.com/vektah/goparsify"
)

var (
	// queryRoot is the parser function called by Parse. It extracts a
	// SELECT, ASK, CONSTRUCT or DESCRIBE query in its entirety.
	queryRoot p.Parser
	// ruleRoot is the parser function called by ParseRule. It extracts one
	// "antecedent => consequent" rule line.
	ruleRoot p.Parser
	// triplesRoot is the parser function called by ParseTriples. It extracts
	// a bare clause list, used for inline graph data.
	triplesRoot p.Parser
)

func init() {
	// unbroken character sequence used by variable names and language tags
	id := p.Chars("A-Za-z0-9_", 1)
	// bare/prefixed token character sequence; deliberately excludes '.' so
	// that the clause separator stays unambiguous. Full IRIs containing '.'
	// must be written inside angle brackets.
	nameChars := p.Chars("A-Za-z0-9_:/#%~+\\-", 1)
	// anything goes inside angle brackets except the closing bracket
	iriChars := p.NotChars("> \t\n", 1)

	variable := p.Seq("?", id).Map(func(n *p.Result) { // ?s
		n.Result = rawVariable{Name: n.Child[1].Token}
	})
	iri := p.Seq("<", p.Cut(), iriChars, ">").Map(func(n *p.Result) { // <http://example.org/x>
		n.Result = rawIRI{Value: n.Child[2].Token}
	})
	name := nameChars.Map(func(n *p.Result) { // ex:hasAuthor || Book1
		n.Result = rawName{Value: n.Token}
	})
	lang := p.Seq("@", id).Map(langTag)               // @en
	dtype := p.Seq("^^", p.Any(iri, name)).Map(child(1)) // ^^xsd:date || ^^<http://...>
	literal := p.Seq(p.StringLit(`"`), p.Maybe(p.Any(lang, dtype))).Map(literalValue)

	term := p.Any(variable, iri, literal, name)

	// a clause is exactly three terms; the trailing '.' separator is optional
	triple := p.Seq(term, term, term).Map(tripleClause)
	clause := p.Seq(triple, p.Maybe(".")).Map(child(0))
	clauseSeq := repeatZeroOrMore(clause).Map(tripleList)
	clauseSeq1 := repeatOneOrMore(clause).Map(tripleList)

	braced := p.Seq("{", p.Cut(), clauseSeq, "}").Map(child(2))
	whereClause := p.Any(p.Seq(ignoreCase("WHERE"), braced).Map(child(1)), braced)

	star := p.Exact("*").Map(func(n *p.Result) {
		n.Result = selectStar{}
	})
	selectVars := p.Any(star, repeatOneOrMore(variable).Map(varNames))
	selectQuery := p.Seq(ignoreCase("SELECT"), p.Cut(), selectVars, whereClause).Map(selectQueryDef)
	askQuery := p.Seq(ignoreCase("ASK"), p.Cut(), p.Any(whereClause, clauseSeq1)).Map(askQueryDef)
	constructQuery := p.Seq(ignoreCase("CONSTRUCT"), p.Cut(), braced, whereClause).Map(constructQueryDef)
	describeQuery := p.Seq(ignoreCase("DESCRIBE"), p.Cut(), p.Any(whereClause, clauseSeq1)).Map(describeQueryDef)

	queryRoot = p.Any(selectQuery, askQuery, constructQuery, describeQuery)

	// exactly one "=>" per rule; a second one is left unparsed and reported
	ruleRoot = p.Seq(clauseSeq, "=>", clauseSeq).Map(ruleDef)

	triplesRoot = clauseSeq
}
