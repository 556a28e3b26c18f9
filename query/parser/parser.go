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
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/vektah/goparsify"

	"github.com/ternlabs/tern/rdf"
	"github.com/ternlabs/tern/util/cmp"
	ternuni "github.com/ternlabs/tern/util/unicode"
)

// Parse types reported inside ParseError. A rule parse error is the rule
// syntax error of the external API; everything else is a query syntax error.
const (
	ParseTypeQuery   = "query"
	ParseTypeRule    = "rule"
	ParseTypeTriples = "triples"
)

// MustParse parses a query and panics if an error occurs. It simplifies
// variable initialization. This is primarily meant for writing unit tests.
func MustParse(ns *rdf.Namespaces, in string) *Query {
	query, err := Parse(ns, in)
	if err != nil {
		panic(fmt.Sprintf("unable to parse query: '%s': %v", strings.Replace(in, "\n", "\\n", -1), err))
	}
	return query
}

// Parse parses query text and builds a query definition. Compact identifiers
// are resolved through ns; a reference to an undeclared prefix is a parse
// error.
func Parse(ns *rdf.Namespaces, in string) (*Query, error) {
	p := &parser{in: ternuni.Normalize(in), ns: ns}
	return p.parseQuery()
}

// ParseRule parses one textual declarative rule of the form
// "antecedent-clauses => consequent-clauses". Either clause list may be
// empty. Exactly one "=>" must appear.
func ParseRule(ns *rdf.Namespaces, in string) (*rdf.Rule, error) {
	p := &parser{in: ternuni.Normalize(in), ns: ns}
	return p.parseRule()
}

// ParseTriples parses a bare clause list into stored triples. Variables are
// not allowed; the input describes ground data, not a pattern.
func ParseTriples(ns *rdf.Namespaces, in string) ([]rdf.Triple, error) {
	p := &parser{in: ternuni.Normalize(in), ns: ns}
	return p.parseTriples()
}

// parser implementation
type parser struct {
	in string
	ns *rdf.Namespaces
}

// parse runs the supplied goparsify parser over the input. If it is unable to
// fully parse the input a ParseError is returned that includes the position
// of where it parsed to, and what the problem is.
func (p *parser) parse(typ string, parser goparsify.Parser) (*goparsify.Result, error) {
	state := goparsify.NewState(p.in)
	state.WS = goparsify.UnicodeWhitespace

	result := &goparsify.Result{}
	parser(state, result)
	if state.Errored() {
		line, col := coordinates(p.in, state.Error.Pos())
		exp := strings.TrimPrefix(fmt.Sprintf("%q", expectedText(&state.Error)), `"`)
		exp = strings.TrimSuffix(exp, `"`)
		return nil, &ParseError{
			ParseType: typ,
			Input:     p.in,
			Offset:    state.Error.Pos(),
			Line:      line,
			Column:    col,
			Details:   "expected " + exp,
		}
	}
	// consume tail whitespace and check for unparsed text
	state.WS(state)
	unparsed := state.Get()
	if unparsed != "" {
		line, col := coordinates(p.in, state.Pos)
		return nil, &ParseError{
			ParseType: typ,
			Input:     p.in,
			Offset:    state.Pos,
			Line:      line,
			Column:    col,
			Details:   fmt.Sprintf("unparsed text: '%s'", strings.TrimRightFunc(unparsed, unicode.IsSpace)),
		}
	}
	return result, nil
}

// resolveErr wraps a namespace resolution failure in a ParseError so callers
// see one error shape per parse entry point.
func (p *parser) resolveErr(typ string, err error) error {
	return &ParseError{
		ParseType: typ,
		Input:     p.in,
		Line:      1,
		Column:    1,
		Details:   err.Error(),
		Cause:     err,
	}
}

func (p *parser) parseQuery() (*Query, error) {
	result, err := p.parse(ParseTypeQuery, queryRoot)
	if err != nil {
		return nil, err
	}
	raw, ok := result.Result.(*rawQuery)
	if !ok {
		return nil, fmt.Errorf("invalid result type: %T", result.Result)
	}
	query, err := p.resolveQuery(raw)
	if err != nil {
		return nil, p.resolveErr(ParseTypeQuery, err)
	}
	return query, nil
}

func (p *parser) parseRule() (*rdf.Rule, error) {
	result, err := p.parse(ParseTypeRule, ruleRoot)
	if err != nil {
		return nil, err
	}
	raw, ok := result.Result.(*rawRule)
	if !ok {
		return nil, fmt.Errorf("invalid result type: %T", result.Result)
	}
	rule, err := p.resolveRule(raw)
	if err != nil {
		return nil, p.resolveErr(ParseTypeRule, err)
	}
	return rule, nil
}

func (p *parser) parseTriples() ([]rdf.Triple, error) {
	result, err := p.parse(ParseTypeTriples, triplesRoot)
	if err != nil {
		return nil, err
	}
	raw, ok := result.Result.([]rawTriple)
	if !ok {
		return nil, fmt.Errorf("invalid result type: %T", result.Result)
	}
	patterns, err := p.resolvePatterns(raw)
	if err != nil {
		return nil, p.resolveErr(ParseTypeTriples, err)
	}
	triples := make([]rdf.Triple, 0, len(patterns))
	for _, pat := range patterns {
		t, err := rdf.NewTriple(pat.Subject, pat.Predicate, pat.Object)
		if err != nil {
			return nil, p.resolveErr(ParseTypeTriples, err)
		}
		triples = append(triples, t)
	}
	return triples, nil
}

// ParseError captures more detailed information about a parsing error, and
// where it occurred.
type ParseError struct {
	// query, rule or triples.
	ParseType string
	// The input string to the parser which resulted in this error.
	Input string
	// Offset is the byte offset into 'Input' at which the error ocurred.
	Offset int
	// Line is the line number in 'Input' at which the error ocurred.
	Line int
	// Column is the column (in runes) into the indicated Line that the error
	// ocurred. Line & Column represent the same point in 'Input' as 'Offset'.
	Column int
	// The specific parser error that ocurred.
	Details string
	// If the parse failed while resolving a namespace prefix, the underlying
	// resolution error.
	Cause error
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("unable to parse %s: line %d column %d: %s",
		p.ParseType, p.Line, p.Column, p.Details)
}

// Unwrap returns the resolution error, if any.
func (p *ParseError) Unwrap() error {
	return p.Cause
}

// coordinates returns the line & column of the supplied offset in the string
// 'input'. Offset is in bytes, the returned column value is in runes.
func coordinates(input string, atOffset int) (line, col int) {
	// Trim any trailing whitespace from the input, as most people wouldn't
	// consider it an expected place for an error.
	input = strings.TrimRightFunc(input, unicode.IsSpace)
	// Don't let atOffset be past the end of the input.
	atOffset = cmp.MinInt(atOffset, len(input))

	lines := strings.Split(input, "\n")
	current := 0
	line = 1
	for _, l := range lines {
		if current+len(l) >= atOffset {
			// offset is in bytes, but the reported column should be based on runes.
			col = utf8.RuneCountInString(l[:atOffset-current]) + 1
			return line, col
		}
		line++
		current += len(l) + 1 // remember to consume the \n
	}
	panic(fmt.Sprintf("shouldn't get here. Input was '%s' atOffset: %d", input, atOffset))
}

// expectedText extracts from the supplied goparsify Error the expected text
// i.e. the error from an unmatched parser. This relies on the format of the
// error message generated by goparsify.
func expectedText(e *goparsify.Error) string {
	msg := e.Error()
	expectedIdx := strings.Index(msg, "expected")
	if expectedIdx == -1 {
		logrus.WithField("err", msg).
			Warn("Got goparsify error with missing 'expected' string")
		return msg
	}
	expected := msg[expectedIdx+len("expected")+1:]
	return expected
}
