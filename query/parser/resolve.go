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

	"github.com/ternlabs/tern/rdf"
)

// The grammar produces raw terms carrying the text as written. This pass
// turns them into rdf terms, resolving compact names through the configured
// namespaces. It is separate from the grammar because the grammar is built
// once at init time while namespaces vary per deployment.

func (p *parser) resolveTerm(raw rawTerm) (rdf.Term, error) {
	switch t := raw.(type) {
	case rawVariable:
		return rdf.Variable{Name: t.Name}, nil
	case rawIRI:
		return rdf.IRI{Value: t.Value}, nil
	case rawName:
		iri, err := p.ns.ResolveBare(t.Value)
		if err != nil {
			return nil, fmt.Errorf("%w ('%s')", err, t.Value)
		}
		return iri, nil
	case rawLiteral:
		lit := rdf.Literal{Value: t.Value, Language: t.Language}
		if t.Datatype != nil {
			dt, err := p.resolveTerm(t.Datatype)
			if err != nil {
				return nil, err
			}
			iri, ok := dt.(rdf.IRI)
			if !ok {
				return nil, fmt.Errorf("literal datatype must be an IRI, not %T", dt)
			}
			lit.Datatype = iri.Value
		}
		return lit, nil
	}
	return nil, fmt.Errorf("unexpected term type: %T", raw)
}

func (p *parser) resolvePattern(raw rawTriple) (rdf.Pattern, error) {
	s, err := p.resolveTerm(raw.subject)
	if err != nil {
		return rdf.Pattern{}, err
	}
	pr, err := p.resolveTerm(raw.predicate)
	if err != nil {
		return rdf.Pattern{}, err
	}
	o, err := p.resolveTerm(raw.object)
	if err != nil {
		return rdf.Pattern{}, err
	}
	return rdf.Pattern{Subject: s, Predicate: pr, Object: o}, nil
}

func (p *parser) resolvePatterns(raw []rawTriple) ([]rdf.Pattern, error) {
	patterns := make([]rdf.Pattern, 0, len(raw))
	for _, rt := range raw {
		pat, err := p.resolvePattern(rt)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pat)
	}
	return patterns, nil
}

func (p *parser) resolveTemplates(raw []rawTriple) ([]rdf.Template, error) {
	patterns, err := p.resolvePatterns(raw)
	if err != nil {
		return nil, err
	}
	templates := make([]rdf.Template, len(patterns))
	for i, pat := range patterns {
		templates[i] = rdf.Template(pat)
	}
	return templates, nil
}

func (p *parser) resolveQuery(raw *rawQuery) (*Query, error) {
	query := &Query{
		Form:      raw.form,
		Select:    raw.sel,
		SelectAll: raw.selectAll,
	}
	var err error
	query.Where, err = p.resolvePatterns(raw.where)
	if err != nil {
		return nil, err
	}
	switch raw.form {
	case FormConstruct:
		query.Construct, err = p.resolveTemplates(raw.construct)
		if err != nil {
			return nil, err
		}
	case FormDescribe:
		// DESCRIBE re-emits the matched patterns, so the where clauses double
		// as the construction templates.
		query.Construct, err = p.resolveTemplates(raw.where)
		if err != nil {
			return nil, err
		}
	}
	return query, nil
}

func (p *parser) resolveRule(raw *rawRule) (*rdf.Rule, error) {
	rule := &rdf.Rule{}
	var err error
	rule.Antecedent, err = p.resolvePatterns(raw.antecedent)
	if err != nil {
		return nil, err
	}
	rule.Consequent, err = p.resolveTemplates(raw.consequent)
	if err != nil {
		return nil, err
	}
	return rule, nil
}
