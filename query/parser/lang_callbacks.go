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

	"github.com/vektah/goparsify"
)

// selectStar marks a "SELECT *" projection.
type selectStar struct{}

// language is the intermediate result of an @tag.
type language struct {
	Value string
}

func langTag(n *goparsify.Result) {
	n.Result = language{Value: n.Child[1].Token}
}

func literalValue(n *goparsify.Result) {
	lit := rawLiteral{Value: n.Child[0].Token}
	switch suffix := n.Child[1].Result.(type) {
	case nil:
	case language:
		lit.Language = suffix.Value
	case rawTerm:
		lit.Datatype = suffix
	default:
		panic(fmt.Sprintf("unsupported literal suffix type: %T", suffix))
	}
	n.Result = lit
}

func tripleClause(n *goparsify.Result) {
	n.Result = rawTriple{
		subject:   n.Child[0].Result.(rawTerm),
		predicate: n.Child[1].Result.(rawTerm),
		object:    n.Child[2].Result.(rawTerm),
	}
}

func tripleList(n *goparsify.Result) {
	triples := make([]rawTriple, len(n.Child))
	for i, c := range n.Child {
		triples[i] = c.Result.(rawTriple)
	}
	n.Result = triples
}

func varNames(n *goparsify.Result) {
	names := make([]string, len(n.Child))
	for i, c := range n.Child {
		names[i] = c.Result.(rawVariable).Name
	}
	n.Result = names
}

func selectQueryDef(n *goparsify.Result) {
	q := &rawQuery{form: FormSelect, where: n.Child[3].Result.([]rawTriple)}
	switch sel := n.Child[2].Result.(type) {
	case selectStar:
		q.selectAll = true
	case []string:
		q.sel = sel
	default:
		panic(fmt.Sprintf("unsupported select clause type: %T", sel))
	}
	n.Result = q
}

func askQueryDef(n *goparsify.Result) {
	n.Result = &rawQuery{form: FormAsk, where: n.Child[2].Result.([]rawTriple)}
}

func constructQueryDef(n *goparsify.Result) {
	n.Result = &rawQuery{
		form:      FormConstruct,
		construct: n.Child[2].Result.([]rawTriple),
		where:     n.Child[3].Result.([]rawTriple),
	}
}

func describeQueryDef(n *goparsify.Result) {
	// DESCRIBE reuses its matched patterns as output templates; see the
	// resolve step.
	n.Result = &rawQuery{form: FormDescribe, where: n.Child[2].Result.([]rawTriple)}
}

func ruleDef(n *goparsify.Result) {
	n.Result = &rawRule{
		antecedent: n.Child[0].Result.([]rawTriple),
		consequent: n.Child[2].Result.([]rawTriple),
	}
}
