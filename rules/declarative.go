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
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ternlabs/tern/query/exec"
	"github.com/ternlabs/tern/query/parser"
	"github.com/ternlabs/tern/rdf"
)

// applyDeclarative runs one rule per non-blank line, in order, over the
// running graph. Each rule's antecedent is evaluated through the query
// engine against the graph as extended by earlier rules in the batch; the
// rule's own derivations are merged in afterwards, so a rule never feeds its
// own antecedent (single pass, no intra-rule fixpoint). A rule that fails to
// parse is skipped with a diagnostic and the batch continues, unlike the
// heuristic tier's all-or-nothing behavior.
func (e *Engine) applyDeclarative(g *rdf.Graph, text string) *Report {
	report := &Report{}
	lineNo := 0
	for _, line := range strings.Split(text, "\n") {
		lineNo++
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rule, err := parser.ParseRule(e.ns, line)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"line":  lineNo,
				"rule":  line,
				"error": err,
			}).Warn("Skipping declarative rule")
			report.Skipped = append(report.Skipped, Diagnostic{
				Line: lineNo,
				Rule: line,
				Err:  err,
			})
			continue
		}
		rows := exec.Evaluate(g, rule.Antecedent)
		for _, t := range exec.InstantiateAll(rows, rule.Consequent).Triples() {
			if g.Add(t) {
				report.Added++
			}
		}
	}
	return report
}
