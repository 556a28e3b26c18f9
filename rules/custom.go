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

	"github.com/ternlabs/tern/rdf"
)

// The heuristic tier is a stub matcher, not a rule interpreter. A line is
// recognized only when shaped "IF condition THEN action" or
// "condition => action", and the single implemented combination is a
// condition mentioning hasAuthor with an action mentioning wrote, which
// triggers the author-inversion derivation. Anything broader belongs in the
// declarative tier.

// applyCustom runs the heuristic matcher over the rule text. Unrecognized
// lines are silently ignored. A malformed recognized line fails the whole
// batch; the caller discards the partially extended graph.
func (e *Engine) applyCustom(g *rdf.Graph, text string) error {
	lineNo := 0
	for _, line := range strings.Split(text, "\n") {
		lineNo++
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		condition, action, ok, err := splitHeuristic(lineNo, line)
		if err != nil {
			return err
		}
		if !ok {
			logrus.WithFields(logrus.Fields{
				"line": lineNo,
				"rule": line,
			}).Debug("Ignoring unrecognized rule line")
			continue
		}
		if strings.Contains(condition, "hasAuthor") && strings.Contains(action, "wrote") {
			e.stepAuthorInversion(g)
		}
	}
	return nil
}

// splitHeuristic splits a line into its condition and action parts. ok is
// false for lines that match neither recognized shape.
func splitHeuristic(lineNo int, line string) (condition, action string, ok bool, err error) {
	// "IF" must stand alone as the first word; a longer word that merely
	// starts with those letters is not a rule keyword.
	if strings.HasPrefix(line, "IF ") {
		i := strings.Index(line, "THEN")
		if i < 0 {
			return "", "", false, &SyntaxError{
				Line:    lineNo,
				Text:    line,
				Details: "IF rule is missing THEN",
			}
		}
		return strings.TrimSpace(line[len("IF "):i]), strings.TrimSpace(line[i+len("THEN"):]), true, nil
	}
	switch parts := strings.Split(line, "=>"); len(parts) {
	case 1:
		return "", "", false, nil
	case 2:
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true, nil
	default:
		return "", "", false, &SyntaxError{
			Line:    lineNo,
			Text:    line,
			Details: "rule must contain exactly one '=>'",
		}
	}
}
