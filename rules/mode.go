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
	"fmt"
	"strings"
)

type modeKind int

const (
	kindNone modeKind = iota
	kindBasic
	kindAdvanced
	kindCustom
	kindDeclarative
)

// Mode selects which rule tier an Apply invocation runs. The Custom and
// Declarative tiers carry the rule text as a payload; adding a tier means
// adding a constructor, not a new string branch.
type Mode struct {
	kind modeKind
	text string
}

// None applies no rules; the graph passes through unchanged.
func None() Mode {
	return Mode{kind: kindNone}
}

// Basic runs the fixed basic derivation pipeline.
func Basic() Mode {
	return Mode{kind: kindBasic}
}

// Advanced runs the basic pipeline followed by the advanced steps.
func Advanced() Mode {
	return Mode{kind: kindAdvanced}
}

// Custom runs the heuristic IF/THEN matcher over the given rule text.
func Custom(text string) Mode {
	return Mode{kind: kindCustom, text: text}
}

// Declarative runs the "antecedent => consequent" rule language over the
// given text, one rule per line.
func Declarative(text string) Mode {
	return Mode{kind: kindDeclarative, text: text}
}

func (m Mode) String() string {
	switch m.kind {
	case kindNone:
		return "none"
	case kindBasic:
		return "basic"
	case kindAdvanced:
		return "advanced"
	case kindCustom:
		return "custom"
	case kindDeclarative:
		return "declarative"
	}
	return fmt.Sprintf("Mode(%d)", int(m.kind))
}

// ParseMode maps an external mode name, e.g. an HTTP form value, to a Mode.
// The rule text applies to the custom and declarative tiers and is ignored by
// the others.
func ParseMode(name, text string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None(), nil
	case "basic":
		return Basic(), nil
	case "advanced":
		return Advanced(), nil
	case "custom":
		return Custom(text), nil
	case "declarative", "cwm":
		return Declarative(text), nil
	}
	return Mode{}, fmt.Errorf("rules: unknown rule mode: %q", name)
}
