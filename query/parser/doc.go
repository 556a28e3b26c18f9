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

// Package parser implements a parser combinator for the tern query language
// and for the one-line implication rule language. A parsed query is handed to
// the executor in query/exec; a parsed rule is applied by the rules engine.
//
// The query language is a small SPARQL-like subset: SELECT, ASK, CONSTRUCT and
// DESCRIBE over a basic graph pattern of whitespace-separated triples. The
// rule language is one rule per line of the form
//
//	?x ex:hasAuthor ?y => ?y ex:wrote ?x
//
// Compact identifiers are resolved against a configured namespace table; bare
// tokens resolve against the deployment's default namespace. Full IRIs that
// contain characters outside the bare-token set (notably '.') must be written
// in angle brackets.
//
// https://en.wikipedia.org/wiki/Parser_combinator
package parser
