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

package rdf

import (
	"errors"
	"fmt"
	"strings"
)

// RDFNS is the base of the W3C rdf: namespace.
const RDFNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// RDFType is the rdf:type predicate.
var RDFType = IRI{Value: RDFNS + "type"}

// ErrUnknownPrefix is returned (wrapped) when a compact identifier references
// a prefix that is not declared in the namespace table.
var ErrUnknownPrefix = errors.New("unknown namespace prefix")

// Namespaces maps short prefixes to IRI base strings. One prefix is the
// deployment default used to resolve bare tokens in rule and query text.
type Namespaces struct {
	prefixes      map[string]string
	defaultPrefix string
}

// NewNamespaces builds a namespace table. defaultPrefix must be a key of
// prefixes. The rdf prefix is added automatically if absent.
func NewNamespaces(defaultPrefix string, prefixes map[string]string) (*Namespaces, error) {
	if _, ok := prefixes[defaultPrefix]; !ok {
		return nil, fmt.Errorf("rdf: default prefix %q is not declared", defaultPrefix)
	}
	m := make(map[string]string, len(prefixes)+1)
	for k, v := range prefixes {
		m[k] = v
	}
	if _, ok := m["rdf"]; !ok {
		m["rdf"] = RDFNS
	}
	return &Namespaces{prefixes: m, defaultPrefix: defaultPrefix}, nil
}

// DefaultBase returns the base IRI of the default prefix.
func (ns *Namespaces) DefaultBase() string {
	return ns.prefixes[ns.defaultPrefix]
}

// Resolve expands a compact identifier such as "ex:hasAuthor" into a full
// IRI. The input must contain exactly one colon separating prefix and local
// part. An undeclared prefix resolves to an error wrapping ErrUnknownPrefix.
func (ns *Namespaces) Resolve(qname string) (IRI, error) {
	i := strings.Index(qname, ":")
	if i < 0 {
		return IRI{}, fmt.Errorf("rdf: %q is not a compact identifier", qname)
	}
	prefix, local := qname[:i], qname[i+1:]
	base, ok := ns.prefixes[prefix]
	if !ok {
		return IRI{}, fmt.Errorf("rdf: resolving %q: %w %q", qname, ErrUnknownPrefix, prefix)
	}
	return IRI{Value: base + local}, nil
}

// ResolveBare resolves a bare token against the default namespace. Tokens that
// already look like absolute IRIs pass through unchanged, and tokens holding a
// declared prefix resolve as compact identifiers.
func (ns *Namespaces) ResolveBare(token string) (IRI, error) {
	if IsAbsoluteIRI(token) {
		return IRI{Value: token}, nil
	}
	if strings.Contains(token, ":") {
		return ns.Resolve(token)
	}
	return IRI{Value: ns.DefaultBase() + token}, nil
}

// MustResolveBare is like ResolveBare but panics on error. Used to build
// fixed vocabulary terms from a validated namespace table.
func (ns *Namespaces) MustResolveBare(token string) IRI {
	iri, err := ns.ResolveBare(token)
	if err != nil {
		panic(err)
	}
	return iri
}

// IsAbsoluteIRI reports whether the token begins with a URI scheme, e.g.
// "http://", "https://", "urn:".
func IsAbsoluteIRI(token string) bool {
	i := strings.Index(token, ":")
	if i <= 0 {
		return false
	}
	scheme := token[:i]
	for j, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case j > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	rest := token[i+1:]
	return strings.HasPrefix(rest, "//") || scheme == "urn" || scheme == "mailto"
}
