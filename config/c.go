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

// Package config contains the configuration for a Tern server. The
// configuration is typically loaded from a JSON file on disk.
package config

import (
	"fmt"

	"github.com/ternlabs/tern/rdf"
)

// Tern describes the configuration for a Tern server.
type Tern struct {
	// Configuration for the API server. Required.
	API *API `json:"api"`

	// The namespace table used to resolve compact identifiers in query and
	// rule text, and to mint IRIs during document extraction. Required.
	Namespaces Namespaces `json:"namespaces"`

	// If non-nil, settings for fetching source documents. If nil, defaults
	// apply (10 second timeout).
	Fetch *Fetch `json:"fetch,omitempty"`

	// If non-nil, the configuration for distributed tracing (OpenTracing). If
	// nil, the server will not collect traces.
	Tracing *Tracing `json:"tracing,omitempty"`
}

// API contains configuration specific to the API server.
type API struct {
	// The host:port or :port on which to serve HTTP requests. Required.
	HTTPAddress string `json:"httpAddress"`
}

// Namespaces declares the prefix-to-IRI table. Default names the prefix used
// to resolve bare tokens; it must be a key of Prefixes.
type Namespaces struct {
	Default  string            `json:"default"`
	Prefixes map[string]string `json:"prefixes"`
}

// Build validates the table and returns the runtime namespace resolver.
func (n Namespaces) Build() (*rdf.Namespaces, error) {
	if n.Default == "" {
		return nil, fmt.Errorf("config: namespaces.default is required")
	}
	ns, err := rdf.NewNamespaces(n.Default, n.Prefixes)
	if err != nil {
		return nil, fmt.Errorf("config: %v", err)
	}
	return ns, nil
}

// Fetch contains settings for retrieving source documents over HTTP.
type Fetch struct {
	// Timeout for the whole fetch, in seconds. 0 means the 10 second default.
	TimeoutSeconds int `json:"timeoutSeconds"`

	// Overrides the User-Agent header sent with fetch requests.
	UserAgent string `json:"userAgent,omitempty"`
}

// Tracing contains configuration related to distributed execution tracing.
type Tracing struct {
	// Must be "jaeger" (for now).
	Type string `json:"type"`

	// Endpoint that accepts jaeger.thrift over HTTP directly from clients,
	// e.g. "http://jaeger:14268/api/traces".
	CollectorEndpoint string `json:"collectorEndpoint"`
}
