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

// Package extract fetches web documents and harvests the structured data they
// embed (RDFa-style attributes) into a graph. It is the collaborator that
// feeds the query and rule layers; its errors surface to the caller before
// any query runs.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/ternlabs/tern/config"
	"github.com/ternlabs/tern/rdf"
)

const defaultTimeout = 10 * time.Second

// SourceError reports that the source document could not be retrieved:
// network failure, timeout or a non-success HTTP status.
type SourceError struct {
	URL string
	// HTTP status code, or 0 when the request never got a response.
	Status int
	Err    error
}

func (e *SourceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("could not fetch %s: server returned status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("could not fetch %s: %v", e.URL, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ExtractError reports that a retrieved document could not be processed into
// a graph.
type ExtractError struct {
	URL string
	Err error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("could not extract structured data from %s: %v", e.URL, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// Extractor fetches documents and builds graphs from their embedded
// structured data. Safe for concurrent use.
type Extractor struct {
	client    *http.Client
	userAgent string
	ns        *rdf.Namespaces
}

// New builds an Extractor. cfg may be nil, in which case defaults apply.
func New(ns *rdf.Namespaces, cfg *config.Fetch) *Extractor {
	timeout := defaultTimeout
	userAgent := "tern/1.0"
	if cfg != nil {
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.UserAgent != "" {
			userAgent = cfg.UserAgent
		}
	}
	return &Extractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		ns:        ns,
	}
}

// FromURL fetches the document at url and extracts its embedded triples.
func (x *Extractor) FromURL(ctx context.Context, url string) (*rdf.Graph, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &SourceError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", x.userAgent)
	resp, err := x.client.Do(req)
	if err != nil {
		return nil, &SourceError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SourceError{URL: url, Status: resp.StatusCode}
	}
	g, err := x.FromHTML(resp.Body)
	if err != nil {
		return nil, &ExtractError{URL: url, Err: err}
	}
	logrus.WithFields(logrus.Fields{
		"url":     url,
		"triples": g.Len(),
	}).Info("Extracted structured data")
	return g, nil
}

// FromHTML parses an HTML document and collects the triples expressed by its
// RDFa-style attributes (about, typeof, property, resource, content).
func (x *Extractor) FromHTML(r io.Reader) (*rdf.Graph, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	g := rdf.NewGraph()
	x.walk(doc, nil, g)
	return g, nil
}

// walk traverses the node tree carrying the current subject. An about or
// typeof attribute establishes a new subject for the element and its
// descendants; property attributes emit one triple against the current
// subject.
func (x *Extractor) walk(n *html.Node, subject rdf.Term, g *rdf.Graph) {
	if n.Type == html.ElementNode {
		attrs := attributes(n)

		if about, ok := attrs["about"]; ok {
			if iri, err := x.ns.ResolveBare(about); err == nil {
				subject = iri
			}
		}
		if typeof, ok := attrs["typeof"]; ok && subject != nil {
			if class, err := x.ns.ResolveBare(typeof); err == nil {
				g.Add(rdf.Triple{Subject: subject, Predicate: rdf.RDFType, Object: class})
			}
		}
		if property, ok := attrs["property"]; ok && subject != nil {
			if predicate, err := x.ns.ResolveBare(property); err == nil {
				if object := x.objectOf(n, attrs); object != nil {
					g.Add(rdf.Triple{Subject: subject, Predicate: predicate, Object: object})
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		x.walk(c, subject, g)
	}
}

// objectOf picks the object for a property element: an explicit resource
// reference, an explicit content literal, or the element's text.
func (x *Extractor) objectOf(n *html.Node, attrs map[string]string) rdf.Term {
	if resource, ok := attrs["resource"]; ok {
		if iri, err := x.ns.ResolveBare(resource); err == nil {
			return iri
		}
		return nil
	}
	if href, ok := attrs["href"]; ok {
		if iri, err := x.ns.ResolveBare(href); err == nil {
			return iri
		}
		return nil
	}
	if content, ok := attrs["content"]; ok {
		return rdf.Literal{Value: content}
	}
	if text := textContent(n); text != "" {
		return rdf.Literal{Value: text}
	}
	return nil
}

func attributes(n *html.Node) map[string]string {
	out := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		out[a.Key] = a.Val
	}
	return out
}

func textContent(n *html.Node) string {
	var out string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			out += c.Data
		} else {
			out += textContent(c)
		}
	}
	return strings.TrimSpace(out)
}
