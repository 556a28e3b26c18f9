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

// Package impl implements the Tern HTTP API server.
package impl

import (
	"context"
	"net/http"
	_ "net/http/pprof" // enable pprof endpoints

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ternlabs/tern/config"
	"github.com/ternlabs/tern/extract"
	"github.com/ternlabs/tern/rdf"
	"github.com/ternlabs/tern/rules"
	"github.com/ternlabs/tern/util/clocks"
	"github.com/ternlabs/tern/util/web"
)

// New returns a new instance of the API server. The returned Server will not
// start handling traffic until a subsequent call to Server.Run().
func New(cfg *config.Tern) (*Server, error) {
	ns, err := cfg.Namespaces.Build()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:       cfg,
		ns:        ns,
		engine:    rules.NewEngine(ns),
		extractor: extract.New(ns, cfg.Fetch),
		clock:     clocks.Wall,
	}, nil
}

// Server is the HTTP interface to Tern: it harvests a source document into a
// graph, applies the requested rule tier and runs the caller's query.
type Server struct {
	cfg       *config.Tern
	ns        *rdf.Namespaces
	engine    *rules.Engine
	extractor documentSource
	clock     clocks.Source
}

// documentSource provides an abstraction from document retrieval to aid in
// testing.
type documentSource interface {
	FromURL(ctx context.Context, url string) (*rdf.Graph, error)
}

// Run will start listening for HTTP requests.
// This function will block until the server is shutdown.
func (s *Server) Run() error {
	m := httprouter.New()

	m.GET("/", s.home)
	m.POST("/q", s.queryHTTP)
	m.POST("/query", s.queryHTTP)
	m.GET("/health", s.health)
	// prometheus metrics
	m.Handler("GET", "/metrics", promhttp.Handler())

	m.NotFound = http.DefaultServeMux
	logger := func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("[API] %v %v", r.Method, r.URL)
		m.ServeHTTP(w, r)
	}
	log.Infof("Tern API server listening on %v", s.cfg.API.HTTPAddress)
	return http.ListenAndServe(s.cfg.API.HTTPAddress, http.HandlerFunc(logger))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	web.Write(w, "ok\n")
}
