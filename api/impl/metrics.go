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

package impl

import (
	"github.com/prometheus/client_golang/prometheus"

	metricsutil "github.com/ternlabs/tern/util/metrics"
)

type apiMetrics struct {
	queriesTotal        *prometheus.CounterVec
	queryErrors         prometheus.Counter
	fetchLatencySeconds prometheus.Summary
}

var metrics apiMetrics

func init() {
	mr := metricsutil.Registry{R: prometheus.DefaultRegisterer}
	metrics = apiMetrics{
		queriesTotal: mr.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tern",
			Subsystem: "api",
			Name:      "queries_total",
			Help:      "The number of successfully answered queries, by query form.",
		}, []string{"form"}),
		queryErrors: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "tern",
			Subsystem: "api",
			Name:      "query_errors",
			Help:      "The number of query invocations that returned an error.",
		}),
		fetchLatencySeconds: mr.NewSummary(prometheus.SummaryOpts{
			Namespace:  "tern",
			Subsystem:  "api",
			Name:       "fetch_latency_seconds",
			Help:       "The time spent fetching and extracting the source document.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}),
	}
}
