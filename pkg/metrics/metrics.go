// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics counts routing decisions with Prometheus collectors.
//
// The Recorder keeps its collectors in a private registry so several
// recorders can coexist in one process (and in tests). With no long-running
// server to scrape, the registry is exported in the node_exporter textfile
// format:
//
//	rec := metrics.NewRecorder()
//	r := router.New(table, router.WithObserver(rec))
//	...
//	err := rec.WriteTextfile("/var/lib/node_exporter/ucredirect.prom")
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/updatecenter/ucredirect/pkg/router"
)

// Recorder collects routing metrics. It implements router.Observer.
type Recorder struct {
	registry *prometheus.Registry

	routesTotal      *prometheus.CounterVec
	rulesLoaded      prometheus.Gauge
	rulesLoadSeconds prometheus.Histogram
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		routesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ucredirect_routes_total",
				Help: "Total number of routed versions by bucket and whether a rule matched",
			},
			[]string{"bucket", "matched"},
		),
		rulesLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ucredirect_rules_loaded",
				Help: "Number of rules in the active routing table",
			},
		),
		rulesLoadSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ucredirect_rules_load_duration_seconds",
				Help:    "Duration of rules loading in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
			},
		),
	}
}

// ObserveRoute implements router.Observer.
func (r *Recorder) ObserveRoute(_ string, result router.Result) {
	r.routesTotal.WithLabelValues(result.Bucket, strconv.FormatBool(result.Matched)).Inc()
}

// SetRulesLoaded records the size of the active routing table.
func (r *Recorder) SetRulesLoaded(n int) {
	r.rulesLoaded.Set(float64(n))
}

// ObserveRulesLoad records how long loading the rules took.
func (r *Recorder) ObserveRulesLoad(d time.Duration) {
	r.rulesLoadSeconds.Observe(d.Seconds())
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metric values to path in the Prometheus
// text format. The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
