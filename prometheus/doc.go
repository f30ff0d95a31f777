// Copyright 2026 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prometheus is the core instrumentation package. It provides the
// four metric kinds Counter, Gauge, Histogram and Summary, the stores keeping
// their values, and a Registry grouping them for exposition.
//
// Every metric keeps its values in a MetricStore obtained from a DataStore.
// Synchronized is safe for concurrent use, SingleThreaded is not. Values are
// kept per label permutation, together with a bounded collection of
// exemplars:
//
//	reg := prometheus.NewRegistry()
//	requests := reg.MustNewCounter(prometheus.CounterOpts{
//		Name:       "http_requests_total",
//		Help:       "Number of HTTP requests.",
//		LabelNames: []string{"code"},
//	})
//	e := prometheus.NewExemplar(prometheus.Labels("trace_id", traceID))
//	err := requests.Increment(prometheus.Labels("code", "200"), 1, &e)
//
// The openmetrics package renders a Registry as text, promhttp serves it over
// HTTP, and Registry.Gather converts it into the protobuf model of the
// client_model package.
package prometheus
