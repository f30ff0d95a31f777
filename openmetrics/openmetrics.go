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

// Package openmetrics renders the metrics of the prometheus package in an
// OpenMetrics-style text exposition format.
//
// The output follows the layout of the Prometheus text format: a TYPE line, an
// optional UNIT line and a HELP line, followed by one line per metric point.
// Metric points appear in the order the label permutations were first
// touched, and carry no timestamps. Exemplars are appended to counter and
// gauge points.
package openmetrics

import (
	"errors"
	"io"
	"strings"

	"github.com/prometheus/common/expfmt"

	"github.com/prometheus/client_openmetrics/prometheus"
)

const (
	// ContentType is the media type of the output produced by Writer and
	// Marshal.
	ContentType = "text/plain; version=0.0.1"

	// MediaType and Version identify OpenMetrics 1.0.0 for content
	// negotiation.
	MediaType = expfmt.OpenMetricsType
	Version   = expfmt.OpenMetricsVersion_1_0_0

	// OpenMetricsContentType is the content type of OpenMetrics 1.0.0. It is
	// not what this package produces: the output lacks the "# EOF" marker
	// and the point ordering that version requires.
	OpenMetricsContentType = string(expfmt.FmtOpenMetrics_1_0_0)

	// Delimiter separates lines and metrics.
	Delimiter = "\n"
)

// ErrUnknownMetricType is returned for metrics that are not one of
// *prometheus.Counter, *prometheus.Gauge, *prometheus.Histogram or
// *prometheus.Summary.
var ErrUnknownMetricType = errors.New("unknown metric type")

// Marshal renders all metrics registered with reg, in registration order.
// Every metric is followed by Delimiter.
func Marshal(reg *prometheus.Registry) (string, error) {
	var b strings.Builder
	if _, err := MarshalTo(&b, reg); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MarshalTo is like Marshal but writes to out. It returns the number of bytes
// written and any error encountered. Nothing of a metric is written if it
// cannot be rendered.
func MarshalTo(out io.Writer, reg *prometheus.Registry) (int64, error) {
	var written int64
	for _, m := range reg.Metrics() {
		text, err := NewWriter(m).Write()
		if err != nil {
			return written, err
		}
		n, err := io.WriteString(out, text+Delimiter)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
