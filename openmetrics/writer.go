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

package openmetrics

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_openmetrics/prometheus"
)

// Writer renders a single metric. It keeps no state between calls to Write;
// every call formats a fresh snapshot of the metric's store.
type Writer struct {
	metric prometheus.Metric
}

// NewWriter returns a Writer for m.
func NewWriter(m prometheus.Metric) *Writer {
	return &Writer{metric: m}
}

// Write returns the exposition of the metric, lines joined by Delimiter and
// without a trailing Delimiter.
func (w *Writer) Write() (string, error) {
	var lines []string
	switch m := w.metric.(type) {
	case *prometheus.Counter:
		lines = writeCounter(m)
	case *prometheus.Gauge:
		lines = writeGauge(m)
	case *prometheus.Histogram:
		lines = writeHistogram(m)
	case *prometheus.Summary:
		lines = writeSummary(m)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownMetricType, w.metric)
	}
	return strings.Join(lines, Delimiter), nil
}

// WriteTo implements io.WriterTo.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	text, err := w.Write()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(out, text)
	return int64(n), err
}

// header returns the TYPE, UNIT and HELP lines.
func header(name string, desc *prometheus.Desc) []string {
	lines := []string{fmt.Sprintf("# TYPE %s %s", name, desc.Type())}
	if unit := desc.Unit(); unit != "" {
		lines = append(lines, fmt.Sprintf("# UNIT %s %s", name, unit))
	}
	return append(lines, fmt.Sprintf("# HELP %s %s", name, escapeHelp(desc.Help())))
}

func writeGauge(g *prometheus.Gauge) []string {
	name := g.Desc().Name()
	lines := header(name, g.Desc())
	for _, lv := range g.Values() {
		e, ok := lv.Value.MostRecentExemplar()
		lines = append(lines, sample(name, lv.Labels, "", "", formatFloat(lv.Value.Value()), exemplarOrNil(e, ok)))
	}
	return lines
}

// writeCounter emits a value and a _created line per permutation, followed by
// an unlabeled _total line holding the sum over all permutations and the most
// recent exemplar among them.
func writeCounter(c *prometheus.Counter) []string {
	name := strings.TrimSuffix(c.Desc().Name(), "_total")
	lines := header(name, c.Desc())

	var (
		total  float64
		latest *prometheus.Exemplar
	)
	for _, lv := range c.Values() {
		total += lv.Value.Value()
		e, ok := lv.Value.MostRecentExemplar()
		if ok && (latest == nil || e.Timestamp > latest.Timestamp) {
			latest = &e
		}
		lines = append(lines,
			sample(name, lv.Labels, "", "", formatFloat(lv.Value.Value()), exemplarOrNil(e, ok)),
			sample(name+"_created", lv.Labels, "", "", formatTime(lv.Value.Created()), nil),
		)
	}
	return append(lines, sample(name+"_total", nil, "", "", formatFloat(total), latest))
}

func writeHistogram(h *prometheus.Histogram) []string {
	name := h.Desc().Name()
	lines := header(name, h.Desc())

	var bounds []string
	for _, b := range h.Buckets() {
		bounds = append(bounds, formatFloat(b))
	}
	bounds = append(bounds, prometheus.InfBucket)

	for _, hv := range h.Values() {
		for _, le := range bounds {
			lines = append(lines, sample(name+"_bucket", hv.Labels, "le", le, formatFloat(hv.Buckets[le]), nil))
		}
		lines = append(lines,
			sample(name+"_sum", hv.Labels, "", "", formatFloat(hv.Sum()), nil),
			sample(name+"_count", hv.Labels, "", "", formatFloat(hv.Count()), nil),
		)
	}
	return lines
}

func writeSummary(s *prometheus.Summary) []string {
	name := s.Desc().Name()
	lines := header(name, s.Desc())
	for _, sv := range s.Values() {
		lines = append(lines,
			sample(name+"_sum", sv.Labels, "", "", formatFloat(sv.Sum), nil),
			sample(name+"_count", sv.Labels, "", "", formatFloat(sv.Count), nil),
			sample(name+"_created", sv.Labels, "", "", formatTime(sv.Created), nil),
		)
	}
	return lines
}

func exemplarOrNil(e prometheus.Exemplar, ok bool) *prometheus.Exemplar {
	if !ok {
		return nil
	}
	return &e
}

// sample renders one metric point, given the metric name, the label set,
// optionally an additional label name and value (use empty strings if not
// required), the formatted value and an optional exemplar.
func sample(
	name string,
	labels prometheus.LabelSet,
	additionalLabelName, additionalLabelValue string,
	value string,
	e *prometheus.Exemplar,
) string {
	var b strings.Builder
	b.WriteString(name)
	writeLabels(&b, labels, additionalLabelName, additionalLabelValue, false)
	b.WriteByte(' ')
	b.WriteString(value)
	if e != nil {
		b.WriteString(" # ")
		writeLabels(&b, e.Labels, "", "", true)
		b.WriteByte(' ')
		b.WriteString(formatFloat(e.Value()))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(e.Timestamp, 10))
	}
	return b.String()
}

// writeLabels writes the label pairs plus the explicitly given additional
// label pair, escaped and enclosed in '{...}'. Unless braced is set, nothing
// is written if there are no labels at all.
func writeLabels(
	b *strings.Builder,
	labels prometheus.LabelSet,
	additionalLabelName, additionalLabelValue string,
	braced bool,
) {
	if len(labels) == 0 && additionalLabelName == "" && !braced {
		return
	}
	separator := byte('{')
	for _, lp := range labels {
		b.WriteByte(separator)
		fmt.Fprintf(b, `%s="%s"`, lp.Name, escapeLabelValue(lp.Value))
		separator = ','
	}
	if additionalLabelName != "" {
		b.WriteByte(separator)
		fmt.Fprintf(b, `%s="%s"`, additionalLabelName, escapeLabelValue(additionalLabelValue))
		separator = ','
	}
	if separator == '{' {
		b.WriteByte('{')
	}
	b.WriteByte('}')
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatTime renders t as seconds since the epoch with a fractional part.
func formatTime(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixNano())/1e9, 'f', -1, 64)
}
