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

// Package testutil provides helpers to test code using the prometheus package.
//
// ToFloat64 returns the value of a Counter or Gauge with a single label
// permutation. CollectAndCompare and GatherAndCompare compare the state of
// metrics with an expectation written in the Prometheus text exposition
// format.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/prometheus/client_openmetrics/prometheus"
)

// ToFloat64 returns the value of a Counter or Gauge with exactly one label
// permutation. It panics in all other cases. ToFloat64 is meant for testing
// only, e.g. to verify that a metric was incremented.
func ToFloat64(m prometheus.Metric) float64 {
	mf := gatherOne(m)
	if len(mf.Metric) != 1 {
		panic(fmt.Errorf("metric %q has %d label permutations, expected exactly one", mf.GetName(), len(mf.Metric)))
	}
	pb := mf.Metric[0]
	switch {
	case pb.Gauge != nil:
		return pb.Gauge.GetValue()
	case pb.Counter != nil:
		return pb.Counter.GetValue()
	}
	panic(fmt.Errorf("metric %q is of type %s, expected counter or gauge", mf.GetName(), mf.GetType()))
}

// CollectAndCount returns the number of label permutations of m.
func CollectAndCount(m prometheus.Metric) int {
	return len(gatherOne(m).Metric)
}

func gatherOne(m prometheus.Metric) *dto.MetricFamily {
	reg := prometheus.NewRegistry()
	if err := reg.Register(m); err != nil {
		panic(fmt.Errorf("registering metric failed: %w", err))
	}
	mfs, err := reg.Gather()
	if err != nil {
		panic(fmt.Errorf("gathering metric failed: %w", err))
	}
	return mfs[0]
}

// CollectAndCompare registers the provided metric with a newly created
// Registry. It then does the same as GatherAndCompare, gathering the metrics
// from that Registry.
func CollectAndCompare(m prometheus.Metric, expected io.Reader, metricNames ...string) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(m); err != nil {
		return fmt.Errorf("registering metric failed: %w", err)
	}
	return GatherAndCompare(reg, expected, metricNames...)
}

// GatherAndCompare gathers all metrics from the provided Registry and compares
// them to an expected output read from the provided Reader in the Prometheus
// text exposition format. If any metricNames are provided, only metrics with
// those names are compared.
//
// The text format has neither created timestamps nor exemplars, so they are
// not compared. Families, metrics and labels are compared regardless of
// their order, and an empty HELP equals a missing one.
func GatherAndCompare(reg *prometheus.Registry, expected io.Reader, metricNames ...string) error {
	got, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics failed: %w", err)
	}
	if metricNames != nil {
		got = filterMetrics(got, metricNames)
	}

	var tp expfmt.TextParser
	expectedByName, err := tp.TextToMetricFamilies(expected)
	if err != nil {
		return fmt.Errorf("parsing expected metrics failed: %w", err)
	}
	want := make([]*dto.MetricFamily, 0, len(expectedByName))
	for _, mf := range expectedByName {
		want = append(want, mf)
	}

	gotText, err := toText(normalizeMetricFamilies(got))
	if err != nil {
		return err
	}
	wantText, err := toText(normalizeMetricFamilies(want))
	if err != nil {
		return err
	}
	if gotText != wantText {
		return fmt.Errorf(`
metric output does not match expectation; want:

%s

got:

%s
`, wantText, gotText)
	}
	return nil
}

func filterMetrics(metrics []*dto.MetricFamily, names []string) []*dto.MetricFamily {
	var filtered []*dto.MetricFamily
	for _, m := range metrics {
		for _, name := range names {
			if m.GetName() == name {
				filtered = append(filtered, m)
				break
			}
		}
	}
	return filtered
}

// normalizeMetricFamilies returns sorted copies of mfs, stripped of
// everything the text format cannot express.
func normalizeMetricFamilies(mfs []*dto.MetricFamily) []*dto.MetricFamily {
	out := make([]*dto.MetricFamily, 0, len(mfs))
	for _, mf := range mfs {
		if len(mf.Metric) == 0 {
			continue
		}
		mf = proto.Clone(mf).(*dto.MetricFamily)
		if mf.GetHelp() == "" {
			mf.Help = nil
		}
		for _, m := range mf.Metric {
			sort.Slice(m.Label, func(i, j int) bool { return m.Label[i].GetName() < m.Label[j].GetName() })
			if m.Counter != nil {
				m.Counter.Exemplar = nil
				m.Counter.CreatedTimestamp = nil
			}
			if m.Summary != nil {
				m.Summary.CreatedTimestamp = nil
			}
			if h := m.Histogram; h != nil {
				h.CreatedTimestamp = nil
				buckets := h.Bucket[:0]
				for _, b := range h.Bucket {
					if !math.IsInf(b.GetUpperBound(), +1) {
						b.Exemplar = nil
						buckets = append(buckets, b)
					}
				}
				h.Bucket = buckets
			}
		}
		sort.Slice(mf.Metric, func(i, j int) bool {
			return labelsString(mf.Metric[i]) < labelsString(mf.Metric[j])
		})
		out = append(out, mf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

func labelsString(m *dto.Metric) string {
	var b strings.Builder
	for _, lp := range m.Label {
		fmt.Fprintf(&b, "%s=%q,", lp.GetName(), lp.GetValue())
	}
	return b.String()
}

// toText renders mfs in the text exposition format.
func toText(mfs []*dto.MetricFamily) (string, error) {
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return "", fmt.Errorf("encoding result failed: %w", err)
		}
	}
	return buf.String(), nil
}
