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
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/prometheus/client_openmetrics/prometheus"
)

var created = time.Unix(1700000000, 500000000)

func newRegistry() *prometheus.Registry {
	return prometheus.NewRegistry(prometheus.WithDataStore(prometheus.Synchronized{
		Now: func() time.Time { return created },
	}))
}

func mustWrite(t *testing.T, m prometheus.Metric) []string {
	t.Helper()
	text, err := NewWriter(m).Write()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return strings.Split(text, Delimiter)
}

func TestWriteCounter(t *testing.T) {
	reg := newRegistry()
	foo := reg.MustNewCounter(prometheus.CounterOpts{
		Name:         "foo",
		Help:         "foo description",
		Unit:         "hotdogs",
		LabelNames:   []string{"umlauts", "utf", "code"},
		PresetLabels: prometheus.Labels("umlauts", "Björn", "utf", "佖佥"),
	})
	for _, s := range []struct {
		code string
		by   float64
	}{
		{"red", 42},
		{"green", 3.14e42},
		{"blue", 1.23e-45},
	} {
		if err := foo.Increment(prometheus.Labels("code", s.code), s.by, nil); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"# TYPE foo counter",
		"# UNIT foo hotdogs",
		"# HELP foo foo description",
		`foo{umlauts="Björn",utf="佖佥",code="red"} 42`,
		`foo_created{umlauts="Björn",utf="佖佥",code="red"} 1700000000.5`,
		`foo{umlauts="Björn",utf="佖佥",code="green"} 3.14e+42`,
		`foo_created{umlauts="Björn",utf="佖佥",code="green"} 1700000000.5`,
		`foo{umlauts="Björn",utf="佖佥",code="blue"} 1.23e-45`,
		`foo_created{umlauts="Björn",utf="佖佥",code="blue"} 1700000000.5`,
		"foo_total 3.14e+42",
	}
	if diff := cmp.Diff(want, mustWrite(t, foo)); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestWriteCounterExemplars(t *testing.T) {
	reg := newRegistry()
	c := reg.MustNewCounter(prometheus.CounterOpts{
		Name:       "requests_total",
		Help:       "Requests.",
		LabelNames: []string{"code"},
	})
	incr := func(code string, by float64, traceID string, ts int64) {
		t.Helper()
		e := prometheus.NewExemplarAt(prometheus.Labels("trace_id", traceID), ts)
		if err := c.Increment(prometheus.Labels("code", code), by, &e); err != nil {
			t.Fatal(err)
		}
	}
	incr("200", 1, "a", 100)
	incr("404", 2, "b", 200)
	incr("500", 4, "c", 200)
	if err := c.Inc(prometheus.Labels("code", "503")); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"# TYPE requests counter",
		"# HELP requests Requests.",
		`requests{code="200"} 1 # {trace_id="a"} 1 100`,
		`requests_created{code="200"} 1700000000.5`,
		`requests{code="404"} 2 # {trace_id="b"} 2 200`,
		`requests_created{code="404"} 1700000000.5`,
		`requests{code="500"} 4 # {trace_id="c"} 4 200`,
		`requests_created{code="500"} 1700000000.5`,
		`requests{code="503"} 1`,
		`requests_created{code="503"} 1700000000.5`,
		// On equal timestamps the first permutation seen wins.
		`requests_total 8 # {trace_id="b"} 2 200`,
	}
	if diff := cmp.Diff(want, mustWrite(t, c)); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestWriteEmptyCounter(t *testing.T) {
	reg := newRegistry()
	c := reg.MustNewCounter(prometheus.CounterOpts{Name: "c_total", LabelNames: []string{"a"}})
	want := []string{
		"# TYPE c counter",
		"# HELP c ",
		"c_total 0",
	}
	if diff := cmp.Diff(want, mustWrite(t, c)); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestWriteGauge(t *testing.T) {
	reg := newRegistry()
	g := reg.MustNewGauge(prometheus.GaugeOpts{
		Name:       "temperature_celsius",
		Help:       "Room temperature.",
		Unit:       "celsius",
		LabelNames: []string{"room"},
	})
	if err := g.Set(prometheus.Labels("room", "kitchen"), 21.5, nil); err != nil {
		t.Fatal(err)
	}
	e := prometheus.NewExemplarAt(nil, 42)
	if err := g.Set(prometheus.Labels("room", "hall"), -3, &e); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"# TYPE temperature_celsius gauge",
		"# UNIT temperature_celsius celsius",
		"# HELP temperature_celsius Room temperature.",
		`temperature_celsius{room="kitchen"} 21.5`,
		`temperature_celsius{room="hall"} -3 # {} -3 42`,
	}
	if diff := cmp.Diff(want, mustWrite(t, g)); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestWriteHistogram(t *testing.T) {
	reg := newRegistry()
	h := reg.MustNewHistogram(prometheus.HistogramOpts{
		Opts:    prometheus.Opts{Name: "bar", Help: "bar description"},
		Buckets: []float64{10, 20, 30},
	})
	for _, v := range []float64{12, 3.2} {
		if err := h.Observe(nil, v); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"# TYPE bar histogram",
		"# HELP bar bar description",
		`bar_bucket{le="10"} 1`,
		`bar_bucket{le="20"} 2`,
		`bar_bucket{le="30"} 2`,
		`bar_bucket{le="+Inf"} 2`,
		"bar_sum 15.2",
		"bar_count 2",
	}
	if diff := cmp.Diff(want, mustWrite(t, h)); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestWriteLabeledHistogram(t *testing.T) {
	reg := newRegistry()
	h := reg.MustNewHistogram(prometheus.HistogramOpts{
		Opts:    prometheus.Opts{Name: "latency_seconds", LabelNames: []string{"path"}},
		Buckets: []float64{0.5, 2.5},
	})
	if err := h.Observe(prometheus.Labels("path", "/"), 3); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"# TYPE latency_seconds histogram",
		"# HELP latency_seconds ",
		`latency_seconds_bucket{path="/",le="0.5"} 0`,
		`latency_seconds_bucket{path="/",le="2.5"} 0`,
		`latency_seconds_bucket{path="/",le="+Inf"} 1`,
		`latency_seconds_sum{path="/"} 3`,
		`latency_seconds_count{path="/"} 1`,
	}
	if diff := cmp.Diff(want, mustWrite(t, h)); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestWriteSummary(t *testing.T) {
	reg := newRegistry()
	s := reg.MustNewSummary(prometheus.SummaryOpts{
		Name:       "rpc_duration_seconds",
		Help:       "RPC latency.",
		Unit:       "seconds",
		LabelNames: []string{"service"},
	})
	e := prometheus.NewExemplarAt(prometheus.Labels("trace_id", "x"), 7)
	for _, v := range []float64{0.25, 0.5} {
		if err := s.Observe(prometheus.Labels("service", "auth"), v, &e); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"# TYPE rpc_duration_seconds summary",
		"# UNIT rpc_duration_seconds seconds",
		"# HELP rpc_duration_seconds RPC latency.",
		`rpc_duration_seconds_sum{service="auth"} 0.75`,
		`rpc_duration_seconds_count{service="auth"} 2`,
		`rpc_duration_seconds_created{service="auth"} 1700000000.5`,
	}
	if diff := cmp.Diff(want, mustWrite(t, s)); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestWriteEscaping(t *testing.T) {
	reg := newRegistry()
	g := reg.MustNewGauge(prometheus.GaugeOpts{
		Name:       "escaped",
		Help:       "first line\nsecond \\ line with \"quotes\"",
		LabelNames: []string{"v"},
	})
	if err := g.Set(prometheus.Labels("v", "say \"hi\"\\\nbye"), 1, nil); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"# TYPE escaped gauge",
		`# HELP escaped first line\nsecond \\ line with "quotes"`,
		`escaped{v="say \"hi\"\\\nbye"} 1`,
	}
	if diff := cmp.Diff(want, mustWrite(t, g)); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

type wrappedCounter struct {
	*prometheus.Counter
}

func TestWriteUnknownMetricType(t *testing.T) {
	c, err := prometheus.NewCounter(prometheus.SingleThreaded{}, prometheus.CounterOpts{Name: "c"})
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []prometheus.Metric{nil, wrappedCounter{c}} {
		if _, err := NewWriter(m).Write(); !errors.Is(err, ErrUnknownMetricType) {
			t.Errorf("%T: got %v, want ErrUnknownMetricType", m, err)
		}
	}
}

func TestWriteTo(t *testing.T) {
	reg := newRegistry()
	g := reg.MustNewGauge(prometheus.GaugeOpts{Name: "g"})

	var buf bytes.Buffer
	n, err := NewWriter(g).WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := "# TYPE g gauge\n# HELP g \ng 0"
	if buf.String() != want || n != int64(len(want)) {
		t.Errorf("got %q (%d bytes), want %q", buf.String(), n, want)
	}
}

func TestMarshal(t *testing.T) {
	reg := newRegistry()
	reg.MustNewGauge(prometheus.GaugeOpts{Name: "a", Help: "A."})
	c := reg.MustNewCounter(prometheus.CounterOpts{Name: "b_total", Help: "B."})
	if err := c.Increment(nil, 2, nil); err != nil {
		t.Fatal(err)
	}

	got, err := Marshal(reg)
	if err != nil {
		t.Fatal(err)
	}
	want := "# TYPE a gauge\n# HELP a A.\na 0\n" +
		"# TYPE b counter\n# HELP b B.\nb 2\nb_created 1700000000.5\nb_total 2\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}

	empty, err := Marshal(newRegistry())
	if err != nil || empty != "" {
		t.Errorf("got %q, %v for an empty registry", empty, err)
	}
}

func TestContentTypes(t *testing.T) {
	if ContentType != "text/plain; version=0.0.1" {
		t.Errorf("unexpected ContentType %q", ContentType)
	}
	if OpenMetricsContentType != "application/openmetrics-text; version=1.0.0; charset=utf-8" {
		t.Errorf("unexpected OpenMetricsContentType %q", OpenMetricsContentType)
	}
}
