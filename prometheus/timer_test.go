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

package prometheus

import (
	"errors"
	"testing"
	"time"
)

func TestTimerObserve(t *testing.T) {
	ds := Synchronized{}
	his, err := NewHistogram(ds, HistogramOpts{Opts: Opts{Name: "test_histogram"}})
	if err != nil {
		t.Fatal(err)
	}
	sum, err := NewSummary(ds, SummaryOpts{Name: "test_summary", LabelNames: []string{"op"}})
	if err != nil {
		t.Fatal(err)
	}
	gauge, err := NewGauge(ds, GaugeOpts{Name: "test_gauge"})
	if err != nil {
		t.Fatal(err)
	}

	func() {
		hisTimer := NewTimer(his.With(nil))
		sumTimer := NewTimer(sum.With(Labels("op", "read")))
		gaugeTimer := NewTimer(ObserverFunc(func(v float64) error { return gauge.Set(nil, v, nil) }))
		for _, timer := range []*Timer{hisTimer, sumTimer, gaugeTimer} {
			timer.now = func() time.Time { return timer.begin.Add(1500 * time.Millisecond) }
		}
		defer hisTimer.ObserveDuration()
		defer sumTimer.ObserveDuration()
		defer gaugeTimer.ObserveDuration()
	}()

	if buckets, _ := his.Get(nil); buckets[InfBucket] != 1 || buckets["1"] != 0 || buckets["2.5"] != 1 {
		t.Errorf("unexpected histogram %v", buckets)
	}
	if got, _ := sum.Get(Labels("op", "read")); got["count"] != 1 || got["sum"] != 1.5 {
		t.Errorf("unexpected summary %v", got)
	}
	if got, _ := gauge.Get(nil); got != 1.5 {
		t.Errorf("want 1.5 for gauge, got %f", got)
	}
}

func TestTimerEmpty(t *testing.T) {
	emptyTimer := NewTimer(nil)
	if d, err := emptyTimer.ObserveDuration(); d < 0 || err != nil {
		t.Errorf("got %v, %v", d, err)
	}
}

func TestTimerReportsObserverErrors(t *testing.T) {
	his, err := NewHistogram(SingleThreaded{}, HistogramOpts{Opts: Opts{Name: "h", LabelNames: []string{"a"}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTimer(his.With(nil)).ObserveDuration(); !errors.Is(err, ErrInvalidLabelSet) {
		t.Errorf("got %v, want ErrInvalidLabelSet", err)
	}
}
