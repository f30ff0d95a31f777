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

import "time"

// quantileLabel is the label a Summary uses internally to keep its count and
// sum apart in the store. It is never exposed.
const quantileLabel = "quantile"

const (
	summaryCount = "count"
	summarySum   = "sum"
)

// SummaryOpts bundles the options for creating a Summary.
type SummaryOpts Opts

// A Summary tracks the count and the sum of observations per label
// permutation. It does not estimate quantiles.
type Summary struct {
	metricBase
}

// NewSummary creates a Summary backed by a store from ds.
func NewSummary(ds DataStore, opts SummaryOpts) (*Summary, error) {
	base, err := newMetricBase(ds, SummaryType, Opts(opts), quantileLabel)
	if err != nil {
		return nil, err
	}
	s := &Summary{metricBase: base}
	if err := s.initIfUnlabeled(s.InitLabelSet); err != nil {
		return nil, err
	}
	return s, nil
}

// Observe records v for the permutation identified by labels. The count and
// the sum are updated atomically. If e is not nil, it is recorded with both.
//
// The recorded value is usually positive or zero. A negative value is accepted
// but prevents Prometheus from detecting counter resets in the sum.
func (s *Summary) Observe(labels LabelSet, v float64, e *Exemplar) error {
	ls, err := s.desc.LabelSetFor(labels)
	if err != nil {
		return err
	}
	s.store.Synchronize(func(tx MetricStore) {
		tx.Increment(ls.With(quantileLabel, summaryCount), 1, e)
		tx.Increment(ls.With(quantileLabel, summarySum), v, e)
	})
	return nil
}

// SummaryValue is the state of one label permutation of a Summary.
type SummaryValue struct {
	Labels  LabelSet
	Count   float64
	Sum     float64
	Created time.Time
}

// Get returns the count and the sum of the permutation identified by labels,
// keyed "count" and "sum".
func (s *Summary) Get(labels LabelSet) (map[string]float64, error) {
	ls, err := s.desc.LabelSetFor(labels)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, 2)
	s.store.Synchronize(func(tx MetricStore) {
		out[summaryCount] = tx.Get(ls.With(quantileLabel, summaryCount))
		out[summarySum] = tx.Get(ls.With(quantileLabel, summarySum))
	})
	return out, nil
}

// Values returns the state of all permutations in the order they were first
// touched.
func (s *Summary) Values() []SummaryValue {
	var out []SummaryValue
	groups := map[uint64][]int{}

	for _, lv := range s.store.AllValuesWithExemplars() {
		q, _ := lv.Labels.Get(quantileLabel)
		base := lv.Labels.Without(quantileLabel)
		sig := base.Signature()

		idx := -1
		for _, i := range groups[sig] {
			if out[i].Labels.Equal(base) {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = len(out)
			groups[sig] = append(groups[sig], idx)
			out = append(out, SummaryValue{Labels: base, Created: lv.Value.Created()})
		}

		switch q {
		case summaryCount:
			out[idx].Count = lv.Value.Value()
		case summarySum:
			out[idx].Sum = lv.Value.Value()
		}
		if lv.Value.Created().Before(out[idx].Created) {
			out[idx].Created = lv.Value.Created()
		}
	}
	return out
}

// InitLabelSet makes sure the count and the sum of the permutation identified
// by labels exist, starting at zero.
func (s *Summary) InitLabelSet(labels LabelSet) error {
	ls, err := s.desc.LabelSetFor(labels)
	if err != nil {
		return err
	}
	s.store.Synchronize(func(tx MetricStore) {
		tx.Ensure(ls.With(quantileLabel, summaryCount))
		tx.Ensure(ls.With(quantileLabel, summarySum))
	})
	return nil
}
