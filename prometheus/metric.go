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

// Metric is one of *Counter, *Gauge, *Histogram or *Summary. The set of
// implementations is closed so that exposition code can switch over it
// exhaustively.
type Metric interface {
	// Desc returns the metadata of the metric.
	Desc() *Desc

	// storedValues returns snapshots of all entries of the underlying
	// store, internal pseudo-labels included.
	storedValues() []LabeledValueWithExemplars
	sealed()
}

// metricBase is embedded by every metric kind.
type metricBase struct {
	desc  *Desc
	store MetricStore
}

func newMetricBase(ds DataStore, typ MetricType, opts Opts, reserved ...string) (metricBase, error) {
	desc, err := newDesc(typ, opts, reserved...)
	if err != nil {
		return metricBase{}, err
	}
	store, err := ds.ForMetric(desc.name, typ, opts.StoreSettings)
	if err != nil {
		return metricBase{}, err
	}
	return metricBase{desc: desc, store: store}, nil
}

func (m *metricBase) Desc() *Desc { return m.desc }

func (m *metricBase) storedValues() []LabeledValueWithExemplars {
	return m.store.AllValuesWithExemplars()
}

func (*metricBase) sealed() {}

// initIfUnlabeled creates the single label permutation of a metric without
// labels, so that it is exposed before its first observation.
func (m *metricBase) initIfUnlabeled(init func(LabelSet) error) error {
	if len(m.desc.labelNames) > 0 {
		return nil
	}
	return init(nil)
}
