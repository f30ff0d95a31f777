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

// GaugeOpts bundles the options for creating a Gauge.
type GaugeOpts Opts

// A Gauge represents an instantaneous value per label permutation that can
// arbitrarily go up and down, e.g. a temperature or the number of in-flight
// requests.
type Gauge struct {
	metricBase
}

// NewGauge creates a Gauge backed by a store from ds.
func NewGauge(ds DataStore, opts GaugeOpts) (*Gauge, error) {
	base, err := newMetricBase(ds, GaugeType, Opts(opts))
	if err != nil {
		return nil, err
	}
	g := &Gauge{metricBase: base}
	if err := g.initIfUnlabeled(g.InitLabelSet); err != nil {
		return nil, err
	}
	return g, nil
}

// Set sets the permutation identified by labels to val. If e is not nil, it is
// recorded as an exemplar.
func (g *Gauge) Set(labels LabelSet, val float64, e *Exemplar) error {
	ls, err := g.desc.LabelSetFor(labels)
	if err != nil {
		return err
	}
	g.store.Set(ls, val, e)
	return nil
}

// Increment adds by to the permutation identified by labels.
func (g *Gauge) Increment(labels LabelSet, by float64, e *Exemplar) error {
	ls, err := g.desc.LabelSetFor(labels)
	if err != nil {
		return err
	}
	g.store.Increment(ls, by, e)
	return nil
}

// Decrement subtracts by from the permutation identified by labels.
func (g *Gauge) Decrement(labels LabelSet, by float64, e *Exemplar) error {
	return g.Increment(labels, -by, e)
}

// Get returns the current value of the permutation identified by labels.
func (g *Gauge) Get(labels LabelSet) (float64, error) {
	ls, err := g.desc.LabelSetFor(labels)
	if err != nil {
		return 0, err
	}
	return g.store.Get(ls), nil
}

// Values returns snapshots of all permutations in the order they were first
// touched.
func (g *Gauge) Values() []LabeledValueWithExemplars {
	return g.store.AllValuesWithExemplars()
}

// InitLabelSet makes sure the permutation identified by labels exists.
func (g *Gauge) InitLabelSet(labels LabelSet) error {
	ls, err := g.desc.LabelSetFor(labels)
	if err != nil {
		return err
	}
	g.store.Ensure(ls)
	return nil
}
