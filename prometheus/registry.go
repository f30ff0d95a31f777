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
	"fmt"
	"sync"
)

// ErrAlreadyRegistered is wrapped by AlreadyRegisteredError.
var ErrAlreadyRegistered = errors.New("duplicate metrics collector registration attempted")

// AlreadyRegisteredError is returned by the Register method if the Metric to
// be registered has the same name as a Metric already registered. The
// previously registered Metric is contained in Existing, so the caller can
// use it instead:
//
//	c, err := prometheus.NewCounter(ds, opts)
//	...
//	if err := reg.Register(c); err != nil {
//		var are prometheus.AlreadyRegisteredError
//		if errors.As(err, &are) {
//			// A counter for that metric has been registered before.
//			// Use the old counter from now on.
//			c = are.Existing.(*prometheus.Counter)
//		} else {
//			// Something else went wrong!
//			panic(err)
//		}
//	}
type AlreadyRegisteredError struct {
	Existing, New Metric
}

func (err AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("%v: %q", ErrAlreadyRegistered, err.New.Desc().Name())
}

func (err AlreadyRegisteredError) Unwrap() error { return ErrAlreadyRegistered }

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDataStore sets the DataStore that the metric constructors of the
// Registry create their stores with. The default is Synchronized{}.
func WithDataStore(ds DataStore) RegistryOption {
	return func(r *Registry) {
		r.ds = ds
	}
}

// Registry keeps track of the metrics that are exposed together. Metrics are
// reported in the order they were registered.
//
// Registry is safe for concurrent use. Its lock only guards registration; the
// values of the registered metrics are guarded by their own stores.
type Registry struct {
	mtx     sync.RWMutex
	ds      DataStore
	byName  map[string]Metric
	ordered []Metric
}

// NewRegistry creates a new, empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		ds:     Synchronized{},
		byName: map[string]Metric{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// DataStore returns the DataStore the Registry creates metric stores with.
func (r *Registry) DataStore() DataStore {
	return r.ds
}

// Register adds m to the Registry. Registering a second metric with the same
// name fails with an AlreadyRegisteredError.
func (r *Registry) Register(m Metric) error {
	if m == nil || m.Desc() == nil {
		return errors.New("cannot register a nil metric")
	}
	name := m.Desc().Name()

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if existing, ok := r.byName[name]; ok {
		return AlreadyRegisteredError{Existing: existing, New: m}
	}
	r.byName[name] = m
	r.ordered = append(r.ordered, m)
	return nil
}

// MustRegister registers the provided metrics and panics on the first error.
func (r *Registry) MustRegister(ms ...Metric) {
	for _, m := range ms {
		if err := r.Register(m); err != nil {
			panic(err)
		}
	}
}

// Unregister removes the metric with the given name, together with all of its
// values. It returns whether a metric was removed.
func (r *Registry) Unregister(name string) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	m, ok := r.byName[name]
	if !ok {
		return false
	}
	delete(r.byName, name)
	for i, o := range r.ordered {
		if o == m {
			r.ordered = append(r.ordered[:i:i], r.ordered[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the metric registered under name.
func (r *Registry) Get(name string) (Metric, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	m, ok := r.byName[name]
	return m, ok
}

// Metrics returns the registered metrics in registration order.
func (r *Registry) Metrics() []Metric {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return append([]Metric(nil), r.ordered...)
}

// NewCounter creates a Counter with the DataStore of the Registry and
// registers it.
func (r *Registry) NewCounter(opts CounterOpts) (*Counter, error) {
	c, err := NewCounter(r.ds, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// NewGauge creates a Gauge with the DataStore of the Registry and registers
// it.
func (r *Registry) NewGauge(opts GaugeOpts) (*Gauge, error) {
	g, err := NewGauge(r.ds, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Register(g); err != nil {
		return nil, err
	}
	return g, nil
}

// NewHistogram creates a Histogram with the DataStore of the Registry and
// registers it.
func (r *Registry) NewHistogram(opts HistogramOpts) (*Histogram, error) {
	h, err := NewHistogram(r.ds, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Register(h); err != nil {
		return nil, err
	}
	return h, nil
}

// NewSummary creates a Summary with the DataStore of the Registry and
// registers it.
func (r *Registry) NewSummary(opts SummaryOpts) (*Summary, error) {
	s, err := NewSummary(r.ds, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewCounter is like NewCounter but panics on error.
func (r *Registry) MustNewCounter(opts CounterOpts) *Counter {
	c, err := r.NewCounter(opts)
	if err != nil {
		panic(err)
	}
	return c
}

// MustNewGauge is like NewGauge but panics on error.
func (r *Registry) MustNewGauge(opts GaugeOpts) *Gauge {
	g, err := r.NewGauge(opts)
	if err != nil {
		panic(err)
	}
	return g
}

// MustNewHistogram is like NewHistogram but panics on error.
func (r *Registry) MustNewHistogram(opts HistogramOpts) *Histogram {
	h, err := r.NewHistogram(opts)
	if err != nil {
		panic(err)
	}
	return h
}

// MustNewSummary is like NewSummary but panics on error.
func (r *Registry) MustNewSummary(opts SummaryOpts) *Summary {
	s, err := r.NewSummary(opts)
	if err != nil {
		panic(err)
	}
	return s
}

type metricJSON struct {
	Name   string             `json:"name"`
	Help   string             `json:"help"`
	Unit   string             `json:"unit,omitempty"`
	Type   string             `json:"type"`
	Values []labeledValueJSON `json:"values"`
}

type labeledValueJSON struct {
	Labels map[string]string   `json:"labels"`
	Value  *ValueWithExemplars `json:"value"`
}

// MarshalJSON implements json.Marshaler. It dumps the raw store entries of all
// registered metrics, including the le and quantile entries of histograms and
// summaries, in registration order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	metrics := r.Metrics()
	out := make([]metricJSON, 0, len(metrics))
	for _, m := range metrics {
		d := m.Desc()
		mj := metricJSON{
			Name:   d.Name(),
			Help:   d.Help(),
			Unit:   d.Unit(),
			Type:   d.Type().String(),
			Values: []labeledValueJSON{},
		}
		for _, lv := range m.storedValues() {
			mj.Values = append(mj.Values, labeledValueJSON{Labels: lv.Labels.Map(), Value: lv.Value})
		}
		out = append(out, mj)
	}
	return json.Marshal(out)
}
