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
	"time"
)

// ErrInvalidStoreSettings is returned by DataStore.ForMetric when the store
// does not support the given settings.
var ErrInvalidStoreSettings = errors.New("invalid store settings")

// StoreSettings are per-metric options handed to a DataStore. Neither of the
// backends in this package accepts any.
type StoreSettings map[string]any

// DataStore creates the MetricStore backing a metric.
type DataStore interface {
	// ForMetric returns a new MetricStore for the named metric. Unsupported
	// settings are reported here, never on first use of the store.
	ForMetric(name string, typ MetricType, settings StoreSettings) (MetricStore, error)
}

// LabeledValue is the plain value of one label permutation.
type LabeledValue struct {
	Labels LabelSet
	Value  float64
}

// LabeledValueWithExemplars is a snapshot of one label permutation.
type LabeledValueWithExemplars struct {
	Labels LabelSet
	Value  *ValueWithExemplars
}

// MetricStore maps the label sets of one metric to their values. Label sets
// are compared by content. Get, Set, Increment and Ensure create a zero entry
// for a label set seen for the first time; Lookup never does. Entries are
// iterated in the order they were created.
type MetricStore interface {
	// Set overwrites the value for labels, records a copy of e (if not nil)
	// stamped with the new value, and returns the new value.
	Set(labels LabelSet, val float64, e *Exemplar) float64
	// Increment adds by to the value for labels and otherwise behaves like
	// Set.
	Increment(labels LabelSet, by float64, e *Exemplar) float64
	// Get returns the value for labels.
	Get(labels LabelSet) float64
	// GetWithExemplars returns a snapshot of the entry for labels.
	GetWithExemplars(labels LabelSet) *ValueWithExemplars
	// Ensure creates a zero entry for labels unless one exists. It reports
	// whether an entry was created.
	Ensure(labels LabelSet) bool
	// Lookup returns a snapshot of the entry for labels without creating it.
	Lookup(labels LabelSet) (*ValueWithExemplars, bool)
	// AllValues returns the values of all entries.
	AllValues() []LabeledValue
	// AllValuesWithExemplars returns snapshots of all entries, taken at a
	// single instant.
	AllValuesWithExemplars() []LabeledValueWithExemplars
	// Synchronize runs fn as one atomic unit with respect to all other
	// operations on the store. fn must only use the MetricStore passed to
	// it, not the receiver.
	Synchronize(fn func(MetricStore))
}

type valueEntry struct {
	labels LabelSet
	value  *ValueWithExemplars
}

// valueMap is the unsynchronized core shared by both backends. Entries are
// indexed by label set signature; colliding label sets share a slot.
type valueMap struct {
	entries map[uint64][]*valueEntry
	order   []*valueEntry
	now     func() time.Time
}

func newValueMap(now func() time.Time) *valueMap {
	if now == nil {
		now = time.Now
	}
	return &valueMap{
		entries: map[uint64][]*valueEntry{},
		now:     now,
	}
}

func (m *valueMap) find(h uint64, labels LabelSet) *valueEntry {
	for _, e := range m.entries[h] {
		if e.labels.Equal(labels) {
			return e
		}
	}
	return nil
}

func (m *valueMap) ensure(labels LabelSet) (*valueEntry, bool) {
	h := labels.Signature()
	if e := m.find(h, labels); e != nil {
		return e, false
	}
	e := &valueEntry{
		labels: append(make(LabelSet, 0, len(labels)), labels...),
		value:  newValueWithExemplars(m.now()),
	}
	m.entries[h] = append(m.entries[h], e)
	m.order = append(m.order, e)
	return e, true
}

func (m *valueMap) Set(labels LabelSet, val float64, e *Exemplar) float64 {
	entry, _ := m.ensure(labels)
	return entry.value.Set(val, e)
}

func (m *valueMap) Increment(labels LabelSet, by float64, e *Exemplar) float64 {
	entry, _ := m.ensure(labels)
	return entry.value.Increment(by, e)
}

func (m *valueMap) Get(labels LabelSet) float64 {
	entry, _ := m.ensure(labels)
	return entry.value.Value()
}

func (m *valueMap) GetWithExemplars(labels LabelSet) *ValueWithExemplars {
	entry, _ := m.ensure(labels)
	return entry.value.Snapshot()
}

func (m *valueMap) Ensure(labels LabelSet) bool {
	_, created := m.ensure(labels)
	return created
}

func (m *valueMap) Lookup(labels LabelSet) (*ValueWithExemplars, bool) {
	entry := m.find(labels.Signature(), labels)
	if entry == nil {
		return nil, false
	}
	return entry.value.Snapshot(), true
}

func (m *valueMap) AllValues() []LabeledValue {
	out := make([]LabeledValue, 0, len(m.order))
	for _, e := range m.order {
		out = append(out, LabeledValue{
			Labels: append(LabelSet(nil), e.labels...),
			Value:  e.value.Value(),
		})
	}
	return out
}

func (m *valueMap) AllValuesWithExemplars() []LabeledValueWithExemplars {
	out := make([]LabeledValueWithExemplars, 0, len(m.order))
	for _, e := range m.order {
		out = append(out, LabeledValueWithExemplars{
			Labels: append(LabelSet(nil), e.labels...),
			Value:  e.value.Snapshot(),
		})
	}
	return out
}

func (m *valueMap) Synchronize(fn func(MetricStore)) {
	fn(m)
}
