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
	"fmt"
	"sync"
	"time"
)

// Synchronized is a DataStore whose stores guard all access with one mutex per
// metric. Different metrics never share a lock.
type Synchronized struct {
	// Now is used to timestamp new label permutations. Defaults to time.Now.
	Now func() time.Time
}

// ForMetric implements DataStore.
func (s Synchronized) ForMetric(name string, _ MetricType, settings StoreSettings) (MetricStore, error) {
	if len(settings) > 0 {
		return nil, fmt.Errorf("%w: Synchronized doesn't allow any metric settings, got %v for %q", ErrInvalidStoreSettings, settings, name)
	}
	return &synchronizedStore{m: newValueMap(s.Now)}, nil
}

type synchronizedStore struct {
	mtx sync.Mutex
	m   *valueMap
}

func (s *synchronizedStore) Synchronize(fn func(MetricStore)) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	fn(s.m)
}

func (s *synchronizedStore) Set(labels LabelSet, val float64, e *Exemplar) float64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.m.Set(labels, val, e)
}

func (s *synchronizedStore) Increment(labels LabelSet, by float64, e *Exemplar) float64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.m.Increment(labels, by, e)
}

func (s *synchronizedStore) Get(labels LabelSet) float64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.m.Get(labels)
}

func (s *synchronizedStore) GetWithExemplars(labels LabelSet) *ValueWithExemplars {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.m.GetWithExemplars(labels)
}

func (s *synchronizedStore) Ensure(labels LabelSet) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.m.Ensure(labels)
}

func (s *synchronizedStore) Lookup(labels LabelSet) (*ValueWithExemplars, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.m.Lookup(labels)
}

func (s *synchronizedStore) AllValues() []LabeledValue {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.m.AllValues()
}

func (s *synchronizedStore) AllValuesWithExemplars() []LabeledValueWithExemplars {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.m.AllValuesWithExemplars()
}
