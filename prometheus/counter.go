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
)

// ErrNegativeIncrement is returned when a counter is asked to go down.
var ErrNegativeIncrement = errors.New("counter cannot decrease in value")

// CounterOpts bundles the options for creating a Counter.
type CounterOpts Opts

// Counter is a Metric that represents a single numerical value that only ever
// goes up, per label permutation. Counters are exposed with a _created line per
// permutation and an aggregate _total line.
type Counter struct {
	metricBase
}

// NewCounter creates a Counter backed by a store from ds.
func NewCounter(ds DataStore, opts CounterOpts) (*Counter, error) {
	base, err := newMetricBase(ds, CounterType, Opts(opts))
	if err != nil {
		return nil, err
	}
	c := &Counter{metricBase: base}
	if err := c.initIfUnlabeled(c.InitLabelSet); err != nil {
		return nil, err
	}
	return c, nil
}

// Increment adds by, which must not be negative, to the permutation
// identified by labels. If e is not nil, it is recorded as an exemplar of this
// observation.
func (c *Counter) Increment(labels LabelSet, by float64, e *Exemplar) error {
	if by < 0 {
		return fmt.Errorf("%w: increment of %s by %v", ErrNegativeIncrement, c.desc.name, by)
	}
	ls, err := c.desc.LabelSetFor(labels)
	if err != nil {
		return err
	}
	c.store.Increment(ls, by, e)
	return nil
}

// Inc increments the permutation identified by labels by 1.
func (c *Counter) Inc(labels LabelSet) error {
	return c.Increment(labels, 1, nil)
}

// Get returns the current value of the permutation identified by labels.
func (c *Counter) Get(labels LabelSet) (float64, error) {
	ls, err := c.desc.LabelSetFor(labels)
	if err != nil {
		return 0, err
	}
	return c.store.Get(ls), nil
}

// Values returns snapshots of all permutations in the order they were first
// touched.
func (c *Counter) Values() []LabeledValueWithExemplars {
	return c.store.AllValuesWithExemplars()
}

// InitLabelSet makes sure the permutation identified by labels exists,
// without changing its value.
func (c *Counter) InitLabelSet(labels LabelSet) error {
	ls, err := c.desc.LabelSetFor(labels)
	if err != nil {
		return err
	}
	c.store.Ensure(ls)
	return nil
}
