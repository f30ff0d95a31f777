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

// Observer records a value for one fixed label permutation of a metric.
type Observer interface {
	Observe(float64) error
}

// The ObserverFunc type is an adapter to allow the use of ordinary
// functions as Observers. If f is a function with the appropriate
// signature, ObserverFunc(f) is an Observer that calls f.
//
// This adapter is usually used in connection with the Timer type, e.g. to
// set a Gauge to the duration of the last run:
//
//	timer := NewTimer(ObserverFunc(func(v float64) error {
//		return lastRun.Set(nil, v, nil)
//	}))
type ObserverFunc func(float64) error

// Observe calls f(value). It implements Observer.
func (f ObserverFunc) Observe(value float64) error {
	return f(value)
}

// With returns an Observer recording into the permutation identified by
// labels. The labels are validated on every observation.
func (h *Histogram) With(labels LabelSet) Observer {
	return ObserverFunc(func(v float64) error {
		return h.Observe(labels, v)
	})
}

// With returns an Observer recording into the permutation identified by
// labels, without exemplars.
func (s *Summary) With(labels LabelSet) Observer {
	return ObserverFunc(func(v float64) error {
		return s.Observe(labels, v, nil)
	})
}
