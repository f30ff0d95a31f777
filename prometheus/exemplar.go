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

// Exemplar is a snapshot of one observation together with an extra set of
// labels, usually a trace ID, taken at a specific point in time.
//
// The value of an Exemplar is not chosen by the caller. A MetricStore stamps
// its own copy with the value the observation produced right before keeping
// it, which is why NewExemplar returns an empty Exemplar.
type Exemplar struct {
	// Labels identify the exemplar, e.g. {trace_id="..."}.
	Labels LabelSet
	// Timestamp is the time of recording in seconds since the epoch.
	Timestamp int64

	value    float64
	hasValue bool
}

// NewExemplar returns an empty Exemplar with the given labels, timestamped now.
func NewExemplar(labels LabelSet) Exemplar {
	return NewExemplarAt(labels, time.Now().Unix())
}

// NewExemplarAt returns an empty Exemplar with the given labels and timestamp
// in seconds since the epoch.
func NewExemplarAt(labels LabelSet, timestamp int64) Exemplar {
	if labels == nil {
		labels = LabelSet{}
	}
	return Exemplar{Labels: labels, Timestamp: timestamp}
}

// Value returns the value stamped onto the exemplar, 0 if it is empty.
func (e Exemplar) Value() float64 {
	return e.value
}

// Empty reports whether no value has been assigned yet.
func (e Exemplar) Empty() bool {
	return !e.hasValue
}

// WithValue returns a copy of e carrying v.
func (e Exemplar) WithValue(v float64) Exemplar {
	e.value = v
	e.hasValue = true
	return e
}
