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
	"iter"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ValueWithExemplars is the value of one label permutation of a metric along
// with the exemplars recorded for it and the time the permutation was first
// touched.
//
// A MetricStore exclusively owns the ValueWithExemplars it creates. Values
// returned by a store are snapshots and never alias the live entry.
type ValueWithExemplars struct {
	value     float64
	created   time.Time
	exemplars *ExemplarCollection
}

// NewValueWithExemplars returns a zero value created now.
func NewValueWithExemplars() *ValueWithExemplars {
	return newValueWithExemplars(time.Now())
}

func newValueWithExemplars(created time.Time) *ValueWithExemplars {
	return &ValueWithExemplars{
		created:   created,
		exemplars: NewExemplarCollection(),
	}
}

// Value returns the current value.
func (v *ValueWithExemplars) Value() float64 {
	return v.value
}

// Created returns the time the label permutation was first touched. It is
// never updated afterwards, not even if the value goes back to zero.
func (v *ValueWithExemplars) Created() time.Time {
	return v.created
}

// Set overwrites the value with val and returns it. If e is not nil, a copy of
// it carrying the new value is added to the exemplars.
func (v *ValueWithExemplars) Set(val float64, e *Exemplar) float64 {
	v.value = val
	v.record(e)
	return v.value
}

// Increment adds by to the value and returns the result. Negative values are
// accepted. If e is not nil, a copy of it carrying the new value is added to
// the exemplars.
func (v *ValueWithExemplars) Increment(by float64, e *Exemplar) float64 {
	v.value += by
	v.record(e)
	return v.value
}

func (v *ValueWithExemplars) record(e *Exemplar) {
	if e == nil {
		return
	}
	v.exemplars.Add(e.WithValue(v.value))
}

// MostRecentExemplar returns the most recent exemplar, if any.
func (v *ValueWithExemplars) MostRecentExemplar() (Exemplar, bool) {
	return v.exemplars.MostRecent()
}

// Exemplars yields all exemplars, oldest first.
func (v *ValueWithExemplars) Exemplars() iter.Seq[Exemplar] {
	return v.exemplars.All()
}

// Snapshot returns a deep copy of v.
func (v *ValueWithExemplars) Snapshot() *ValueWithExemplars {
	return &ValueWithExemplars{
		value:     v.value,
		created:   v.created,
		exemplars: v.exemplars.Clone(),
	}
}

type exemplarJSON struct {
	Labels    map[string]string `json:"labels"`
	Value     float64           `json:"value"`
	Timestamp int64             `json:"timestamp"`
}

type valueJSON struct {
	Value     float64        `json:"value"`
	Created   float64        `json:"created"`
	Exemplars []exemplarJSON `json:"exemplars"`
}

// MarshalJSON implements json.Marshaler.
func (v *ValueWithExemplars) MarshalJSON() ([]byte, error) {
	out := valueJSON{
		Value:     v.value,
		Created:   unixSeconds(v.created),
		Exemplars: make([]exemplarJSON, 0, v.exemplars.Len()),
	}
	for e := range v.exemplars.All() {
		out.Exemplars = append(out.Exemplars, exemplarJSON{
			Labels:    e.Labels.Map(),
			Value:     e.Value(),
			Timestamp: e.Timestamp,
		})
	}
	return json.Marshal(out)
}

// unixSeconds returns t as fractional seconds since the epoch.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
