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
	"strings"
	"unicode/utf8"

	"github.com/prometheus/common/model"
)

var (
	// ErrInvalidLabelSet is returned when the label names supplied at a call
	// site do not match the label names the metric was declared with.
	ErrInvalidLabelSet = errors.New("invalid label set")
	// ErrInvalidLabel is returned for label names that are not valid
	// identifiers and for label values that are not valid UTF-8.
	ErrInvalidLabel = errors.New("invalid label")
	// ErrReservedLabel is returned when a metric declares or is given a label
	// that the metric kind uses internally (le, quantile) or that starts with
	// the reserved "__" prefix.
	ErrReservedLabel = errors.New("reserved label")
)

// reservedLabelPrefix is a prefix which is not legal in user-supplied
// label names.
const reservedLabelPrefix = "__"

// LabelPair is one name/value pair of a LabelSet.
type LabelPair struct {
	Name  string
	Value string
}

// LabelSet is an ordered collection of label pairs. The order is the order in
// which the pairs were supplied and is kept for exposition, but two label sets
// are equal whenever they hold the same pairs, regardless of order.
//
// A LabelSet must not be modified once it has been handed to a MetricStore.
// All methods returning a LabelSet return a fresh copy.
type LabelSet []LabelPair

// Labels builds a LabelSet from alternating name/value arguments. It panics on
// an odd number of arguments.
//
//	prometheus.Labels("code", "200", "method", "GET")
func Labels(nameValues ...string) LabelSet {
	if len(nameValues)%2 != 0 {
		panic(fmt.Errorf("prometheus.Labels: odd number of arguments %q", nameValues))
	}
	ls := make(LabelSet, 0, len(nameValues)/2)
	for i := 0; i < len(nameValues); i += 2 {
		ls = ls.With(nameValues[i], nameValues[i+1])
	}
	return ls
}

// Get returns the value of the named label.
func (ls LabelSet) Get(name string) (string, bool) {
	for _, lp := range ls {
		if lp.Name == name {
			return lp.Value, true
		}
	}
	return "", false
}

// Has reports whether the named label is present.
func (ls LabelSet) Has(name string) bool {
	_, ok := ls.Get(name)
	return ok
}

// With returns a copy of ls with the given label set. An existing label of
// the same name keeps its position and gets the new value, a new one is
// appended.
func (ls LabelSet) With(name, value string) LabelSet {
	out := make(LabelSet, len(ls), len(ls)+1)
	copy(out, ls)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, LabelPair{Name: name, Value: value})
}

// Merge returns a copy of ls with all pairs of other applied on top, in the
// order of other.
func (ls LabelSet) Merge(other LabelSet) LabelSet {
	out := make(LabelSet, len(ls), len(ls)+len(other))
	copy(out, ls)
	for _, lp := range other {
		out = out.With(lp.Name, lp.Value)
	}
	return out
}

// Without returns a copy of ls with the named labels removed.
func (ls LabelSet) Without(names ...string) LabelSet {
	out := make(LabelSet, 0, len(ls))
outer:
	for _, lp := range ls {
		for _, n := range names {
			if lp.Name == n {
				continue outer
			}
		}
		out = append(out, lp)
	}
	return out
}

// Equal reports whether both label sets contain the same pairs.
func (ls LabelSet) Equal(other LabelSet) bool {
	if len(ls) != len(other) {
		return false
	}
	for _, lp := range ls {
		v, ok := other.Get(lp.Name)
		if !ok || v != lp.Value {
			return false
		}
	}
	return true
}

// Names returns the label names in order.
func (ls LabelSet) Names() []string {
	names := make([]string, 0, len(ls))
	for _, lp := range ls {
		names = append(names, lp.Name)
	}
	return names
}

// Map returns the label set as a map, losing the order.
func (ls LabelSet) Map() map[string]string {
	m := make(map[string]string, len(ls))
	for _, lp := range ls {
		m[lp.Name] = lp.Value
	}
	return m
}

func (ls LabelSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, lp := range ls {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%q", lp.Name, lp.Value)
	}
	b.WriteByte('}')
	return b.String()
}

func validateLabelName(name string) error {
	if !model.LabelName(name).IsValid() {
		return fmt.Errorf("%w: label name %q is not a valid identifier", ErrInvalidLabel, name)
	}
	if strings.HasPrefix(name, reservedLabelPrefix) {
		return fmt.Errorf("%w: label name %q starts with %q", ErrReservedLabel, name, reservedLabelPrefix)
	}
	return nil
}

func validateLabelValues(ls LabelSet) error {
	for _, lp := range ls {
		if !utf8.ValidString(lp.Value) {
			return fmt.Errorf("%w: label %s: %#v is not valid utf8", ErrInvalidLabel, lp.Name, lp.Value)
		}
	}
	return nil
}
