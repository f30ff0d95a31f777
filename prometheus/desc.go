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

	"github.com/prometheus/common/model"
)

// ErrInvalidMetricName is returned for metric names that are not valid
// OpenMetrics identifiers.
var ErrInvalidMetricName = errors.New("invalid metric name")

// Desc is the immutable metadata of a metric: its name, docstring, unit, kind,
// the label names every observation must carry, and the preset labels merged
// into every call site's labels.
type Desc struct {
	name         string
	help         string
	unit         string
	typ          MetricType
	labelNames   []string
	presetLabels LabelSet
}

// Opts bundles the options shared by all metric kinds. It is mandatory to set
// Name to a non-empty string. All other fields are optional, although it is
// strongly encouraged to set a Help string.
type Opts struct {
	// Name is the metric name. For counters, a trailing "_total" is
	// dropped on exposition.
	Name string

	// Help provides information about this metric.
	Help string

	// Unit is exposed in a UNIT line. It is omitted if empty.
	Unit string

	// LabelNames are the names of the labels every observation carries,
	// preset labels included.
	LabelNames []string

	// PresetLabels are label values fixed for the lifetime of the metric.
	// Their names must be part of LabelNames.
	PresetLabels LabelSet

	// StoreSettings are handed to the DataStore creating the metric's
	// store.
	StoreSettings StoreSettings
}

func newDesc(typ MetricType, opts Opts, reserved ...string) (*Desc, error) {
	if !model.IsValidMetricName(model.LabelValue(opts.Name)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMetricName, opts.Name)
	}

	seen := make(map[string]struct{}, len(opts.LabelNames))
	for _, name := range opts.LabelNames {
		if err := validateLabelName(name); err != nil {
			return nil, fmt.Errorf("metric %q: %w", opts.Name, err)
		}
		for _, r := range reserved {
			if name == r {
				return nil, fmt.Errorf("%w: %q is not allowed as label name in a %s", ErrReservedLabel, name, typ)
			}
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate label name %q in metric %q", ErrInvalidLabelSet, name, opts.Name)
		}
		seen[name] = struct{}{}
	}

	for _, lp := range opts.PresetLabels {
		if _, ok := seen[lp.Name]; !ok {
			return nil, fmt.Errorf("%w: preset label %q of metric %q is not one of its labels %v", ErrInvalidLabelSet, lp.Name, opts.Name, opts.LabelNames)
		}
	}
	if err := validateLabelValues(opts.PresetLabels); err != nil {
		return nil, fmt.Errorf("metric %q: %w", opts.Name, err)
	}

	return &Desc{
		name:         opts.Name,
		help:         opts.Help,
		unit:         opts.Unit,
		typ:          typ,
		labelNames:   append([]string(nil), opts.LabelNames...),
		presetLabels: append(LabelSet(nil), opts.PresetLabels...),
	}, nil
}

// Name returns the metric name as declared.
func (d *Desc) Name() string { return d.name }

// Help returns the docstring.
func (d *Desc) Help() string { return d.help }

// Unit returns the unit, "" if none was declared.
func (d *Desc) Unit() string { return d.unit }

// Type returns the metric kind.
func (d *Desc) Type() MetricType { return d.typ }

// LabelNames returns a copy of the declared label names.
func (d *Desc) LabelNames() []string { return append([]string(nil), d.labelNames...) }

// PresetLabels returns a copy of the preset labels.
func (d *Desc) PresetLabels() LabelSet { return append(LabelSet(nil), d.presetLabels...) }

// LabelSetFor merges the preset labels with labels and checks that the result
// carries exactly the declared label names with valid values.
func (d *Desc) LabelSetFor(labels LabelSet) (LabelSet, error) {
	ls := d.presetLabels.Merge(labels)
	if len(ls) != len(d.labelNames) {
		return nil, d.labelSetError(ls)
	}
	for _, name := range d.labelNames {
		if !ls.Has(name) {
			return nil, d.labelSetError(ls)
		}
	}
	if err := validateLabelValues(ls); err != nil {
		return nil, err
	}
	return ls, nil
}

func (d *Desc) labelSetError(ls LabelSet) error {
	return fmt.Errorf("%w: metric %q expects labels [%s], got %s", ErrInvalidLabelSet, d.name, strings.Join(d.labelNames, ", "), ls)
}

func (d *Desc) String() string {
	return fmt.Sprintf("Desc{name: %q, help: %q, unit: %q, type: %s, labels: %v, preset: %s}",
		d.name, d.help, d.unit, d.typ, d.labelNames, d.presetLabels)
}
