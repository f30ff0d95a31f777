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
	"math"
	"strconv"
	"time"
)

// bucketLabel is used for the label that defines the upper bound of a
// bucket of a histogram ("le" -> "less or equal").
const bucketLabel = "le"

// Keys of HistogramValue.Buckets that are not finite upper bounds.
const (
	InfBucket = "+Inf"
	SumBucket = "sum"
)

// DefBuckets are the default Histogram buckets. The default buckets are
// tailored to broadly measure the response time (in seconds) of a network
// service. Most likely, however, you will be required to define buckets
// customized to your use case.
var DefBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ErrInvalidBuckets is returned for bucket lists that are not strictly
// increasing.
var ErrInvalidBuckets = errors.New("invalid histogram buckets")

// LinearBuckets creates 'count' buckets, each 'width' wide, where the lowest
// bucket has an upper bound of 'start'. The final +Inf bucket is not counted
// and not included in the returned slice. The returned slice is meant to be
// used for the Buckets field of HistogramOpts.
//
// The function panics if 'count' is zero or negative.
func LinearBuckets(start, width float64, count int) []float64 {
	if count < 1 {
		panic("LinearBuckets needs a positive count")
	}
	buckets := make([]float64, count)
	for i := range buckets {
		buckets[i] = start
		start += width
	}
	return buckets
}

// ExponentialBuckets creates 'count' buckets, where the lowest bucket has an
// upper bound of 'start' and each following bucket's upper bound is 'factor'
// times the previous bucket's upper bound. The final +Inf bucket is not counted
// and not included in the returned slice. The returned slice is meant to be
// used for the Buckets field of HistogramOpts.
//
// The function panics if 'count' is 0 or negative, if 'start' is 0 or negative,
// or if 'factor' is less than or equal 1.
func ExponentialBuckets(start, factor float64, count int) []float64 {
	if count < 1 {
		panic("ExponentialBuckets needs a positive count")
	}
	if start <= 0 {
		panic("ExponentialBuckets needs a positive start value")
	}
	if factor <= 1 {
		panic("ExponentialBuckets needs a factor greater than 1")
	}
	buckets := make([]float64, count)
	for i := range buckets {
		buckets[i] = start
		start *= factor
	}
	return buckets
}

// HistogramOpts bundles the options for creating a Histogram.
type HistogramOpts struct {
	Opts

	// Buckets defines the upper bounds of the buckets, in strictly
	// increasing order. A trailing +Inf bound is implicit and may be left
	// out. The default value is DefBuckets.
	Buckets []float64
}

// A Histogram counts observations in configurable buckets, per label
// permutation, along with their sum.
//
// Every observation is stored as an increment of its own (non-cumulative)
// bucket and of the sum. Values accumulates the buckets.
type Histogram struct {
	metricBase
	upperBounds []float64
	bucketKeys  []string // Formatted upperBounds followed by InfBucket.
}

// NewHistogram creates a Histogram backed by a store from ds.
func NewHistogram(ds DataStore, opts HistogramOpts) (*Histogram, error) {
	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = DefBuckets
	}
	if math.IsInf(buckets[len(buckets)-1], +1) {
		buckets = buckets[:len(buckets)-1]
	}
	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return nil, fmt.Errorf("%w: %v is not strictly increasing", ErrInvalidBuckets, opts.Buckets)
		}
	}

	base, err := newMetricBase(ds, HistogramType, opts.Opts, bucketLabel)
	if err != nil {
		return nil, err
	}
	h := &Histogram{
		metricBase:  base,
		upperBounds: append([]float64(nil), buckets...),
	}
	for _, b := range h.upperBounds {
		h.bucketKeys = append(h.bucketKeys, formatBucket(b))
	}
	h.bucketKeys = append(h.bucketKeys, InfBucket)

	if err := h.initIfUnlabeled(h.InitLabelSet); err != nil {
		return nil, err
	}
	return h, nil
}

func formatBucket(b float64) string {
	return strconv.FormatFloat(b, 'g', -1, 64)
}

// Buckets returns the finite upper bounds.
func (h *Histogram) Buckets() []float64 {
	return append([]float64(nil), h.upperBounds...)
}

// Observe records v for the permutation identified by labels.
func (h *Histogram) Observe(labels LabelSet, v float64) error {
	ls, err := h.desc.LabelSetFor(labels)
	if err != nil {
		return err
	}
	bucket := InfBucket
	for i, upper := range h.upperBounds {
		if v <= upper {
			bucket = h.bucketKeys[i]
			break
		}
	}
	h.store.Synchronize(func(tx MetricStore) {
		tx.Increment(ls.With(bucketLabel, bucket), 1, nil)
		tx.Increment(ls.With(bucketLabel, SumBucket), v, nil)
	})
	return nil
}

// HistogramValue is the state of one label permutation of a Histogram.
type HistogramValue struct {
	Labels LabelSet
	// Buckets maps each formatted upper bound, InfBucket included, to the
	// cumulative count of observations less than or equal to it. SumBucket
	// maps to the sum of all observations.
	Buckets map[string]float64
	Created time.Time
}

// Count returns the total number of observations.
func (v HistogramValue) Count() float64 { return v.Buckets[InfBucket] }

// Sum returns the sum of all observations.
func (v HistogramValue) Sum() float64 { return v.Buckets[SumBucket] }

// Get returns the cumulative buckets of the permutation identified by labels.
func (h *Histogram) Get(labels LabelSet) (map[string]float64, error) {
	ls, err := h.desc.LabelSetFor(labels)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(h.bucketKeys)+1)
	h.store.Synchronize(func(tx MetricStore) {
		for _, key := range h.bucketKeys {
			out[key] = tx.Get(ls.With(bucketLabel, key))
		}
		out[SumBucket] = tx.Get(ls.With(bucketLabel, SumBucket))
	})
	h.accumulate(out)
	return out, nil
}

// Values returns the state of all permutations in the order they were first
// touched.
func (h *Histogram) Values() []HistogramValue {
	var out []HistogramValue
	groups := map[uint64][]int{}

	for _, lv := range h.store.AllValuesWithExemplars() {
		key, _ := lv.Labels.Get(bucketLabel)
		base := lv.Labels.Without(bucketLabel)
		sig := base.Signature()

		idx := -1
		for _, i := range groups[sig] {
			if out[i].Labels.Equal(base) {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = len(out)
			groups[sig] = append(groups[sig], idx)
			buckets := make(map[string]float64, len(h.bucketKeys)+1)
			for _, k := range h.bucketKeys {
				buckets[k] = 0
			}
			buckets[SumBucket] = 0
			out = append(out, HistogramValue{Labels: base, Buckets: buckets, Created: lv.Value.Created()})
		}
		out[idx].Buckets[key] = lv.Value.Value()
		if lv.Value.Created().Before(out[idx].Created) {
			out[idx].Created = lv.Value.Created()
		}
	}

	for _, v := range out {
		h.accumulate(v.Buckets)
	}
	return out
}

// accumulate turns per-bucket counts into cumulative counts in place.
func (h *Histogram) accumulate(buckets map[string]float64) {
	var acc float64
	for _, key := range h.bucketKeys {
		acc += buckets[key]
		buckets[key] = acc
	}
}

// InitLabelSet creates all buckets of the permutation identified by labels.
func (h *Histogram) InitLabelSet(labels LabelSet) error {
	ls, err := h.desc.LabelSetFor(labels)
	if err != nil {
		return err
	}
	h.store.Synchronize(func(tx MetricStore) {
		for _, key := range h.bucketKeys {
			tx.Ensure(ls.With(bucketLabel, key))
		}
		tx.Ensure(ls.With(bucketLabel, SumBucket))
	})
	return nil
}
