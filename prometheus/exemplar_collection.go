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
	"sort"
)

const (
	// DefMaxExemplars is the default bound on the number of exemplars an
	// ExemplarCollection keeps.
	DefMaxExemplars = 240
	// DefMaxTimestamps is the default bound on the number of distinct
	// timestamps an ExemplarCollection keeps. Together with DefMaxExemplars
	// this holds about two minutes of traffic at two exemplars per second.
	DefMaxTimestamps = 120
)

// ExemplarCollection keeps the exemplars recorded for one label permutation,
// grouped by timestamp. It never holds more than its exemplar limit in total
// nor more than its timestamp limit in distinct timestamps.
//
// ExemplarCollection is not safe for concurrent use; the owning MetricStore
// serializes access to it.
type ExemplarCollection struct {
	buckets    map[int64][]Exemplar
	timestamps []int64 // Sorted ascending, one entry per key of buckets.
	count      int

	maxExemplars  int
	maxTimestamps int
	evict         EvictionPolicy
}

// NewExemplarCollection returns an empty collection with the default limits
// and EvictOldestBucket as its eviction policy.
func NewExemplarCollection() *ExemplarCollection {
	return newExemplarCollection(DefMaxExemplars, DefMaxTimestamps, EvictOldestBucket())
}

func newExemplarCollection(maxExemplars, maxTimestamps int, evict EvictionPolicy) *ExemplarCollection {
	return &ExemplarCollection{
		buckets:       map[int64][]Exemplar{},
		maxExemplars:  maxExemplars,
		maxTimestamps: maxTimestamps,
		evict:         evict,
	}
}

// Add inserts e after the exemplars already recorded at e.Timestamp, evicting
// old exemplars first if the insertion would exceed a limit. It returns e.
func (c *ExemplarCollection) Add(e Exemplar) Exemplar {
	for c.count > 0 && c.needsEviction(e.Timestamp) {
		before := c.count
		c.evict(c)
		if c.count == before {
			break
		}
	}

	bucket, ok := c.buckets[e.Timestamp]
	if !ok {
		i := sort.Search(len(c.timestamps), func(i int) bool { return c.timestamps[i] >= e.Timestamp })
		c.timestamps = append(c.timestamps, 0)
		copy(c.timestamps[i+1:], c.timestamps[i:])
		c.timestamps[i] = e.Timestamp
	}
	c.buckets[e.Timestamp] = append(bucket, e)
	c.count++
	return e
}

func (c *ExemplarCollection) needsEviction(ts int64) bool {
	if c.count+1 > c.maxExemplars {
		return true
	}
	_, known := c.buckets[ts]
	return !known && len(c.timestamps)+1 > c.maxTimestamps
}

// MostRecent returns the exemplar added last among those with the greatest
// timestamp. It returns false if the collection is empty.
func (c *ExemplarCollection) MostRecent() (Exemplar, bool) {
	if len(c.timestamps) == 0 {
		return Exemplar{}, false
	}
	bucket := c.buckets[c.timestamps[len(c.timestamps)-1]]
	return bucket[len(bucket)-1], true
}

// First returns the oldest exemplar, i.e. the first one yielded by All.
func (c *ExemplarCollection) First() (Exemplar, bool) {
	if len(c.timestamps) == 0 {
		return Exemplar{}, false
	}
	return c.buckets[c.timestamps[0]][0], true
}

// All yields every exemplar by ascending timestamp and, within one
// timestamp, in insertion order. The sequence can be ranged over repeatedly.
func (c *ExemplarCollection) All() iter.Seq[Exemplar] {
	return func(yield func(Exemplar) bool) {
		for _, ts := range c.timestamps {
			for _, e := range c.buckets[ts] {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Len returns the number of exemplars held.
func (c *ExemplarCollection) Len() int {
	return c.count
}

// Timestamps returns the number of distinct timestamps held.
func (c *ExemplarCollection) Timestamps() int {
	return len(c.timestamps)
}

// Clone returns a deep copy that shares no memory with c.
func (c *ExemplarCollection) Clone() *ExemplarCollection {
	out := newExemplarCollection(c.maxExemplars, c.maxTimestamps, c.evict)
	out.count = c.count
	out.timestamps = append([]int64(nil), c.timestamps...)
	for ts, bucket := range c.buckets {
		out.buckets[ts] = append([]Exemplar(nil), bucket...)
	}
	return out
}
