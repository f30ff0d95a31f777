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

// EvictionPolicy makes room in an ExemplarCollection that is about to exceed
// one of its limits. It is called repeatedly until the pending insertion fits.
type EvictionPolicy func(c *ExemplarCollection)

// EvictOldestBucket drops every exemplar sharing the smallest timestamp. A
// burst of exemplars recorded within the same second is therefore evicted as
// one unit.
func EvictOldestBucket() EvictionPolicy {
	return func(c *ExemplarCollection) {
		if len(c.timestamps) == 0 {
			return
		}
		oldest := c.timestamps[0]
		c.count -= len(c.buckets[oldest])
		delete(c.buckets, oldest)
		c.timestamps = c.timestamps[1:]
	}
}
