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
	"time"
)

// SingleThreaded is a DataStore whose stores have no synchronization at all.
// It is the fastest backend, but a metric backed by it must only ever be used
// from one goroutine at a time, scrapes included.
type SingleThreaded struct {
	// Now is used to timestamp new label permutations. Defaults to time.Now.
	Now func() time.Time
}

// ForMetric implements DataStore.
func (s SingleThreaded) ForMetric(name string, _ MetricType, settings StoreSettings) (MetricStore, error) {
	if len(settings) > 0 {
		return nil, fmt.Errorf("%w: SingleThreaded doesn't allow any metric settings, got %v for %q", ErrInvalidStoreSettings, settings, name)
	}
	return newValueMap(s.Now), nil
}
