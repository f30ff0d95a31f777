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
	"sync"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
)

var backends = []struct {
	name  string
	store DataStore
}{
	{name: "SingleThreaded", store: SingleThreaded{}},
	{name: "Synchronized", store: Synchronized{}},
}

func mustStore(t *testing.T, ds DataStore) MetricStore {
	t.Helper()
	s, err := ds.ForMetric("test_metric", CounterType, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestStoreRejectsSettings(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			_, err := b.store.ForMetric("foo", GaugeType, StoreSettings{"aggregation": "sum"})
			if !errors.Is(err, ErrInvalidStoreSettings) {
				t.Errorf("expected ErrInvalidStoreSettings, got %v", err)
			}
			if _, err := b.store.ForMetric("foo", GaugeType, StoreSettings{}); err != nil {
				t.Errorf("empty settings must be accepted, got %v", err)
			}
		})
	}
}

func TestStoreOperations(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := mustStore(t, b.store)
			red := Labels("code", "red")

			if got := s.Get(red); got != 0 {
				t.Errorf("expected auto-created zero, got %v", got)
			}
			if got := s.Increment(red, 2, nil); got != 2 {
				t.Errorf("expected 2, got %v", got)
			}
			if got := s.Increment(Labels("code", "red"), -0.5, nil); got != 1.5 {
				t.Errorf("expected 1.5, got %v", got)
			}
			if got := s.Set(Labels("code", "blue"), 7, nil); got != 7 {
				t.Errorf("expected 7, got %v", got)
			}

			want := []LabeledValue{
				{Labels: Labels("code", "red"), Value: 1.5},
				{Labels: Labels("code", "blue"), Value: 7},
			}
			if diff := cmp.Diff(want, s.AllValues()); diff != "" {
				t.Errorf("unexpected values (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoreLabelOrderDoesNotMatter(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := mustStore(t, b.store)
			s.Increment(Labels("a", "1", "b", "2"), 1, nil)
			s.Increment(Labels("b", "2", "a", "1"), 1, nil)

			all := s.AllValues()
			if len(all) != 1 || all[0].Value != 2 {
				t.Fatalf("expected one entry with value 2, got %s", spew.Sdump(all))
			}
			if got, want := all[0].Labels.Names(), []string{"a", "b"}; !cmp.Equal(got, want) {
				t.Errorf("expected first seen order %v, got %v", want, got)
			}
		})
	}
}

func TestStoreEnsureAndLookup(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := mustStore(t, b.store)
			ls := Labels("status", "bar")

			if _, ok := s.Lookup(ls); ok {
				t.Error("Lookup found an entry that was never created")
			}
			if len(s.AllValues()) != 0 {
				t.Error("Lookup must not create entries")
			}
			if !s.Ensure(ls) {
				t.Error("Ensure should report creation")
			}
			if s.Ensure(ls) {
				t.Error("Ensure should not report creation twice")
			}
			v, ok := s.Lookup(ls)
			if !ok || v.Value() != 0 {
				t.Errorf("expected existing zero entry, got %v (ok=%v)", v, ok)
			}
		})
	}
}

func TestStoreExemplars(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := mustStore(t, b.store)
			ls := Labels("code", "200")
			e := NewExemplarAt(Labels("trace_id", "abc"), 100)

			s.Increment(ls, 3, &e)
			s.Increment(ls, 4, nil)

			v := s.GetWithExemplars(ls)
			got, ok := v.MostRecentExemplar()
			if !ok || got.Value() != 3 || got.Timestamp != 100 {
				t.Errorf("unexpected exemplar %s", spew.Sdump(got))
			}
			if !e.Empty() {
				t.Error("caller's exemplar was modified")
			}

			// Snapshots are detached from the store.
			v.Increment(100, nil)
			if s.Get(ls) != 7 {
				t.Errorf("modifying a snapshot changed the store: %v", s.Get(ls))
			}
		})
	}
}

func TestStoreCreatedTimestamp(t *testing.T) {
	now := time.Unix(1234, 0)
	for _, ds := range []DataStore{
		SingleThreaded{Now: func() time.Time { return now }},
		Synchronized{Now: func() time.Time { return now }},
	} {
		s := mustStore(t, ds)
		s.Increment(nil, 1, nil)
		all := s.AllValuesWithExemplars()
		if len(all) != 1 || !all[0].Value.Created().Equal(now) {
			t.Errorf("unexpected created timestamp: %s", spew.Sdump(all))
		}
	}
}

func TestStoreReadsAreIdempotent(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := mustStore(t, b.store)
			s.Increment(Labels("a", "1"), 1, nil)
			s.Set(Labels("a", "2"), 2, nil)

			first := s.AllValues()
			for i := 0; i < 3; i++ {
				if diff := cmp.Diff(first, s.AllValues()); diff != "" {
					t.Fatalf("read %d differs (-first +got):\n%s", i, diff)
				}
				if s.Get(Labels("a", "1")) != 1 {
					t.Fatal("Get changed its result")
				}
			}
		})
	}
}

func TestSynchronizedStoreConcurrentIncrements(t *testing.T) {
	s := mustStore(t, Synchronized{})
	const goroutines, perGoroutine = 50, 200
	ls := Labels("code", "200")

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				e := NewExemplar(nil)
				s.Increment(ls, 1, &e)
			}
		}()
	}
	wg.Wait()

	if got := s.Get(ls); got != goroutines*perGoroutine {
		t.Errorf("lost updates: expected %d, got %v", goroutines*perGoroutine, got)
	}
}

func TestSynchronizedStoreCompoundUpdates(t *testing.T) {
	s := mustStore(t, Synchronized{})
	count, sum := Labels("quantile", "count"), Labels("quantile", "sum")
	s.Synchronize(func(tx MetricStore) {
		tx.Ensure(count)
		tx.Ensure(sum)
	})

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			var c, s2 float64
			s.Synchronize(func(tx MetricStore) {
				c, s2 = tx.Get(count), tx.Get(sum)
			})
			if c*2 != s2 {
				t.Errorf("observed a partial update: count=%v sum=%v", c, s2)
				return
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		s.Synchronize(func(tx MetricStore) {
			tx.Increment(count, 1, nil)
			tx.Increment(sum, 2, nil)
		})
	}
	close(done)
	wg.Wait()
}

func TestSingleThreadedSynchronizeRunsInline(t *testing.T) {
	s := mustStore(t, SingleThreaded{})
	ran := false
	s.Synchronize(func(tx MetricStore) {
		ran = true
		tx.Increment(nil, 1, nil)
	})
	if !ran || s.Get(nil) != 1 {
		t.Errorf("Synchronize did not run the block (ran=%v, value=%v)", ran, s.Get(nil))
	}
}

func BenchmarkStoreIncrement(b *testing.B) {
	for _, bk := range backends {
		b.Run(bk.name, func(b *testing.B) {
			s, _ := bk.store.ForMetric("bench", CounterType, nil)
			ls := Labels("code", "200", "method", "GET")
			for i := 0; i < b.N; i++ {
				s.Increment(ls, 1, nil)
			}
		})
	}
}
