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
	"testing"
	"time"
)

func TestValueWithExemplarsSet(t *testing.T) {
	v := NewValueWithExemplars()
	if got := v.Set(5, nil); got != 5 || v.Value() != 5 {
		t.Errorf("expected 5, got %v", v.Value())
	}
	if _, ok := v.MostRecentExemplar(); ok {
		t.Error("expected no exemplar")
	}

	e := NewExemplar(Labels("hotdogs", "great"))
	v.Set(7, &e)
	got, ok := v.MostRecentExemplar()
	if !ok || got.Value() != 7 {
		t.Errorf("expected exemplar with value 7, got %v (ok=%v)", got.Value(), ok)
	}
	if !e.Empty() {
		t.Error("the caller's exemplar must not be modified")
	}
}

func TestValueWithExemplarsIncrement(t *testing.T) {
	v := NewValueWithExemplars()
	v.Set(5, nil)
	e := NewExemplar(Labels("hotdogs", "great"))
	v.Increment(7, &e)
	v.Increment(3, nil)
	v.Increment(-1, nil)

	if v.Value() != 14 {
		t.Errorf("expected 14, got %v", v.Value())
	}
	if got, _ := v.MostRecentExemplar(); got.Value() != 12 {
		t.Errorf("expected most recent exemplar to carry 12, got %v", got.Value())
	}
}

func TestValueWithExemplarsCreatedIsFixed(t *testing.T) {
	created := time.Unix(1000, 0)
	v := newValueWithExemplars(created)
	v.Increment(1, nil)
	v.Set(0, nil)

	if !v.Created().Equal(created) {
		t.Errorf("created moved from %v to %v", created, v.Created())
	}
}

func TestValueWithExemplarsSnapshot(t *testing.T) {
	v := NewValueWithExemplars()
	e := NewExemplarAt(nil, 1)
	v.Increment(1, &e)

	snap := v.Snapshot()
	e2 := NewExemplarAt(nil, 2)
	v.Increment(1, &e2)

	if snap.Value() != 1 {
		t.Errorf("snapshot value changed to %v", snap.Value())
	}
	if got, _ := snap.MostRecentExemplar(); got.Timestamp != 1 {
		t.Errorf("snapshot exemplars changed, most recent at %d", got.Timestamp)
	}
}

func TestValueWithExemplarsMarshalJSON(t *testing.T) {
	v := newValueWithExemplars(time.Unix(10, 500000000))
	e := NewExemplarAt(Labels("trace_id", "abc"), 42)
	v.Increment(2, &e)

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"value":2,"created":10.5,"exemplars":[{"labels":{"trace_id":"abc"},"value":2,"timestamp":42}]}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}
}
