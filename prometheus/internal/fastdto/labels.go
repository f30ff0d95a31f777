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

// Package fastdto builds the protobuf messages of the client_model package
// from plain Go values.
package fastdto

import (
	"sort"
	"time"

	dto "github.com/prometheus/client_model/go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// LabelPair is a dto.LabelPair without pointers.
type LabelPair struct {
	Name  string
	Value string
}

// LabelPairSorter implements sort.Interface. It is used to sort a slice of
// LabelPairs by name.
type LabelPairSorter []LabelPair

func (s LabelPairSorter) Len() int {
	return len(s)
}

func (s LabelPairSorter) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func (s LabelPairSorter) Less(i, j int) bool {
	return s[i].Name < s[j].Name
}

// ToDTOLabelPairs converts in into dto label pairs sorted by name, as the
// exposition formats expect them. in is left untouched.
func ToDTOLabelPairs(in []LabelPair) []*dto.LabelPair {
	sorted := make([]LabelPair, len(in))
	copy(sorted, in)
	sort.Sort(LabelPairSorter(sorted))

	ret := make([]*dto.LabelPair, len(sorted))
	for i := range sorted {
		ret[i] = &dto.LabelPair{
			Name:  proto.String(sorted[i].Name),
			Value: proto.String(sorted[i].Value),
		}
	}
	return ret
}

// ToDTOExemplar returns an exemplar with the given labels, value and
// timestamp in seconds since the epoch.
func ToDTOExemplar(labels []LabelPair, value float64, ts int64) *dto.Exemplar {
	return &dto.Exemplar{
		Label:     ToDTOLabelPairs(labels),
		Value:     proto.Float64(value),
		Timestamp: timestamppb.New(time.Unix(ts, 0)),
	}
}

// ToDTOTimestamp returns t as a protobuf timestamp, or nil for the zero time.
func ToDTOTimestamp(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}
