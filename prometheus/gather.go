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

	dto "github.com/prometheus/client_model/go"
	"google.golang.org/protobuf/proto"

	"github.com/prometheus/client_openmetrics/prometheus/internal/fastdto"
)

// Gather returns the current state of all registered metrics as MetricFamily
// protobufs, in registration order. Label pairs are sorted by name. This is
// the bridge to the exposition formats of the expfmt package.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	metrics := r.Metrics()
	mfs := make([]*dto.MetricFamily, 0, len(metrics))
	for _, m := range metrics {
		mf, err := toMetricFamily(m)
		if err != nil {
			return nil, err
		}
		mfs = append(mfs, mf)
	}
	return mfs, nil
}

func toMetricFamily(m Metric) (*dto.MetricFamily, error) {
	desc := m.Desc()
	mf := &dto.MetricFamily{
		Name: proto.String(desc.Name()),
		Help: proto.String(desc.Help()),
	}

	switch metric := m.(type) {
	case *Counter:
		mf.Type = dto.MetricType_COUNTER.Enum()
		for _, lv := range metric.Values() {
			c := &dto.Counter{
				Value:            proto.Float64(lv.Value.Value()),
				CreatedTimestamp: fastdto.ToDTOTimestamp(lv.Value.Created()),
			}
			if e, ok := lv.Value.MostRecentExemplar(); ok {
				c.Exemplar = fastdto.ToDTOExemplar(toFastLabels(e.Labels), e.Value(), e.Timestamp)
			}
			mf.Metric = append(mf.Metric, &dto.Metric{Label: toDTOLabels(lv.Labels), Counter: c})
		}
	case *Gauge:
		mf.Type = dto.MetricType_GAUGE.Enum()
		for _, lv := range metric.Values() {
			mf.Metric = append(mf.Metric, &dto.Metric{
				Label: toDTOLabels(lv.Labels),
				Gauge: &dto.Gauge{Value: proto.Float64(lv.Value.Value())},
			})
		}
	case *Histogram:
		mf.Type = dto.MetricType_HISTOGRAM.Enum()
		for _, hv := range metric.Values() {
			h := &dto.Histogram{
				SampleCount:      proto.Uint64(uint64(hv.Count())),
				SampleSum:        proto.Float64(hv.Sum()),
				CreatedTimestamp: fastdto.ToDTOTimestamp(hv.Created),
			}
			for i, upper := range metric.upperBounds {
				h.Bucket = append(h.Bucket, &dto.Bucket{
					CumulativeCount: proto.Uint64(uint64(hv.Buckets[metric.bucketKeys[i]])),
					UpperBound:      proto.Float64(upper),
				})
			}
			mf.Metric = append(mf.Metric, &dto.Metric{Label: toDTOLabels(hv.Labels), Histogram: h})
		}
	case *Summary:
		mf.Type = dto.MetricType_SUMMARY.Enum()
		for _, sv := range metric.Values() {
			mf.Metric = append(mf.Metric, &dto.Metric{
				Label: toDTOLabels(sv.Labels),
				Summary: &dto.Summary{
					SampleCount:      proto.Uint64(uint64(sv.Count)),
					SampleSum:        proto.Float64(sv.Sum),
					CreatedTimestamp: fastdto.ToDTOTimestamp(sv.Created),
				},
			})
		}
	default:
		return nil, fmt.Errorf("metric %q has unsupported type %T", desc.Name(), m)
	}
	return mf, nil
}

func toFastLabels(ls LabelSet) []fastdto.LabelPair {
	out := make([]fastdto.LabelPair, len(ls))
	for i, lp := range ls {
		out[i] = fastdto.LabelPair(lp)
	}
	return out
}

func toDTOLabels(ls LabelSet) []*dto.LabelPair {
	return fastdto.ToDTOLabelPairs(toFastLabels(ls))
}
