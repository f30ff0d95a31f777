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

package promhttp

import (
	"context"
	"net/http"

	"github.com/prometheus/client_openmetrics/prometheus"
)

// Option configures the instrumentation of a handler.
type Option interface {
	apply(*options)
}

// options store options for the handler instrumentation.
type options struct {
	extraMethods  []string
	getExemplarFn func(req *http.Request) prometheus.LabelSet
}

func defaultOptions() *options {
	return &options{
		getExemplarFn: func(req *http.Request) prometheus.LabelSet { return nil },
	}
}

func (o *options) exemplar(r *http.Request) *prometheus.Exemplar {
	labels := o.getExemplarFn(r)
	if labels == nil {
		return nil
	}
	e := prometheus.NewExemplar(labels)
	return &e
}

type optionApplyFunc func(*options)

func (o optionApplyFunc) apply(opt *options) { o(opt) }

// WithExtraMethods adds additional HTTP methods to the list of allowed methods.
// See https://developer.mozilla.org/en-US/docs/Web/HTTP/Methods for the default list.
func WithExtraMethods(methods ...string) Option {
	return optionApplyFunc(func(o *options) {
		o.extraMethods = methods
	})
}

// WithExemplarFromRequest allows to inject a function that returns the labels
// of an exemplar for the request, e.g. its trace ID. If the function returns
// nil labels, no exemplar is recorded, but the metric is still updated.
func WithExemplarFromRequest(getExemplarFn func(req *http.Request) prometheus.LabelSet) Option {
	return optionApplyFunc(func(o *options) {
		o.getExemplarFn = getExemplarFn
	})
}

// WithExemplarFromContext is like WithExemplarFromRequest but only gets
// access to the request context.
func WithExemplarFromContext(getExemplarFn func(requestCtx context.Context) prometheus.LabelSet) Option {
	return optionApplyFunc(func(o *options) {
		o.getExemplarFn = func(req *http.Request) prometheus.LabelSet {
			return getExemplarFn(req.Context())
		}
	})
}
