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
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_openmetrics/prometheus"
)

// InstrumentHandlerInFlight is a middleware that wraps the provided
// http.Handler. It sets the provided Gauge to the number of requests currently
// handled by the wrapped http.Handler. The Gauge must not have labels beyond
// its preset ones.
//
// See the example for InstrumentHandlerDuration for example usage.
func InstrumentHandlerInFlight(g *prometheus.Gauge, next http.Handler) http.Handler {
	if err := g.InitLabelSet(nil); err != nil {
		panic(fmt.Errorf("in-flight gauge %s: %w", g.Desc().Name(), err))
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = g.Increment(nil, 1, nil)
		defer func() { _ = g.Decrement(nil, 1, nil) }()
		next.ServeHTTP(w, r)
	})
}

// InstrumentHandlerCounter is a middleware that wraps the provided
// http.Handler to observe the request result with the provided Counter. The
// Counter may have the labels "code" and "method" (on top of its preset
// labels), which are filled with the status code and the request method. It
// panics if the Counter has any other label.
//
// If the wrapped Handler does not set a status code, a status code of 200 is
// assumed.
//
// If WithExemplarFromRequest or WithExemplarFromContext is given, the
// increment carries an exemplar with the returned labels.
func InstrumentHandlerCounter(c *prometheus.Counter, next http.Handler, opts ...Option) http.Handler {
	hOpts := defaultOptions()
	for _, o := range opts {
		o.apply(hOpts)
	}
	code, method := checkLabels(c.Desc())

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := newDelegator(w)
		next.ServeHTTP(d, r)

		l := labels(code, method, r.Method, d.Status(), hOpts.extraMethods...)
		_ = c.Increment(l, 1, hOpts.exemplar(r))
	})
}

// InstrumentHandlerDuration is a middleware that wraps the provided
// http.Handler to observe the request duration in seconds with the provided
// Histogram. Labels are handled as by InstrumentHandlerCounter.
//
// Histograms do not keep exemplars, so exemplar options have no effect.
func InstrumentHandlerDuration(h *prometheus.Histogram, next http.Handler, opts ...Option) http.Handler {
	return instrumentHistogram(h, next, func(start time.Time, _ *responseWriterDelegator) float64 {
		return time.Since(start).Seconds()
	}, opts...)
}

// InstrumentHandlerResponseSize is a middleware that wraps the provided
// http.Handler to observe the size of the responses in bytes with the
// provided Histogram. Labels are handled as by InstrumentHandlerCounter.
func InstrumentHandlerResponseSize(h *prometheus.Histogram, next http.Handler, opts ...Option) http.Handler {
	return instrumentHistogram(h, next, func(_ time.Time, d *responseWriterDelegator) float64 {
		return float64(d.Written())
	}, opts...)
}

func instrumentHistogram(
	h *prometheus.Histogram,
	next http.Handler,
	observed func(start time.Time, d *responseWriterDelegator) float64,
	opts ...Option,
) http.Handler {
	hOpts := defaultOptions()
	for _, o := range opts {
		o.apply(hOpts)
	}
	code, method := checkLabels(h.Desc())

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		d := newDelegator(w)
		next.ServeHTTP(d, r)

		l := labels(code, method, r.Method, d.Status(), hOpts.extraMethods...)
		_ = h.Observe(l, observed(now, d))
	})
}

// checkLabels reports whether the metric uses the "code" and "method" labels.
// It panics if the metric needs any other label at the call site.
func checkLabels(desc *prometheus.Desc) (code, method bool) {
	preset := desc.PresetLabels()
	for _, name := range desc.LabelNames() {
		if preset.Has(name) {
			continue
		}
		switch name {
		case "code":
			code = true
		case "method":
			method = true
		default:
			panic(fmt.Errorf("metric %q: label %q is neither preset nor one of \"code\" and \"method\"", desc.Name(), name))
		}
	}
	return code, method
}

func labels(code, method bool, reqMethod string, status int, extraMethods ...string) prometheus.LabelSet {
	var ls prometheus.LabelSet
	if code {
		ls = ls.With("code", sanitizeCode(status))
	}
	if method {
		ls = ls.With("method", sanitizeMethod(reqMethod, extraMethods...))
	}
	return ls
}

func sanitizeMethod(m string, extraMethods ...string) string {
	switch m {
	case "GET", "get":
		return "get"
	case "PUT", "put":
		return "put"
	case "HEAD", "head":
		return "head"
	case "POST", "post":
		return "post"
	case "DELETE", "delete":
		return "delete"
	case "CONNECT", "connect":
		return "connect"
	case "OPTIONS", "options":
		return "options"
	case "NOTIFY", "notify":
		return "notify"
	case "TRACE", "trace":
		return "trace"
	case "PATCH", "patch":
		return "patch"
	default:
		for _, method := range extraMethods {
			if strings.EqualFold(m, method) {
				return strings.ToLower(m)
			}
		}
		return "unknown"
	}
}

// If the wrapped http.Handler has not set a status code, i.e. the value is
// currently 0, sanitizeCode will return 200, for consistency with behavior in
// the stdlib.
func sanitizeCode(s int) string {
	if s == 0 {
		return "200"
	}
	return strconv.Itoa(s)
}

// responseWriterDelegator records the status code and the number of bytes
// written through it.
type responseWriterDelegator struct {
	http.ResponseWriter

	status      int
	written     int64
	wroteHeader bool
}

func newDelegator(w http.ResponseWriter) *responseWriterDelegator {
	return &responseWriterDelegator{ResponseWriter: w}
}

func (r *responseWriterDelegator) Status() int {
	return r.status
}

func (r *responseWriterDelegator) Written() int64 {
	return r.written
}

func (r *responseWriterDelegator) WriteHeader(code int) {
	if r.wroteHeader {
		return
	}
	r.status = code
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseWriterDelegator) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.written += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the optional interfaces of the
// wrapped http.ResponseWriter.
func (r *responseWriterDelegator) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
