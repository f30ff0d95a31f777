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

// Package promhttp provides tooling around HTTP servers: an http.Handler
// exposing the metrics of a prometheus.Registry, a middleware serving that
// handler next to an application, and instrumentation of other handlers.
package promhttp

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/munnerz/goautoneg"

	"github.com/prometheus/client_openmetrics/openmetrics"
	"github.com/prometheus/client_openmetrics/prometheus"
)

const (
	contentTypeHeader = "Content-Type"
	acceptHeader      = "Accept"

	// DefaultPath is the path the Exporter middleware serves metrics on.
	DefaultPath = "/metrics"
)

// offers are the media types the handler can respond with, in order of
// preference. The parameters of openmetrics.ContentType are not part of the
// negotiation.
var offers = []string{"text/plain"}

// HandlerOpts specifies options how to serve metrics via an http.Handler. The
// zero value of HandlerOpts is a reasonable default.
type HandlerOpts struct {
	// Logger is used to log errors rendering or writing the exposition.
	// By default, nothing is logged.
	Logger *slog.Logger

	// Path is the request path the Exporter middleware answers with the
	// metrics. Defaults to DefaultPath. HandlerFor ignores it.
	Path string

	// Port restricts the Exporter middleware to requests addressed to the
	// given port. Requests to other ports are passed on, even for Path. Zero
	// means any port. HandlerFor ignores it.
	Port string
}

type nopSlogHandler struct{}

func (nopSlogHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopSlogHandler) Handle(context.Context, slog.Record) error { return nil }
func (n nopSlogHandler) WithAttrs([]slog.Attr) slog.Handler      { return n }
func (n nopSlogHandler) WithGroup(string) slog.Handler           { return n }

func (opts HandlerOpts) logger() *slog.Logger {
	if opts.Logger == nil {
		return slog.New(nopSlogHandler{})
	}
	return opts.Logger
}

// HandlerFor returns an http.Handler exposing the metrics of reg. The
// response is negotiated from the Accept header: requests that accept neither
// text/plain nor any type are answered with 406 Not Acceptable.
func HandlerFor(reg *prometheus.Registry, opts HandlerOpts) http.Handler {
	logger := opts.logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if negotiate(r.Header) == "" {
			w.Header().Set(contentTypeHeader, "text/plain")
			w.WriteHeader(http.StatusNotAcceptable)
			_, _ = w.Write([]byte("Supported media types: " + strings.Join(offers, ", ")))
			return
		}

		body, err := openmetrics.Marshal(reg)
		if err != nil {
			logger.Error("Error rendering metrics", "err", err)
			http.Error(w, "An error has occurred while rendering metrics:\n\n"+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set(contentTypeHeader, openmetrics.ContentType)
		if _, err := w.Write([]byte(body)); err != nil {
			logger.Error("Error writing metrics", "err", err)
		}
	})
}

// Exporter returns a middleware that serves the metrics of reg on
// opts.Path and passes every other request on to next.
func Exporter(reg *prometheus.Registry, next http.Handler, opts HandlerOpts) http.Handler {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}
	metrics := HandlerFor(reg, opts)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == path && portMatches(r, opts.Port) {
			metrics.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// negotiate returns the offered media type the request accepts best, or ""
// if there is none. A missing Accept header accepts anything.
func negotiate(h http.Header) string {
	accept := h.Get(acceptHeader)
	if strings.TrimSpace(accept) == "" {
		return offers[0]
	}
	return goautoneg.Negotiate(accept, offers)
}

func portMatches(r *http.Request, port string) bool {
	if port == "" {
		return true
	}
	_, p, err := net.SplitHostPort(r.Host)
	if err != nil {
		return false
	}
	return p == port
}
