// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

// Package debug exposes prometheus metrics and pprof endpoints for
// long-running invocations. It is off unless the root command's
// --debug_addr flag names a listen address.
package debug

import (
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kirku1g/dataiter/pkg/logger"
)

func GetMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}))
	mux.Handle("/debug/", http.HandlerFunc(pprof.Index))
	mux.Handle("/debug/allocs/", pprof.Handler("allocs"))
	mux.Handle("/debug/goroutine/", pprof.Handler("goroutine"))
	mux.Handle("/debug/heap/", pprof.Handler("heap"))
	mux.Handle("/debug/profile", http.HandlerFunc(pprof.Profile))
	mux.Handle("/debug/trace", http.HandlerFunc(pprof.Trace))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

// Serve starts the debug listener in the background. The surface is
// best-effort: failures are logged, never fatal.
func Serve(addr string) {
	go func() {
		if err := http.ListenAndServe(addr, GetMux()); err != nil {
			logger.Warn().Err(err).Str("addr", addr).Msg("debug server stopped")
		}
	}()
}
