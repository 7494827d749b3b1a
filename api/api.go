// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/tinybank/tinybank/api/bank"
	"github.com/tinybank/tinybank/api/blocks"
	"github.com/tinybank/tinybank/api/middleware"
	"github.com/tinybank/tinybank/api/tokens"
	"github.com/tinybank/tinybank/chain"
	"github.com/tinybank/tinybank/log"
	"github.com/tinybank/tinybank/metrics"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
	EnableMetrics        bool
}

// New return api router
func New(chain *chain.Chain, opts Options) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	tokens.New(chain).
		Mount(router, "/tokens")
	bank.New(chain).
		Mount(router, "/bank")
	blocks.New(chain).
		Mount(router, "/blocks")

	if opts.EnableMetrics {
		router.Use(middleware.MetricsMiddleware)
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	}

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, enabled, opts.SlowQueriesThreshold, opts.Log5xxErrors))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id"}),
	)(handler)

	genesisID := chain.GenesisID().String()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-genesis-id", genesisID)
		handler.ServeHTTP(w, r)
	})
}
