// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/tinybank/tinybank/api/admin/health"
	"github.com/tinybank/tinybank/api/admin/loglevel"
)

func New(logLevel *slog.LevelVar, h *health.Health) http.HandlerFunc {
	router := mux.NewRouter()

	loglevel.New(logLevel).Mount(router, "/admin/loglevel")
	health.NewAPI(h).Mount(router, "/admin/health")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
