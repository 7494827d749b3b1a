// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"log/slog"

	"github.com/tinybank/tinybank/api/admin"
	"github.com/tinybank/tinybank/api/admin/health"
)

func StartAdminServer(addr string, logLevel *slog.LevelVar, h *health.Health) (string, func(), error) {
	addr, closeFunc, err := serve("admin API", addr, admin.New(logLevel, h))
	if err != nil {
		return "", nil, err
	}
	return "http://" + addr + "/admin", closeFunc, nil
}
