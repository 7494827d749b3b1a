// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net/http"
	"time"

	"github.com/tinybank/tinybank/api"
	"github.com/tinybank/tinybank/chain"
)

// StartAPIServer serves the REST API of the chain on addr.
func StartAPIServer(addr string, chain *chain.Chain, opts api.Options, timeout time.Duration) (string, func(), error) {
	var handler http.Handler = api.New(chain, opts)
	if timeout > 0 {
		handler = http.TimeoutHandler(handler, timeout, "request timeout")
	}
	addr, closeFunc, err := serve("API", addr, handler)
	if err != nil {
		return "", nil, err
	}
	return "http://" + addr + "/", closeFunc, nil
}
