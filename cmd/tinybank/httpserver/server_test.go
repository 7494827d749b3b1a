// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybank/tinybank/api"
	"github.com/tinybank/tinybank/api/admin/health"
	"github.com/tinybank/tinybank/chain"
	"github.com/tinybank/tinybank/test/testchain"
)

func newChain(t *testing.T) *chain.Chain {
	c, err := testchain.NewIntegrationTestChain()
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c.Chain
}

func TestStartAPIServer(t *testing.T) {
	url, closeFunc, err := StartAPIServer("127.0.0.1:0", newChain(t), api.Options{AllowedOrigins: "*"}, 0)
	require.NoError(t, err)
	defer closeFunc()

	res, err := http.Get(url + "tokens/info") // #nosec
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestStartAdminServer(t *testing.T) {
	var level slog.LevelVar
	h := health.New(newChain(t), clockwork.NewFakeClock(), 0)

	url, closeFunc, err := StartAdminServer("127.0.0.1:0", &level, h)
	require.NoError(t, err)
	defer closeFunc()

	res, err := http.Get(url + "/loglevel") // #nosec
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "info", body["currentLevel"])
}

func TestStartMetricsServer(t *testing.T) {
	url, closeFunc, err := StartMetricsServer("127.0.0.1:0")
	require.NoError(t, err)
	defer closeFunc()

	res, err := http.Get(url) // #nosec
	require.NoError(t, err)
	res.Body.Close()
}

func TestListenError(t *testing.T) {
	_, _, err := StartMetricsServer("256.0.0.1:bad")
	assert.Error(t, err)
}
