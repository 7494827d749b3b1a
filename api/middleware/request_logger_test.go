// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tinybank/tinybank/log"
)

// mockLogger records the context of Info and Warn calls
type mockLogger struct {
	loggedData []any
}

func (m *mockLogger) With(_ ...any) log.Logger { return m }

func (m *mockLogger) New(_ ...any) log.Logger { return m }

func (m *mockLogger) Log(_ slog.Level, _ string, _ ...any) {}

func (m *mockLogger) Write(_ slog.Level, _ string, _ ...any) {}

func (m *mockLogger) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (m *mockLogger) Handler() slog.Handler { return nil }

func (m *mockLogger) Trace(_ string, _ ...any) {}

func (m *mockLogger) Debug(_ string, _ ...any) {}

func (m *mockLogger) Error(_ string, _ ...any) {}

func (m *mockLogger) Crit(_ string, _ ...any) {}

func (m *mockLogger) Info(_ string, ctx ...any) {
	m.loggedData = append(m.loggedData, ctx...)
}

func (m *mockLogger) Warn(_ string, ctx ...any) {
	m.loggedData = append(m.loggedData, ctx...)
}

func respond(code int, delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(delay)
		w.WriteHeader(code)
		w.Write([]byte(http.StatusText(code)))
	}
}

func TestRequestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name                 string
		handler              http.HandlerFunc
		enabled              bool
		slowQueriesThreshold time.Duration
		log5xxErrors         bool
		expectedStatusCode   int
		shouldLog            bool
	}{
		{
			name:               "enabled fast 2xx",
			handler:            respond(http.StatusOK, 0),
			enabled:            true,
			expectedStatusCode: http.StatusOK,
			shouldLog:          true,
		},
		{
			name:               "disabled fast 2xx",
			handler:            respond(http.StatusOK, 0),
			expectedStatusCode: http.StatusOK,
			shouldLog:          false,
		},
		{
			name:                 "slow request over threshold",
			handler:              respond(http.StatusOK, 15*time.Millisecond),
			slowQueriesThreshold: 10 * time.Millisecond,
			expectedStatusCode:   http.StatusOK,
			shouldLog:            true,
		},
		{
			name:                 "fast request under threshold",
			handler:              respond(http.StatusOK, 0),
			slowQueriesThreshold: 200 * time.Millisecond,
			expectedStatusCode:   http.StatusOK,
			shouldLog:            false,
		},
		{
			name:               "5xx logged",
			handler:            respond(http.StatusInternalServerError, 0),
			log5xxErrors:       true,
			expectedStatusCode: http.StatusInternalServerError,
			shouldLog:          true,
		},
		{
			name:               "5xx not logged when disabled",
			handler:            respond(http.StatusInternalServerError, 0),
			expectedStatusCode: http.StatusInternalServerError,
			shouldLog:          false,
		},
		{
			name:               "revert is not a 5xx",
			handler:            respond(http.StatusForbidden, 0),
			log5xxErrors:       true,
			expectedStatusCode: http.StatusForbidden,
			shouldLog:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLog := &mockLogger{}
			enabled := atomic.Bool{}
			enabled.Store(tt.enabled)

			handler := RequestLoggerMiddleware(mockLog, &enabled, tt.slowQueriesThreshold, tt.log5xxErrors)(tt.handler)

			reqBody := `{"caller":"0xf077b491b355e64048ce21e3a6fc4751eeea77fa","amount":"100"}`
			req := httptest.NewRequest(http.MethodPost, "http://example.com/bank/stake", strings.NewReader(reqBody))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			if tt.shouldLog {
				assert.Contains(t, mockLog.loggedData, "http://example.com/bank/stake")
				assert.Contains(t, mockLog.loggedData, http.MethodPost)
				assert.Contains(t, mockLog.loggedData, reqBody)
				assert.Contains(t, mockLog.loggedData, tt.expectedStatusCode)
			} else {
				assert.Empty(t, mockLog.loggedData)
			}
		})
	}
}

func TestRequestLoggerKeepsBody(t *testing.T) {
	enabled := atomic.Bool{}
	enabled.Store(true)

	var got string
	handler := RequestLoggerMiddleware(&mockLogger{}, &enabled, 0, false)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		got = buf.String()
	}))

	req := httptest.NewRequest(http.MethodPost, "/tokens/transfer", strings.NewReader("payload"))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "payload", got)
}
