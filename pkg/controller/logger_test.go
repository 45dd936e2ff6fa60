package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"osintscan/pkg/controller"
	"osintscan/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, want: "1.2.3.4"},
		{name: "forwarded skips junk", headers: map[string]string{"X-Forwarded-For": "unknown, 2001:db8::1"}, want: "2001:db8::1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "9.8.7.6"}, want: "9.8.7.6"},
		{name: "remote addr", remoteAddr: "10.0.0.1:12345", want: "10.0.0.1"},
		{name: "remote addr without port", remoteAddr: "not-an-addr", want: "not-an-addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if tt.remoteAddr != "" {
				req.RemoteAddr = tt.remoteAddr
			}
			require.Equal(t, tt.want, controller.GetClientIP(req))
		})
	}
}

// observe hands fn a context whose logger records entries in memory.
func observe(t *testing.T, fn func(ctx context.Context)) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	fn(logger.WithLogger(context.Background(), zap.New(core)))

	return logs
}

func TestWithLogger_RequestID(t *testing.T) {
	var seen string
	handler := controller.WithLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(controller.RequestIDKey).(string)
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(controller.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "abc-123", seen)
	require.Equal(t, "abc-123", rec.Header().Get(controller.RequestIDHeader))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	require.NotEqual(t, "abc-123", seen)
	require.Equal(t, seen, rec.Header().Get(controller.RequestIDHeader))
}

func TestWithLogger_AccessLogLevel(t *testing.T) {
	for status, level := range map[int]zapcore.Level{
		http.StatusOK:                  zap.InfoLevel,
		http.StatusNotFound:            zap.WarnLevel,
		http.StatusServiceUnavailable:  zap.ErrorLevel,
		http.StatusInternalServerError: zap.ErrorLevel,
	} {
		logs := observe(t, func(ctx context.Context) {
			handler := controller.WithLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte("body"))
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/scans", nil).WithContext(ctx))
		})

		entries := logs.FilterMessage("Access log").All()
		require.Len(t, entries, 1)
		require.Equal(t, level, entries[0].Level, "status %d", status)
		fields := entries[0].ContextMap()
		require.EqualValues(t, status, fields["status_code"])
		require.EqualValues(t, 4, fields["bytes"])
		require.Equal(t, "/v1/scans", fields["url"])
		require.Contains(t, fields, string(controller.RequestIDKey))
	}
}

func TestWithLogger_ForwardsFlush(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	var flushErr error
	handler := controller.WithLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data: x\n\n"))
		flushErr = http.NewResponseController(w).Flush()
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, flushErr)
	require.True(t, rec.Flushed)
}
