package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(t *testing.T) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap("pos-service", zap.New(core)), logs
}

func TestLogger_Info(t *testing.T) {
	lg, logs := newObserved(t)
	lg.With("req-1").Info("order_placed", map[string]any{"order_id": int64(7)})

	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, e.Level)
	assert.Equal(t, "order_placed", e.Message)

	ctx := e.ContextMap()
	assert.Equal(t, "pos-service", ctx["service"])
	assert.Equal(t, "order_placed", ctx["action"])
	assert.Equal(t, "req-1", ctx["request_id"])
	assert.Equal(t, int64(7), ctx["order_id"])
}

func TestLogger_Error(t *testing.T) {
	lg, logs := newObserved(t)
	lg.Error("publish_failed", errors.New("broker gone"), nil)

	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, e.Level)

	errField, ok := e.ContextMap()["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "broker gone", errField["msg"])
	assert.Equal(t, "*errors.errorString", errField["type"])
}

func TestLogger_Debug(t *testing.T) {
	lg, logs := newObserved(t)
	lg.Debug("tick", nil)
	assert.Equal(t, 1, logs.FilterMessage("tick").Len())
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "nop", NewNop().Service())
}

func TestLogger_Ctx(t *testing.T) {
	lg, logs := newObserved(t)

	lg.Ctx(t.Context()).Info("no_request", nil)
	lg.Ctx(WithRequestID(t.Context(), "req-123")).Info("with_request", nil)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "", logs.All()[0].ContextMap()["request_id"])
	assert.Equal(t, "req-123", logs.All()[1].ContextMap()["request_id"])
	assert.Equal(t, "req-123", RequestID(WithRequestID(t.Context(), "req-123")))
}
