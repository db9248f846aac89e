package logger

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	service   string
	requestID string
	z         *zap.Logger
}

func New(service string) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.Lock(os.Stdout), zapcore.DebugLevel)
	return FromZap(service, zap.New(core))
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger { return FromZap("nop", zap.NewNop()) }

// FromZap wraps an existing zap logger, stamping entries with service and hostname.
func FromZap(service string, z *zap.Logger) *Logger {
	return &Logger{
		service: service,
		z:       z.With(zap.String("service", service), zap.String("hostname", hostname())),
	}
}

// With returns a logger stamping every entry with requestID.
func (l *Logger) With(requestID string) *Logger {
	return &Logger{service: l.service, requestID: requestID, z: l.z}
}

func (l *Logger) Service() string { return l.service }

type requestIDKey struct{}

// WithRequestID stores id in ctx for Ctx to pick up.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Ctx returns a logger stamped with the request id carried by ctx, if any.
func (l *Logger) Ctx(ctx context.Context) *Logger {
	if id := RequestID(ctx); id != "" {
		return l.With(id)
	}
	return l
}

func (l *Logger) fields(action string, fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+2)
	out = append(out, zap.String("action", action), zap.String("request_id", l.requestID))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.z.Info(action, l.fields(action, fields)...)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.z.Debug(action, l.fields(action, fields)...)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	fs := l.fields(action, fields)
	if err != nil {
		fs = append(fs, zap.Object("error", errorObject{err}))
	}
	l.z.Error(action, fs...)
}

func (l *Logger) Sync() { _ = l.z.Sync() }

type errorObject struct{ err error }

func (e errorObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.err.Error())
	enc.AddString("type", fmt.Sprintf("%T", e.err))
	return nil
}

// NewRequestID returns a fresh request id.
func NewRequestID() string { return uuid.NewString() }

func hostname() string { h, _ := os.Hostname(); return h }
