package transport

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// CallEvent records metadata about a single API call.
type CallEvent struct {
	Method    string
	Resource  string
	RequestID string
	Status    int
	LatencyMs int64
	Success   bool
	ErrorCode string
	Err       error
}

// Observer receives events about API calls for logging and error toasts.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// LogObserver writes every call to a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("method", event.Method),
		zap.String("resource", event.Resource),
		zap.String("request_id", event.RequestID),
		zap.Int("status", event.Status),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if !event.Success {
		fields = append(fields, zap.String("error_code", event.ErrorCode), zap.Error(event.Err))
		o.logger.Warn("api_call", fields...)
		return
	}
	o.logger.Debug("api_call", fields...)
}

// ToastObserver prints a one-line message for every failed call. It is the
// shared error surface for fire-and-forget requests.
type ToastObserver struct {
	w io.Writer
}

func NewToastObserver(w io.Writer) *ToastObserver {
	return &ToastObserver{w: w}
}

func (o *ToastObserver) OnCallComplete(event CallEvent) {
	if event.Success {
		return
	}
	msg := event.ErrorCode
	if event.Err != nil {
		msg = event.Err.Error()
	}
	fmt.Fprintf(o.w, "! %s %s failed: %s\n", event.Method, event.Resource, msg)
}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event CallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}
