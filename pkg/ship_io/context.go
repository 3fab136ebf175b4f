// pkg/ship_io/context.go

package ship_io

import (
	"context"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/CodeMonkeyCybersecurity/ship/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries the per-invocation context, logger and span.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	Component  string
	Attributes map[string]string
}

// NewContext sets up tracing and a logger scoped to the calling component.
func NewContext(parent context.Context, cmdName string) *RuntimeContext {
	ctx, span := telemetry.Start(parent, cmdName)

	comp, action := resolveCallContext(2)
	log := logger.L().With(
		zap.String("component", comp),
		zap.String("action", action),
	).Named(comp)
	if sc := span.SpanContext(); sc.IsValid() {
		log = log.With(zap.String("trace_id", sc.TraceID().String()))
	}

	return &RuntimeContext{
		Ctx:        ctx,
		Span:       span,
		Log:        log,
		Timestamp:  time.Now(),
		Component:  comp,
		Command:    cmdName,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("panic recovered", zap.Any("panic", r))
	}
}

// End logs outcome, records the final span attributes, and flushes logs.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	duration := time.Since(rc.Timestamp)
	var err error
	if errPtr != nil {
		err = *errPtr
	}

	switch {
	case err == nil:
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	case ship_err.IsExpectedUserError(err):
		rc.Log.Info("Command finished early", zap.Duration("duration", duration), zap.String("reason", err.Error()))
	default:
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(err))
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("error_type", classifyError(err)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)
	if err != nil && !ship_err.IsExpectedUserError(err) {
		rc.Span.RecordError(err)
	}

	_ = logger.Sync()
}

// LogRuntimeExecutionContext logs the executable and process identity.
func LogRuntimeExecutionContext(rc *RuntimeContext) {
	fields := []zap.Field{
		zap.Int("pid", os.Getpid()),
		zap.Int("uid", os.Getuid()),
	}
	if execPath, err := os.Executable(); err == nil {
		fields = append(fields, zap.String("executable", execPath))
	}
	if wd, err := os.Getwd(); err == nil {
		fields = append(fields, zap.String("cwd", wd))
	}
	rc.Log.Debug("Runtime execution context", fields...)
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if ship_err.IsExpectedUserError(err) {
		return "user"
	}
	if cat, ok := ship_err.CategoryOf(err); ok {
		return cat.String()
	}
	return "system"
}

func resolveCallContext(skip int) (component, action string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown"
	}
	parts := strings.Split(file, "/")
	component = "unknown"
	if len(parts) >= 2 {
		component = parts[len(parts)-2]
	}
	action = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		fields := strings.Split(fn.Name(), ".")
		action = fields[len(fields)-1]
	}
	return component, action
}
