package logger

import "context"

type traceKey struct{}

// TraceContext identifies a menu session and the device it is working on so
// that entries of one flashing attempt can be correlated.
type TraceContext struct {
	SessionID string
	Device    string
}

// ContextWithTrace returns a derived context carrying the provided trace metadata.
func ContextWithTrace(ctx context.Context, trace TraceContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, traceKey{}, trace)
}

// TraceFromContext extracts a TraceContext from ctx.
func TraceFromContext(ctx context.Context) TraceContext {
	if ctx == nil {
		return TraceContext{}
	}
	if trace, ok := ctx.Value(traceKey{}).(TraceContext); ok {
		return trace
	}
	return TraceContext{}
}

// WithDevice returns ctx with the device of its trace replaced.
func WithDevice(ctx context.Context, device string) context.Context {
	trace := TraceFromContext(ctx)
	trace.Device = device
	return ContextWithTrace(ctx, trace)
}

func traceFieldsFromContext(ctx context.Context) []Field {
	return TraceFromContext(ctx).fields()
}

func (t TraceContext) fields() []Field {
	var fields []Field
	if t.SessionID != "" {
		fields = append(fields, String("session", t.SessionID))
	}
	if t.Device != "" {
		fields = append(fields, String("device", t.Device))
	}
	return fields
}
