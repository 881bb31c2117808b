package logger

import "context"

type contextKey struct{}

var loggerKey = contextKey{}

// WithContext returns a copy of ctx carrying l.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger carried by ctx, or the default logger.
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*Logger); ok {
			return l
		}
	}
	return Default()
}

// WithField returns a context whose logger carries an extra field.
func WithField(ctx context.Context, key string, value interface{}) context.Context {
	return FromContext(ctx).WithField(key, value).WithContext(ctx)
}

// WithFields returns a context whose logger carries extra fields.
func WithFields(ctx context.Context, fields Fields) context.Context {
	return FromContext(ctx).WithFields(fields).WithContext(ctx)
}

// SetRequestID tags ctx with the HTTP request ID.
func SetRequestID(ctx context.Context, id string) context.Context {
	return WithField(ctx, FieldRequestID, id)
}

// SetJobID tags ctx with the job being matched.
func SetJobID(ctx context.Context, id int64) context.Context {
	return WithField(ctx, FieldJobID, id)
}

// SetProfessionalID tags ctx with a candidate professional.
func SetProfessionalID(ctx context.Context, id int64) context.Context {
	return WithField(ctx, FieldProfessionalID, id)
}

// SetMatchID tags ctx with a persisted match.
func SetMatchID(ctx context.Context, id int64) context.Context {
	return WithField(ctx, FieldMatchID, id)
}

// SetComponent tags ctx with the emitting component.
func SetComponent(ctx context.Context, name string) context.Context {
	return WithField(ctx, FieldComponent, name)
}

// Field returns a field carried by the context's logger.
func Field(ctx context.Context, key string) (interface{}, bool) {
	v, ok := FromContext(ctx).Data[key]
	return v, ok
}

// RequestID returns the request ID carried by ctx, or "".
func RequestID(ctx context.Context) string {
	v, _ := Field(ctx, FieldRequestID)
	s, _ := v.(string)
	return s
}
