package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestIDHeader задаёт заголовок с идентификатором запроса.
const RequestIDHeader = "X-Request-ID"

// WithRequestID кладёт идентификатор запроса в контекст, чтобы переиспользовать его в заголовке.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestIDFromContext извлекает идентификатор запроса из контекста.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// RequestID проставляет X-Request-ID: из контекста или новый UUID.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(r)
			}

			id, ok := GetRequestIDFromContext(r.Context())
			if !ok {
				id = uuid.NewString()
			}

			req := r.Clone(r.Context())
			req.Header.Set(RequestIDHeader, id)
			return next.RoundTrip(req)
		})
	}
}
