package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Logger журналирует каждый исходящий запрос: метод, путь, код ответа и длительность.
func Logger(logger *zap.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("request_id", r.Header.Get(RequestIDHeader)),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.Warn("api request failed", append(fields, zap.Error(err))...)
				return resp, err
			}

			logger.Debug("api request", append(fields, zap.Int("status", resp.StatusCode))...)
			return resp, nil
		})
	}
}
