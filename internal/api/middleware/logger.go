package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Logger returns a middleware that logs HTTP requests through the given
// structured logger.
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap the response writer to capture the status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			// Sanitize user-supplied values to prevent log injection: strip CR/LF before logging.
			sanitize := strings.NewReplacer("\n", "", "\r", "").Replace
			log.Info("http request",
				"method", sanitize(r.Method),
				"path", sanitize(r.URL.Path),
				"status", wrapped.statusCode,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
