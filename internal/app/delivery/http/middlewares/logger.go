package middlewares

import (
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// RequestLogger writes one access log line per request, separate from the
// structured application log.
func (m *Middlewares) RequestLogger(log *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.WithFields(logrus.Fields{
				"time":        start.UTC().Format(time.RFC3339),
				"request_id":  utils.GetRequestID(r.Context()),
				"remote_addr": r.RemoteAddr,
				"method":      r.Method,
				"uri":         r.RequestURI,
				"user_agent":  r.Header.Get(constvars.HeaderUserAgent),
				"status":      rec.statusCode,
				"duration":    time.Since(start).String(),
			}).Info("access")
		})
	}
}
