package middleware

import (
	"net/http"
	"time"

	"ems-project/backend/logging"

	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logging.Logger.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.status,
			"latency": time.Since(start).String(),
		}).Infof("Event ID: HTTP_REQUEST, Description: %s %s -> %d", r.Method, r.URL.Path, rec.status)
	})
}
