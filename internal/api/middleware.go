package api

import (
	"bufio"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/tools4freee/t4f/internal/id"
	"github.com/tools4freee/t4f/internal/log"
)

const headerRequestID = "X-Request-ID"

// Cors wraps a handler with CORS headers so a static front end on another
// origin can call the local API.
func Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+headerRequestID)
		w.Header().Set("Access-Control-Expose-Headers", headerRequestID)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Logging wraps a handler with structured request logging. Each request gets
// an id (taken from X-Request-ID when the caller sent one) that is echoed back
// and attached to the request's context logger.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(headerRequestID)
		if reqID == "" {
			reqID = id.Generate(id.Request)
		}
		w.Header().Set(headerRequestID, reqID)

		logger := log.L().With().
			Str(log.FieldRequestID, reqID).
			Str(log.FieldMethod, r.Method).
			Str(log.FieldPath, r.URL.Path).
			Str(log.FieldClientIP, clientIP(r)).
			Logger()
		r = r.WithContext(log.WithLogger(r.Context(), logger))

		// Wrap response writer to capture status
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		logger.Info().
			Int(log.FieldStatus, wrapped.status).
			Float64(log.FieldLatency, float64(time.Since(start).Microseconds())/1000).
			Msg("request completed")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Hijack implements http.Hijacker to support WebSocket upgrades.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return h.Hijack()
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
