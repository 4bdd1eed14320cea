package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"

	"miraiworks.jp/mirai-web/internal/i18n"
)

type logEntry struct {
	Timestamp  string `json:"ts"`
	Level      string `json:"level"`
	Message    string `json:"msg"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	RemoteIP   string `json:"remote_ip,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Lang       string `json:"lang,omitempty"`
}

// Logger emits a structured JSON log per request. The language is read
// from the URL path: the logger runs at the top of the middleware
// chain, before the locale middleware has put anything in the context.
func Logger(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := NewResponseRecorder(w)
			next.ServeHTTP(rw, r)
			e := logEntry{
				Timestamp:  time.Now().Format(time.RFC3339Nano),
				Level:      "info",
				Message:    "request",
				Method:     r.Method,
				Path:       r.URL.Path,
				Status:     rw.Status(),
				DurationMs: time.Since(start).Milliseconds(),
				RemoteIP:   clientIP(r),
				RequestID:  chiMid.GetReqID(r.Context()),
				Lang:       string(bundle.LanguageFromPath(r.URL.Path)),
			}
			b, _ := json.Marshal(e)
			log.Println(string(b))
		})
	}
}

func clientIP(r *http.Request) string {
	// Trust X-Forwarded-For set by the load balancer (last IP is client)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		p := strings.Split(xff, ",")
		return strings.TrimSpace(p[len(p)-1])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}
