package httpserver

import (
	"log"
	"net/http"
	"slices"

	"github.com/felixge/httpsnoop"
	"github.com/rs/cors"

	"digit-identifier/api/internal/util"
)

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := util.NewRequestID(r.Header.Get(util.RequestIDHeader))
		w.Header().Set(util.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(util.WithRequestID(r.Context(), id)))
	})
}

func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		log.Printf("[%s] %s %s %d %dB %v",
			util.RequestID(r.Context()), r.Method, r.URL.Path, m.Code, m.Written, m.Duration)
	})
}

// withCORS answers preflights itself and decorates every other response.
// "*" in origins allows any origin; the matching origin is echoed back
// so credentials keep working.
func withCORS(next http.Handler, origins []string) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{util.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           600,
	}
	if slices.Contains(origins, "*") {
		opts.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(opts).Handler(next)
}
