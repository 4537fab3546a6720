package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type CORSConfig struct {
	// AllowedOrigins admite "*" para cualquier origen.
	AllowedOrigins []string
	MaxAge         time.Duration
}

// WithCORS responde preflights y agrega las cabeceras CORS para orígenes permitidos.
// Authorization se expone para que el frontend pueda leerlo.
func WithCORS(cfg CORSConfig) Middleware {
	trim := func(s string) string { return strings.TrimRight(strings.TrimSpace(s), "/") }
	allowed := make([]string, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o = trim(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	maxAgeStr := strconv.Itoa(int(maxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := trim(r.Header.Get("Origin"))
			ok := false
			for _, a := range allowed {
				if origin != "" && (a == "*" || strings.EqualFold(origin, a)) {
					ok = true
					break
				}
			}

			h := w.Header()
			h.Add("Vary", "Origin")
			if ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Expose-Headers", "Authorization, X-Request-ID, Retry-After")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if ok {
					h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
					h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
					h.Set("Access-Control-Max-Age", maxAgeStr)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
