package http

import (
	"encoding/json"
	"net/http"
)

// Handler возвращает HTTP handler для health check endpoint.
// 200 {"status":"ok"}, если readiness не указана или возвращает true,
// иначе 503 {"status":"not ready"}.
func Handler(readiness func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if readiness != nil && !readiness() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
