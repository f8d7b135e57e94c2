package handler

import (
	"encoding/json"
	"net/http"

	"github.com/winecellar/intake/internal/store"
)

// Handler serves the operational endpoints.
type Handler struct {
	db store.Pinger // nil when the backend cannot be pinged
}

// New creates a Handler; db may be nil.
func New(db store.Pinger) *Handler {
	return &Handler{db: db}
}

// CORS answers preflight requests and attaches the permissive cross-origin
// headers to every response of the wrapped handler.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
