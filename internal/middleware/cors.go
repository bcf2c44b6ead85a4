// Package middleware provides reusable HTTP middleware for the TripWeaver API.
package middleware

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Each entry must be a full origin (scheme + host, no trailing slash), or "*"
// to allow any origin. Browser clients send the supabase-style x-client-info
// and apikey headers, so those are allowed alongside the usual ones.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}

// writeError writes the API's flat JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
