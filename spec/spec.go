// Package spec embeds the OpenAPI description of the TripWeaver API.
// The server serves it at GET /openapi.yaml.
package spec

import (
	_ "embed"
	"net/http"
)

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte

// Handler serves the embedded document.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(OpenAPI)
	}
}
