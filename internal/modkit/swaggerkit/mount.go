// Package swaggerkit serves Swagger UI and the decorated OpenAPI document
package swaggerkit

import (
	"encoding/json"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"streamdex/internal/platform/config"
	phttp "streamdex/internal/platform/net/http"
)

// Mount serves the UI under /api/docs/ when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	suffix := config.New().Prefix("API_").MayString("DOCS_TITLE_SUFFIX", "")
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(suffix))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

// serveDocJSON decorates a fresh copy of the document on every request
func serveDocJSON(titleSuffix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(docReader()), &doc); err != nil {
			http.Error(w, "doc parse error", http.StatusInternalServerError)
			return
		}
		Decorate(doc, "/api/v1", titleSuffix)

		w.Header().Set("Cache-Control", "no-store")
		phttp.JSON(w, http.StatusOK, doc)
	}
}
