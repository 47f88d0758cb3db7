package swaggerkit

import "strings"

// Decorate normalizes a generated document to OAS 3.0.3 and fills the error
// responses every catalog route can produce
func Decorate(doc map[string]any, baseURL, titleSuffix string) {
	ensureServers(doc, baseURL)
	if titleSuffix != "" {
		if info, ok := doc["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + titleSuffix
			}
		}
	}
	ensureErrorSchema(doc)
	for code, r := range defaultResponses {
		addDefault(doc, code, r)
	}
}

// ensureServers lifts swagger 2 and downsamples 3.1 since the ui only renders 3.0
func ensureServers(doc map[string]any, url string) {
	if _, hasSwagger := doc["swagger"]; hasSwagger {
		doc["openapi"] = "3.0.3"
		delete(doc, "swagger")
	}
	if v, ok := doc["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": url}}
	}
}

// ensureErrorSchema mirrors the runtime error envelope
func ensureErrorSchema(doc map[string]any) {
	comps := child(doc, "components")
	schemas := child(comps, "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

type example struct {
	description string
	code        int
	message     string
}

var defaultResponses = map[string]example{
	"400": {"Bad Request", 8, "sort must be one of [newest oldest shortest longest]"},
	"500": {"Internal Server Error", 1, "panic recovered"},
	"503": {"Service Unavailable", 2, "Error loading data."},
}

// addDefault injects a response under status on every operation that lacks one
func addDefault(doc map[string]any, status string, ex example) {
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": ex.description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": statusCode(status),
					"status":      ex.description,
					"code":        ex.code,
					"error":       ex.message,
					"request_id":  "streamdex/abc-000001",
				},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			if _, exists := responses[status]; !exists {
				responses[status] = resp
			}
		}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func statusCode(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
