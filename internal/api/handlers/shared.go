package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// parseJSON decodes a JSON request body into the given type. Unknown fields
// are rejected so typos in client payloads fail loudly.
func parseJSON[T any](r *http.Request) (T, error) {
	var out T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&out); err != nil {
		return out, fmt.Errorf("invalid JSON body: %w", err)
	}
	return out, nil
}
