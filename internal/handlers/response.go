package handlers

import (
	"encoding/json"
	"net/http"
)

func responseWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func responseWithError(w http.ResponseWriter, code int, message string) {
	responseWithJSON(w, code, map[string]string{"error": message})
}

// responseWithFields writes a field -> message map, the shape used for
// validation failures.
func responseWithFields(w http.ResponseWriter, code int, fields map[string]string) {
	responseWithJSON(w, code, fields)
}
