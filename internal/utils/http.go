package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it with the given status code.
// On marshaling failure it responds with 500 and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// ErrorResponse is the JSON body of every failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes {"error": msg} with the given status code.
func WriteError(w http.ResponseWriter, msg string, statusCode int) {
	_, _ = WriteJSON(w, ErrorResponse{Error: msg}, statusCode)
}

// ReadJSON decodes a JSON request body into v. Unknown fields are rejected so
// that typos in field names do not silently turn into empty values.
func ReadJSON(body io.Reader, v any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("error decoding JSON body: %w", err)
	}

	return nil
}
