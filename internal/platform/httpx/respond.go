// Package httpx provides JSON response utilities shared by all handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response body shape used across the API.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Total   *int   `json:"total,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// OK sends a success envelope.
func OK(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Success: true, Data: data})
}

// OKList sends a success envelope with a total count for listings.
func OKList(w http.ResponseWriter, data any, total int) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Total: &total})
}

// OKMessage sends a success envelope carrying only a message.
func OKMessage(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// Fail sends a failure envelope.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Error: message})
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
