package types

import (
	"encoding/json"
	"net/http"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Status  string      `json:"status,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Meta struct {
	RequestID string `json:"request_id,omitempty"`
	Page      int    `json:"page,omitempty"`
	PageSize  int    `json:"page_size,omitempty"`
	Total     int64  `json:"total,omitempty"`
}

// WriteJSON writes v as a JSON response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a successful envelope around data.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, APIResponse{Success: true, Data: data})
}

// WriteStatus writes a successful envelope carrying only an explicit status
// message, used by delete and contributor add/remove responses.
func WriteStatus(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, APIResponse{Success: true, Status: message})
}

// WriteError maps an application error onto the HTTP response.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusOf(err), APIResponse{Success: false, Error: FromAppError(err)})
}

// WriteErrorStr writes a bare validation-style error message.
func WriteErrorStr(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, APIResponse{Success: false, Error: &APIError{Code: "invalid", Message: msg}})
}
