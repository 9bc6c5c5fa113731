// Package response defines the JSON envelope shared by all API endpoints.
package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// SuccessResponse represents a successful API response
type SuccessResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorResponse represents a failed API response
type ErrorResponse struct {
	Error string `json:"error"`
	Meta  Meta   `json:"meta"`
}

// Meta represents metadata in response
type Meta struct {
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
	Count     int       `json:"count,omitempty"`
}

func meta(r *http.Request) Meta {
	return Meta{
		RequestID: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Success sends a 200 response with data
func Success(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusOK, SuccessResponse{Data: data, Meta: meta(r)})
}

// SuccessList sends a 200 response with list data and count
func SuccessList(w http.ResponseWriter, r *http.Request, data any, count int) {
	m := meta(r)
	m.Count = count
	writeJSON(w, http.StatusOK, SuccessResponse{Data: data, Meta: m})
}

// SuccessWithMessage sends a 200 response with data and message
func SuccessWithMessage(w http.ResponseWriter, r *http.Request, data any, message string) {
	m := meta(r)
	m.Message = message
	writeJSON(w, http.StatusOK, SuccessResponse{Data: data, Meta: m})
}

// Created sends a 201 response with data and message
func Created(w http.ResponseWriter, r *http.Request, data any, message string) {
	m := meta(r)
	m.Message = message
	writeJSON(w, http.StatusCreated, SuccessResponse{Data: data, Meta: m})
}

// Error sends an error response with the given status
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Meta: meta(r)})
}
