// Package response defines the JSON envelope every endpoint answers with.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		log.Printf("ERROR [response.JSON] encoding response: %v", err)
	}
}

func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

func ValidationFailed(w http.ResponseWriter, errs []FieldError) {
	JSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "Validation failed", Errors: errs})
}

func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error")
}
