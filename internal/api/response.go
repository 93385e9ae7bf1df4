package api

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

func created(w http.ResponseWriter, data any) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

func noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func fail(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

func failWith(w http.ResponseWriter, status int, message string, errs any) {
	write(w, status, envelope{Status: status, Message: message, Errors: errs})
}

func notFound(w http.ResponseWriter) {
	fail(w, http.StatusNotFound, "Not found")
}
