package api

import (
	"encoding/json"
	"net/http"

	t4ferr "github.com/tools4freee/t4f/internal/errors"
	"github.com/tools4freee/t4f/internal/log"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// StatusFor maps a domain error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case t4ferr.IsValidationError(err):
		return http.StatusBadRequest
	case t4ferr.IsNotFound(err):
		return http.StatusNotFound
	case t4ferr.IsNoPrimeFound(err):
		return http.StatusUnprocessableEntity
	case t4ferr.IsEntropyUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error writes an error response, mapping domain errors to HTTP status codes.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Int(log.FieldStatus, status).Msg("request failed")
	}
	JSON(w, status, ErrorResponse{Error: err.Error(), Code: t4ferr.Code(err)})
}

// BadRequest writes a 400 error with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Code: "INVALID_PARAMETERS"})
}
