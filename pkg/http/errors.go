package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coachdesk/api/internal/models"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error   string `json:"error"`             // Machine-readable error code
	Message string `json:"message"`           // Human-readable message
	Details string `json:"details,omitempty"` // Optional additional context
}

// WriteError writes a JSON error response with the given status code
func WriteError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:   errorCode,
		Message: message,
	}

	_ = json.NewEncoder(w).Encode(resp)
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message)
}

func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message)
}

func WriteTooManyRequests(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message)
}

// WriteDomainError maps service-layer conditions onto HTTP responses.
// Authorization conditions surface their stable code verbatim; generic
// failures become a 500 without leaking the underlying cause.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		WriteNotFound(w, "resource not found")
	case errors.Is(err, models.ErrConflict):
		WriteConflict(w, "resource already exists")
	case errors.Is(err, models.ErrUnauthorized):
		WriteUnauthorized(w, "unauthorized")
	case errors.Is(err, models.ErrBadRequest):
		WriteBadRequest(w, "bad request")
	case isForbiddenCondition(err):
		WriteError(w, http.StatusForbidden, err.Error(), "you do not have access to this resource")
	default:
		WriteError(w, http.StatusInternalServerError, err.Error(), "the operation could not be completed")
	}
}

var forbiddenConditions = []error{
	models.ErrForbidden,
	models.ErrListMealPlansForbidden,
	models.ErrListProgramsForbidden,
	models.ErrListMealDaysForbidden,
	models.ErrListNotesForbidden,
	models.ErrListTasksForbidden,
	models.ErrGetMealPlanForbidden,
	models.ErrDeleteMealPlanForbidden,
	models.ErrGetProgramForbidden,
	models.ErrDeleteProgramForbidden,
	models.ErrDeleteMealDayForbidden,
	models.ErrDeleteNoteForbidden,
	models.ErrDeleteTaskForbidden,
	models.ErrGetDailyReportForbidden,
	models.ErrManageLinkForbidden,
}

func isForbiddenCondition(err error) bool {
	for _, condition := range forbiddenConditions {
		if errors.Is(err, condition) {
			return true
		}
	}
	return false
}
