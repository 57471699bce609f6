package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pmillerd/hauliq/internal/domain"
)

// ErrorDetail is the machine-readable error payload.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Fields carries per-field messages for validation failures.
	Fields map[string]string `json:"fields,omitempty"`

	// Details carries operation-specific context, e.g. the hour shortfall
	// of an infeasible trip.
	Details any `json:"details,omitempty"`
}

// ErrorResponse is the envelope for all non-2xx JSON responses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON renders v with the given status. Encoding failures are logged
// and otherwise dropped; headers are already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps a service error onto the HTTP surface: sentinel errors
// become their documented status codes, everything else is a 500 with a
// generic message (internals are never leaked to clients).
func writeError(w http.ResponseWriter, err error) {
	var fields domain.FieldErrors
	if errors.As(err, &fields) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code:    "validation_error",
			Message: "one or more fields are invalid",
			Fields:  fields,
		}})
		return
	}

	var infeasible *domain.InfeasibleTripError
	if errors.As(err, &infeasible) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code:    "trip_infeasible",
			Message: "trip exceeds available cycle hours",
			Details: map[string]float64{
				"available_hours": infeasible.AvailableHours,
				"required_hours":  infeasible.RequiredHours,
			},
		}})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not_found", err))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", err))
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("conflict", err))
	case errors.Is(err, domain.ErrUpstream):
		writeJSON(w, http.StatusBadGateway, errorBody("upstream_error", err))
	default:
		slog.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code:    "internal_error",
			Message: "internal server error",
		}})
	}
}

// requestError renders a 400 for requests rejected before reaching the
// service layer (missing or malformed body, bad path parameter).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{
		Code:    "bad_request",
		Message: message,
	}})
}

func errorBody(code string, err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: unwrapMessage(err)}}
}

// unwrapMessage strips the "service.X.Y:" call-site prefixes from a
// wrapped sentinel error, leaving the human-readable part.
// e.g. "service.TripService.UpdateStatus: planned -> completed: conflict"
// becomes "planned -> completed: conflict".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for strings.HasPrefix(msg, "service.") || strings.HasPrefix(msg, "repo.") {
		i := strings.Index(msg, ": ")
		if i < 0 {
			break
		}
		msg = msg[i+2:]
	}
	return msg
}
