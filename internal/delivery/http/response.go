package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Timicreates/dev-events/internal/domain"
	"github.com/Timicreates/dev-events/internal/normalize"
)

// Error codes for API error responses.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess writes statusCode and an APIResponse carrying data.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError writes statusCode and an APIResponse carrying the error.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// WriteDomainError maps a domain error to its HTTP status and error code.
// Validation and unparseable date/time failures are 400 with the message
// naming the offending field; slug conflicts are 409; dangling booking
// references and missing records are 404; anything else is 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	var (
		verr *domain.ValidationError
		derr *normalize.InvalidDateError
		terr *normalize.InvalidTimeError
		rerr *domain.ReferentialIntegrityError
		uerr *domain.UniquenessConflictError
	)
	switch {
	case errors.As(err, &verr):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, verr.Error())
	case errors.As(err, &derr):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "date: "+derr.Error())
	case errors.As(err, &terr):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "time: "+terr.Error())
	case errors.As(err, &rerr):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, rerr.Error())
	case errors.As(err, &uerr):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, uerr.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	default:
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
	}
}

// Validator is implemented by request DTOs that support validation.
// Validate returns error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest (rejecting unknown
// fields) and, if dest implements Validator, runs Validate(). On failure
// it writes a 400 JSON error and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
