// Package handlers holds the JSON response helpers shared by every HTTP handler.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Error kinds returned in the "error" field of an error body.
const (
	KindValidation      = "validation_error"
	KindNotFound        = "not_found"
	KindConflict        = "conflict"
	KindInvalidState    = "invalid_state"
	KindInternal        = "internal_error"
	KindUnauthorized    = "unauthorized"
	KindForbidden       = "forbidden"
	KindTooManyRequests = "too_many_requests"
	KindPayloadTooLarge = "payload_too_large"
)

// Machine readable reasons returned in the "reason" field.
const (
	ReasonSchedule          = "schedule"
	ReasonClosedOnDay       = "closed-on-day"
	ReasonSeatTaken         = "seat-taken"
	ReasonScheduleExists    = "schedule-exists"
	ReasonInvalidSlot       = "invalid-slot"
	ReasonInvalidSeat       = "invalid-seat"
	ReasonBooking           = "booking"
	ReasonSalon             = "salon"
	ReasonMobileTaken       = "mobile-taken"
	ReasonGracePeriodActive = "grace-period-active"
)

const msgInternalError = "внутренняя ошибка сервера"

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError writes an error body whose kind is derived from status.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondErrorWithReason(w, status, "", message)
}

// RespondErrorWithReason writes an error body with a machine reason.
func RespondErrorWithReason(w http.ResponseWriter, status int, reason, message string) {
	RespondJSON(w, status, ErrorResponse{
		Error:   kindForStatus(status),
		Reason:  reason,
		Message: message,
	})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondBadRequestWithReason(w http.ResponseWriter, reason, message string) {
	RespondErrorWithReason(w, http.StatusBadRequest, reason, message)
}

func RespondNotFound(w http.ResponseWriter, reason, message string) {
	RespondErrorWithReason(w, http.StatusNotFound, reason, message)
}

func RespondConflict(w http.ResponseWriter, reason, message string) {
	RespondErrorWithReason(w, http.StatusConflict, reason, message)
}

// RespondInvalidState reports a lifecycle violation. It shares 409 with
// conflicts but carries its own kind.
func RespondInvalidState(w http.ResponseWriter, reason, message string) {
	RespondJSON(w, http.StatusConflict, ErrorResponse{
		Error:   KindInvalidState,
		Reason:  reason,
		Message: message,
	})
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondPayloadTooLarge(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusRequestEntityTooLarge, message)
}

// RespondInternalError never exposes the underlying error.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// DecodeJSON decodes the request body into v, rejecting unknown fields and trailing data.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("тело запроса пустое")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("тело запроса пустое")
		}
		return fmt.Errorf("некорректный JSON: %w", err)
	}
	if dec.More() {
		return errors.New("тело запроса должно содержать один JSON объект")
	}

	return nil
}

// DecodeOptionalJSON is DecodeJSON for endpoints whose body may be omitted.
func DecodeOptionalJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return DecodeJSON(r, v)
}

// PathID parses a positive integer path variable.
func PathID(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("missing path variable %s", name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}

	return id, nil
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusTooManyRequests:
		return KindTooManyRequests
	case http.StatusRequestEntityTooLarge:
		return KindPayloadTooLarge
	default:
		return KindInternal
	}
}
