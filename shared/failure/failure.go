package failure

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Reason codes let clients tell booking failures apart without parsing messages.
const (
	ReasonNotFound                    = "not_found"
	ReasonValidationFailed            = "validation_failed"
	ReasonConflictDetected            = "conflict_detected"
	ReasonUnauthorized                = "unauthorized"
	ReasonInvalidTransition           = "invalid_transition"
	ReasonCancellationWindowViolation = "cancellation_window_violation"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Reason  string   `json:"reason,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// ForbiddenError is returned when the role table denies a route.
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions", Reason: ReasonUnauthorized}

// Error returns the message only; the code travels in the response status.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthenticated requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
		Reason:  ReasonNotFound,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
		Reason:  ReasonUnauthorized,
	}
}

// InvalidInput rejects a malformed request payload with one entry per violated rule.
func InvalidInput(errs []string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: strings.Join(errs, "; "),
		Reason:  ReasonValidationFailed,
		Errors:  errs,
	}
}

// ValidationFailed carries every rule violation found in a booking payload.
func ValidationFailed(errs []string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: "booking validation failed",
		Reason:  ReasonValidationFailed,
		Errors:  errs,
	}
}

// ConflictDetected reports an availability overlap. Callers get 400 so the UI can show the reason inline.
func ConflictDetected(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Reason:  ReasonConflictDetected,
	}
}

func InvalidTransition(from, to string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		Reason:  ReasonInvalidTransition,
	}
}

func CancellationWindowViolation(hours int) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("cancellation must be made at least %d hours before the booking", hours),
		Reason:  ReasonCancellationWindowViolation,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the reason code of an error interface, empty for untyped errors.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}

// GetErrors returns the itemized errors attached to a failure.
func GetErrors(err error) []string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Errors
	}

	return nil
}
