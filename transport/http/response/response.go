package response

import (
	"encoding/json"
	"net/http"

	"bazaar/shared/constant"
	"bazaar/shared/failure"
	"bazaar/shared/logger"
)

// Data wraps every successful payload.
type Data[T any] struct {
	Data T `json:"data"`
}

// Error carries the reason code and itemized validation errors next to the message.
type Error struct {
	Error  string   `json:"error"`
	Reason string   `json:"reason,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// WithJSON sends payload inside a data envelope.
func WithJSON[T any](writer http.ResponseWriter, code int, payload T) {
	write(writer, code, Data[T]{Data: payload})
}

// WithError maps err to its status code. Untyped errors never leak their text.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	msg := err.Error()
	if code >= http.StatusInternalServerError {
		msg = http.StatusText(http.StatusInternalServerError)
	}

	write(writer, code, Error{
		Error:  msg,
		Reason: failure.GetReason(err),
		Errors: failure.GetErrors(err),
	})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	write(writer, http.StatusTooManyRequests, Error{Error: constant.ResponseErrorRequestLimitExceeded})
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	write(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorPrepareShutdown})
}

func WithUnhealthy(writer http.ResponseWriter) {
	write(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorUnhealthy})
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
