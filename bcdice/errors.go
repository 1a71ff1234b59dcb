package bcdice

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidConfig indicates invalid client configuration
var ErrInvalidConfig = errors.New("invalid BCDice-API configuration")

// Code classifies a failure of a BCDice-API call.
type Code string

const (
	// CodeUnsupportedCommand means the dice command is not understood by the game system
	CodeUnsupportedCommand Code = "UNSUPPORTED_COMMAND"
	// CodeUnsupportedSystem means the game system ID is unknown to the server
	CodeUnsupportedSystem Code = "UNSUPPORTED_SYSTEM"
	// CodeUnsupportedTable means the server rejected the original table
	CodeUnsupportedTable Code = "UNSUPPORTED_TABLE"
	// CodeConnectionError means communication with the API failed
	CodeConnectionError Code = "CONNECTION_ERROR"
	// CodeIncorrectResponse means the API answered with an unexpected payload
	CodeIncorrectResponse Code = "INCORRECT_RESPONSE"
	// CodeUnknown is reported for errors that did not come from this package
	CodeUnknown Code = "UNKNOWN"
)

// Messages attached to classified errors.
const (
	msgConnection        = "Failed to communicate with API."
	msgIncorrectResponse = "The response is incorrect."
	msgIncorrectSystem   = "The game system is incorrect."
	msgUnsupportedSystem = "The specified game system is unsupported."
	msgUnsupportedCmd    = "The specified command is unsupported."
	msgUnsupportedTable  = "The specified table is unsupported."
)

// Error is the only error type returned by Client methods.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bcdice: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("bcdice: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// IsCode reports whether err is a classified error with the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the classification of err. Errors that were not produced by
// this package report CodeUnknown; a nil error reports the empty code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HTTPError is returned by a Transport when the server answers with a non-2xx status.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("bcdice API error: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, string(e.Body))
}

// IsBadRequest checks if the server answered 400 Bad Request
func (e *HTTPError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsServerError checks if the server answered 500 Internal Server Error
func (e *HTTPError) IsServerError() bool {
	return e.StatusCode == http.StatusInternalServerError
}

// DecodeError is returned by a Transport when a successful response carries a
// body that is not valid JSON.
type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Err)
}

// Unwrap returns the JSON syntax error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// asHTTPError extracts an *HTTPError with the given status from err.
func asHTTPError(err error, status int) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == status {
		return httpErr, true
	}
	return nil, false
}

// transportError classifies a transport failure that carries no
// endpoint-specific meaning. A body that is not JSON never reached the
// validators, so it counts as a failed exchange like any other.
func transportError(err error) *Error {
	return newError(CodeConnectionError, msgConnection, err)
}
