// Package response provides the JSON envelope used by every API endpoint.
// Successful responses carry a data field, failures an error field.
package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
)

// Response is the API envelope.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is an API error with code, message and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes resp with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent, encoding errors cannot be reported
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail("BAD_REQUEST", message, details))
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusUnauthorized, Fail("UNAUTHORIZED", message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter, message string) {
	JSON(w, http.StatusTooManyRequests, Fail("RATE_LIMITED", "Rate limit exceeded", message))
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// NotImplemented writes a 501 error response.
func NotImplemented(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotImplemented, Fail("NOT_IMPLEMENTED", message, ""))
}

// BadGateway writes a 502 error response for upstream provider failures.
func BadGateway(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadGateway, Fail("UPSTREAM_ERROR", message, details))
}

// GatewayTimeout writes a 504 error response.
func GatewayTimeout(w http.ResponseWriter, message string) {
	JSON(w, http.StatusGatewayTimeout, Fail("UPSTREAM_TIMEOUT", message, ""))
}

// ErrorFromType maps typed errors to HTTP responses.
func ErrorFromType(w http.ResponseWriter, err error) {
	var (
		validation  *errors.ValidationError
		unsupported *errors.UnsupportedProviderError
		collection  *errors.CollectionError
		apiErr      *errors.APIError
		parseErr    *errors.ParseError
	)

	switch {
	case stderrors.As(err, &validation), stderrors.As(err, &unsupported):
		BadRequest(w, err.Error(), "")
	case errors.IsNotFound(err):
		NotFound(w, err.Error(), "")
	case errors.IsNotImplemented(err):
		NotImplemented(w, err.Error())
	case errors.IsTimeout(err):
		GatewayTimeout(w, err.Error())
	case stderrors.As(err, &collection):
		BadGateway(w, "Collection failed", err.Error())
	case stderrors.As(err, &apiErr), stderrors.As(err, &parseErr):
		BadGateway(w, "Upstream provider error", err.Error())
	default:
		InternalError(w, err)
	}
}
