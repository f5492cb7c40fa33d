package google

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
)

// The client library reports API statuses as "maps: <STATUS> - <message>".
var statusCodes = map[string]int{
	"REQUEST_DENIED":   http.StatusForbidden,
	"INVALID_REQUEST":  http.StatusBadRequest,
	"OVER_QUERY_LIMIT": http.StatusTooManyRequests,
	"NOT_FOUND":        http.StatusNotFound,
	"UNKNOWN_ERROR":    http.StatusInternalServerError,
}

func isStatus(err error, status string) bool {
	return err != nil && strings.Contains(err.Error(), status)
}

func isZeroResults(err error) bool {
	return isStatus(err, "ZERO_RESULTS")
}

// wrapError turns a client library error into an APIError with an
// approximate HTTP status so callers can use errors.Is on it.
func wrapError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(ProviderName+" "+operation, "", err.Error())
	}
	for status, code := range statusCodes {
		if isStatus(err, status) {
			return &errors.APIError{
				Provider:   ProviderName,
				StatusCode: code,
				Endpoint:   operation,
				Message:    err.Error(),
				Err:        err,
			}
		}
	}
	return &errors.APIError{
		Provider: ProviderName,
		Endpoint: operation,
		Message:  err.Error(),
		Err:      err,
	}
}
