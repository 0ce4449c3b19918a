package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	camderrors "github.com/cheapamd/camd/pkg/errors"
	"github.com/cheapamd/camd/pkg/serializer"
)

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// HTTPStatusFromCode maps an error code to an HTTP status code.
func HTTPStatusFromCode(code string) int {
	switch code {
	case camderrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case camderrors.ErrCodeAuth:
		return http.StatusUnauthorized
	case camderrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case camderrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case camderrors.ErrCodeNetwork, camderrors.ErrCodeParse, camderrors.ErrCodeAllProvidersFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code string) bool {
	switch code {
	case camderrors.ErrCodeRateLimitExceeded,
		camderrors.ErrCodeNetwork,
		camderrors.ErrCodeAllProvidersFailed,
		camderrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// WriteError writes the standard error envelope with the request ID
// carried by the request context, minting one if the middleware did not
// run for this route.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromCode derives status and retryability from the code.
func WriteErrorFromCode(w http.ResponseWriter, r *http.Request, code, message string, details map[string]any) {
	WriteError(w, r, HTTPStatusFromCode(code), code, message, retryableFromCode(code), details)
}
