package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	camderrors "github.com/cheapamd/camd/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"invalid request", camderrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{"auth", camderrors.ErrCodeAuth, http.StatusUnauthorized},
		{"method not allowed", camderrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limit", camderrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"network", camderrors.ErrCodeNetwork, http.StatusBadGateway},
		{"parse", camderrors.ErrCodeParse, http.StatusBadGateway},
		{"all providers failed", camderrors.ErrCodeAllProvidersFailed, http.StatusBadGateway},
		{"internal", camderrors.ErrCodeInternal, http.StatusInternalServerError},
		{"unknown defaults to internal", "SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Fatalf("HTTPStatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"invalid request", camderrors.ErrCodeInvalidRequest, false},
		{"auth", camderrors.ErrCodeAuth, false},
		{"method not allowed", camderrors.ErrCodeMethodNotAllowed, false},
		{"rate limit", camderrors.ErrCodeRateLimitExceeded, true},
		{"network", camderrors.ErrCodeNetwork, true},
		{"all providers failed", camderrors.ErrCodeAllProvidersFailed, true},
		{"internal", camderrors.ErrCodeInternal, true},
		{"unknown defaults false", "SOMETHING_ELSE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryableFromCode(tt.code); got != tt.want {
				t.Fatalf("retryableFromCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/offerings", nil)

	WriteErrorFromCode(rec, req, camderrors.ErrCodeInvalidRequest, "bad class",
		map[string]any{"class": "tpu"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if resp.Code != camderrors.ErrCodeInvalidRequest {
		t.Errorf("code = %q, want %q", resp.Code, camderrors.ErrCodeInvalidRequest)
	}
	if resp.Message != "bad class" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.RequestID == "" {
		t.Error("expected a minted request ID")
	}
	if resp.Retryable {
		t.Error("invalid request must not be retryable")
	}
	if resp.Details["class"] != "tpu" {
		t.Errorf("details = %v", resp.Details)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}
