package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
)

func abortStatus(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	return abortWith(t, err, AbortWithError)
}

func abortWith(t *testing.T, err error, abort func(*gin.Context, error)) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	abort(c, err)

	var body struct {
		Error map[string]any `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return w.Code, body.Error
}

func TestAbortWithErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{invoicedomain.ErrNotFound, http.StatusNotFound, "invoice_not_found"},
		{invoicedomain.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
		{invoicedomain.ErrProfileNotFound, http.StatusConflict, "sender_profile_not_found"},
		{invoicedomain.ErrClientNotFound, http.StatusConflict, "client_not_found"},
		{invoicedomain.ErrPreviewUnavailable, http.StatusServiceUnavailable, "preview_unavailable"},
		{ErrTooManyRequests, http.StatusTooManyRequests, "too_many_requests"},
	}

	for _, tc := range cases {
		status, payload := abortStatus(t, tc.err)
		if status != tc.status {
			t.Fatalf("%v: status = %d, want %d", tc.err, status, tc.status)
		}
		if payload["code"] != tc.code {
			t.Fatalf("%v: code = %v, want %q", tc.err, payload["code"], tc.code)
		}
	}
}

func TestExportMissingPartiesAreNotFound(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{invoicedomain.ErrProfileNotFound, "sender_profile_not_found"},
		{invoicedomain.ErrClientNotFound, "client_not_found"},
	}
	for _, tc := range cases {
		status, payload := abortWith(t, tc.err, abortExportError)
		if status != http.StatusNotFound {
			t.Fatalf("%v: status = %d, want 404", tc.err, status)
		}
		if payload["code"] != tc.code {
			t.Fatalf("%v: code = %v, want %q", tc.err, payload["code"], tc.code)
		}
	}

	// Everything else keeps the shared mapping.
	if status, _ := abortWith(t, invoicedomain.ErrNotFound, abortExportError); status != http.StatusNotFound {
		t.Fatalf("invoice not found: status = %d, want 404", status)
	}
	if status, _ := abortWith(t, ErrTooManyRequests, abortExportError); status != http.StatusTooManyRequests {
		t.Fatalf("rate limit: status = %d, want 429", status)
	}
}

func TestAbortWithErrorValidation(t *testing.T) {
	status, payload := abortStatus(t, newValidationError("tax", "invalid_tax", "tax must be non-negative"))
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if payload["field"] != "tax" {
		t.Fatalf("field = %v, want tax", payload["field"])
	}
}

func TestAbortWithErrorHidesInternals(t *testing.T) {
	status, payload := abortStatus(t, errors.New("pq: connection refused"))
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if payload["code"] != "internal_error" {
		t.Fatalf("code = %v, want internal_error", payload["code"])
	}
	if payload["message"] == "pq: connection refused" {
		t.Fatalf("internal detail leaked to response")
	}
}
