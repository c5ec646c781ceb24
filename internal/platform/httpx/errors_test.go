package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codenamekii/Jobless/internal/shared"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{shared.ErrDuplicateAccount, http.StatusConflict},
		{shared.ErrInvalidCredentials, http.StatusUnauthorized},
		{shared.ErrAccountDeactivated, http.StatusUnauthorized},
		{shared.ErrInvalidToken, http.StatusUnauthorized},
		{shared.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{shared.ErrNotFound, http.StatusNotFound},
		{shared.ErrUserNotFound, http.StatusNotFound},
		{shared.ErrValidation, http.StatusBadRequest},
		{errors.New("pg: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.err); got != tc.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}

	// Wrapped errors keep their mapping.
	wrapped := fmt.Errorf("auth: lookup user: %w", shared.ErrUserNotFound)
	if got := StatusFor(wrapped); got != http.StatusNotFound {
		t.Errorf("StatusFor(wrapped) = %d, want 404", got)
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	res := httptest.NewRecorder()
	RespondError(res, errors.New("pq: relation users does not exist"))

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	var env Envelope
	if err := json.Unmarshal(res.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Success {
		t.Error("expected success=false")
	}
	if env.Error != "Internal server error" {
		t.Errorf("leaked internal detail: %q", env.Error)
	}
}

func TestIsUnexpected(t *testing.T) {
	if IsUnexpected(shared.ErrNotFound) {
		t.Error("domain error flagged as unexpected")
	}
	if !IsUnexpected(errors.New("disk full")) {
		t.Error("infrastructure error not flagged")
	}
}
