package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("Cart is empty"), http.StatusBadRequest},
		{"auth", Auth("Unauthorized"), http.StatusUnauthorized},
		{"forbidden", Forbidden("Admins only"), http.StatusForbidden},
		{"not found", NotFound("Product not found"), http.StatusNotFound},
		{"conflict", Conflict("Email already registered"), http.StatusConflict},
		{"server", Server("Failed to save sale", errors.New("disk full")), http.StatusInternalServerError},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("checkout: %w", Validation("bad")), http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusCode(tc.err); got != tc.want {
				t.Errorf("StatusCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPublicMessageHidesCause(t *testing.T) {
	err := Server("Failed to save sale", errors.New("dial tcp 10.0.0.3:3306: refused"))

	if got := PublicMessage(err); got != "Failed to save sale" {
		t.Errorf("Unexpected public message %q", got)
	}
	if got := PublicMessage(errors.New("raw driver error")); got != "Internal server error" {
		t.Errorf("Unexpected public message %q", got)
	}
	if !errors.Is(err, err.Err) {
		t.Error("Expected Server error to unwrap to its cause")
	}
}

func TestIs(t *testing.T) {
	if !Is(NotFound("x"), KindNotFound) {
		t.Error("Expected NotFound to match KindNotFound")
	}
	if Is(nil, KindServer) {
		t.Error("nil must not match any kind")
	}
}
