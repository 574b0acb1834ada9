package constants

import (
	"net/http"
	"testing"
)

func TestWithMessage(t *testing.T) {
	got := ErrInvalidURL.WithMessage("Only http and https URLs are allowed")

	if got.Code != CodeInvalidURL || got.Status != http.StatusBadRequest {
		t.Errorf("code/status changed: %+v", got)
	}
	if got.Message != "Only http and https URLs are allowed" {
		t.Errorf("message = %q", got.Message)
	}
	if ErrInvalidURL.Message != "" {
		t.Error("WithMessage mutated the original")
	}
}

func TestUnknownAndRevokedKeysShareMessage(t *testing.T) {
	if ErrInvalidAPIKey.Message != "Invalid API key" {
		t.Errorf("message = %q", ErrInvalidAPIKey.Message)
	}
	for _, e := range []APIError{ErrMissingAuthorization, ErrMalformedAPIKey, ErrInvalidAPIKey} {
		if e.Status != http.StatusUnauthorized {
			t.Errorf("%s: status %d, want 401", e.Message, e.Status)
		}
	}
}
