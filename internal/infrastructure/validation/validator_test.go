package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	URL string `json:"url" validate:"required,notblank"`
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	err := Validate(sample{URL: "   "})
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if errs[0].Field() != "url" {
		t.Errorf("field = %q, want %q", errs[0].Field(), "url")
	}
	if errs[0].Tag() != "notblank" {
		t.Errorf("tag = %q, want %q", errs[0].Tag(), "notblank")
	}
}

func TestValidate_Accepts(t *testing.T) {
	if err := Validate(sample{URL: "https://example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVar_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		wantErr bool
	}{
		{"below min", 59, true},
		{"at min", 60, false},
		{"at max", 3600, false},
		{"above max", 3601, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Var(tt.value, "min=60,max=3600")
			if (err != nil) != tt.wantErr {
				t.Errorf("Var(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
