package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"unique", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"foreign key", &pgconn.PgError{Code: "23503"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUUIDRoundTrip(t *testing.T) {
	const id = "6f1c2d3e-4b5a-4c6d-8e7f-0123456789ab"
	v, err := toUUID(" " + id + " ")
	if err != nil {
		t.Fatal(err)
	}
	if got := uuidValue(v); got != id {
		t.Errorf("got %q, want %q", got, id)
	}
	if _, err := toUUID("nope"); err == nil {
		t.Error("expected error for invalid uuid")
	}
}

func TestNullableHelpers(t *testing.T) {
	if toNullableText("  ").Valid {
		t.Error("blank text should be NULL")
	}
	if got := nullableTextValue(toNullableText(" note ")); got != "note" {
		t.Errorf("got %q", got)
	}
	if toNullableTimestamptz(nil).Valid {
		t.Error("nil time should be NULL")
	}
	if nullableTimeValue(toNullableTimestamptz(nil)) != nil {
		t.Error("NULL timestamptz should map to nil")
	}

	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	got := nullableTimeValue(toNullableTimestamptz(&at))
	if got == nil || !got.Equal(at) || got.Location() != time.UTC {
		t.Errorf("got %v", got)
	}
}
