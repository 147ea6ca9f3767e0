// AngelaMos | 2026
// errors_test.go

package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

type refusedErr struct{}

func (refusedErr) Error() string   { return "connection refused" }
func (refusedErr) Timeout() bool   { return false }
func (refusedErr) Temporary() bool { return false }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"wrapped not found", fmt.Errorf("get booking: %w", ErrNotFound), KindNotFound},
		{"invalid input", ErrInvalidInput, KindValidation},
		{"duplicate", fmt.Errorf("insert: %w", ErrDuplicateKey), KindConflict},
		{"exhausted", ErrExhausted, KindConflict},
		{"token expired", ErrTokenExpired, KindUnauthorized},
		{"forbidden", ErrForbidden, KindForbidden},
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"unavailable", ErrUnavailable, KindServer},
		{"net timeout", timeoutErr{}, KindTimeout},
		{"net refused", fmt.Errorf("dial: %w", refusedErr{}), KindNetwork},
		{"pg unique", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"pg check", &pgconn.PgError{Code: "23514"}, KindValidation},
		{"pg malformed id", &pgconn.PgError{Code: "22P02"}, KindNotFound},
		{"pg canceled", &pgconn.PgError{Code: "57014"}, KindTimeout},
		{"pg connection", &pgconn.PgError{Code: "08006"}, KindNetwork},
		{"pg other", &pgconn.PgError{Code: "42P01"}, KindServer},
		{"app error kind wins", ValidationError("bad", nil), KindValidation},
		{"plain error", errors.New("something odd"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindStatusAndRetryable(t *testing.T) {
	tests := []struct {
		kind      Kind
		status    int
		retryable bool
	}{
		{KindNetwork, http.StatusBadGateway, true},
		{KindTimeout, http.StatusGatewayTimeout, true},
		{KindServer, http.StatusInternalServerError, true},
		{KindValidation, http.StatusBadRequest, false},
		{KindNotFound, http.StatusNotFound, false},
		{KindConflict, http.StatusConflict, false},
		{KindUnauthorized, http.StatusUnauthorized, false},
		{KindForbidden, http.StatusForbidden, false},
		{KindUnknown, http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Status(); got != tt.status {
				t.Errorf("Status() = %d, want %d", got, tt.status)
			}
			if got := tt.kind.Retryable(); got != tt.retryable {
				t.Errorf("Retryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("x: %w", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate", ErrDuplicateKey, http.StatusConflict, "DUPLICATE"},
		{"conflict", ErrConflict, http.StatusConflict, "CONFLICT"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "TIMEOUT"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromError(tt.err, "booking")
			if appErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", appErr.StatusCode, tt.status)
			}
			if appErr.Code != tt.code {
				t.Errorf("code = %q, want %q", appErr.Code, tt.code)
			}
		})
	}
}

func TestFromErrorHidesDriverText(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			"malformed id",
			fmt.Errorf("get booking: %w", &pgconn.PgError{
				Code:    "22P02",
				Message: `invalid input syntax for type uuid: "does-not-exist"`,
			}),
			http.StatusNotFound,
			"booking not found",
		},
		{
			"check violation",
			fmt.Errorf("insert booking: %w", &pgconn.PgError{
				Code:    "23514",
				Message: `new row violates check constraint "bookings_guests_check"`,
			}),
			http.StatusBadRequest,
			"invalid booking",
		},
		{
			"serialization failure",
			fmt.Errorf("update booking: %w", &pgconn.PgError{
				Code:    "40001",
				Message: "could not serialize access",
			}),
			http.StatusConflict,
			"booking conflicts with existing data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromError(tt.err, "booking")
			if appErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", appErr.StatusCode, tt.status)
			}
			if appErr.Message != tt.message {
				t.Errorf("message = %q, want %q", appErr.Message, tt.message)
			}
		})
	}
}

func TestClassifyWriteMapsMalformedID(t *testing.T) {
	err := classifyWrite(&pgconn.PgError{Code: "22P02"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFromErrorKeepsAppError(t *testing.T) {
	orig := ConflictError("event is sold out")
	wrapped := fmt.Errorf("reserve: %w", orig)

	got := FromError(wrapped, "event")
	if got != orig {
		t.Errorf("expected original AppError to be returned")
	}
	if !errors.Is(got, ErrConflict) {
		t.Errorf("expected AppError to unwrap to ErrConflict")
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	if !IsDuplicateKeyError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})) {
		t.Error("expected unique violation to be detected")
	}
	if IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation is not a duplicate")
	}
	if !IsForeignKeyError(&pgconn.PgError{Code: "23503"}) {
		t.Error("expected foreign key violation to be detected")
	}
}
