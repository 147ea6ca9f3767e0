// AngelaMos | 2026
// errors.go

package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrUnavailable   = errors.New("service unavailable")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrExhausted     = errors.New("limit exhausted")
	ErrInternalError = errors.New("internal error")
)

// Kind buckets an error into the taxonomy clients act on.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindServer       Kind = "server"
	KindTimeout      Kind = "timeout"
	KindRateLimited  Kind = "rate_limited"
	KindUnknown      Kind = "unknown"
)

func (k Kind) Status() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) Retryable() bool {
	return k == KindNetwork || k == KindTimeout || k == KindServer
}

type AppError struct {
	Err        error               `json:"-"`
	Kind       Kind                `json:"kind"`
	Message    string              `json:"message"`
	StatusCode int                 `json:"-"`
	Code       string              `json:"code"`
	Fields     map[string][]string `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:        err,
		Kind:       Classify(err),
		Message:    message,
		StatusCode: status,
		Code:       code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Classify maps an error chain onto a Kind using typed checks only.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != "" && appErr.Kind != KindUnknown {
		return appErr.Kind
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrDuplicateKey),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrExhausted):
		return KindConflict
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrTokenInvalid):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrInternalError):
		return KindServer
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPgCode(pgErr.Code)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return KindNetwork
	}

	return KindUnknown
}

// IsRetryable reports whether retrying the same call may succeed.
func IsRetryable(err error) bool {
	return Classify(err).Retryable()
}

func classifyPgCode(code string) Kind {
	switch {
	case code == "23505", code == "23503", code == "40001":
		return KindConflict
	case code == "22P02":
		// ids are uuid columns; text that does not parse matches no row
		return KindNotFound
	case code == "23502", code == "23514":
		return KindValidation
	case code == "57014":
		return KindTimeout
	case len(code) >= 2 && code[:2] == "08":
		return KindNetwork
	default:
		return KindServer
	}
}

func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func isDriverError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}

// IsDuplicateKeyError reports a postgres unique violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// IsForeignKeyError reports a postgres foreign key violation.
func IsForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return &AppError{
		Err:        ErrUnauthorized,
		Kind:       KindUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Code:       "UNAUTHORIZED",
	}
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return &AppError{
		Err:        ErrForbidden,
		Kind:       KindForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
		Code:       "FORBIDDEN",
	}
}

func NotFoundError(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Kind:       KindNotFound,
		Message:    resource + " not found",
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
	}
}

func ValidationError(message string, fields map[string][]string) *AppError {
	return &AppError{
		Err:        ErrInvalidInput,
		Kind:       KindValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Fields:     fields,
	}
}

func ConflictError(message string) *AppError {
	return &AppError{
		Err:        ErrConflict,
		Kind:       KindConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
		Code:       "CONFLICT",
	}
}

func DuplicateError(field string) *AppError {
	return &AppError{
		Err:        ErrDuplicateKey,
		Kind:       KindConflict,
		Message:    field + " already exists",
		StatusCode: http.StatusConflict,
		Code:       "DUPLICATE",
	}
}

func TokenExpiredError() *AppError {
	return &AppError{
		Err:        ErrTokenExpired,
		Kind:       KindUnauthorized,
		Message:    "token has expired",
		StatusCode: http.StatusUnauthorized,
		Code:       "TOKEN_EXPIRED",
	}
}

func TokenRevokedError() *AppError {
	return &AppError{
		Err:        ErrTokenRevoked,
		Kind:       KindUnauthorized,
		Message:    "token has been revoked",
		StatusCode: http.StatusUnauthorized,
		Code:       "TOKEN_REVOKED",
	}
}

func TokenInvalidError() *AppError {
	return &AppError{
		Err:        ErrTokenInvalid,
		Kind:       KindUnauthorized,
		Message:    "token is invalid",
		StatusCode: http.StatusUnauthorized,
		Code:       "TOKEN_INVALID",
	}
}

func InternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Kind:       KindServer,
		Message:    "internal server error",
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
	}
}

// FromError converts any error into an AppError using its classified kind.
func FromError(err error, resource string) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	kind := Classify(err)
	switch kind {
	case KindNotFound:
		return NotFoundError(resource)
	case KindValidation:
		return ValidationError("invalid "+resource, nil)
	case KindConflict:
		if errors.Is(err, ErrDuplicateKey) {
			return DuplicateError(resource)
		}
		if isDriverError(err) {
			return ConflictError(resource + " conflicts with existing data")
		}
		return ConflictError(err.Error())
	case KindUnauthorized:
		return UnauthorizedError("")
	case KindForbidden:
		return ForbiddenError("")
	case KindTimeout:
		return &AppError{
			Err:        err,
			Kind:       KindTimeout,
			Message:    "upstream timed out",
			StatusCode: http.StatusGatewayTimeout,
			Code:       "TIMEOUT",
		}
	case KindNetwork:
		return &AppError{
			Err:        err,
			Kind:       KindNetwork,
			Message:    "upstream unreachable",
			StatusCode: http.StatusBadGateway,
			Code:       "NETWORK_ERROR",
		}
	default:
		return InternalError(err)
	}
}
