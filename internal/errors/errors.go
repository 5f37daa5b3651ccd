// Package errors provides the error taxonomy shared by the gateway and the
// resource wrappers. Every failure surfaced to a caller is an *AppError with a
// Kind, so callers can branch on the failure class without string matching.
package errors

import "errors"

// Kind classifies a client-side failure.
type Kind string

const (
	// KindNetworkUnavailable means no response was received from any backend
	// endpoint candidate (connection refused, timeout, DNS failure).
	KindNetworkUnavailable Kind = "NETWORK_UNAVAILABLE"

	// KindAuthExpired means a protected request was rejected with 401 and a
	// token refresh is (or was) in order.
	KindAuthExpired Kind = "AUTH_EXPIRED"

	// KindAuthRejected means the refresh itself failed or no token was
	// available to refresh. Always accompanied by a forced logout.
	KindAuthRejected Kind = "AUTH_REJECTED"

	// KindValidationRejected means the backend rejected the request with a
	// 4xx and a structured message.
	KindValidationRejected Kind = "VALIDATION_REJECTED"

	// KindServerFault means the backend answered with a 5xx.
	KindServerFault Kind = "SERVER_FAULT"

	// KindConfigurationInvalid means local input or configuration was rejected
	// before any request was issued.
	KindConfigurationInvalid Kind = "CONFIGURATION_INVALID"
)

// AppError is a structured client error carrying a kind, a human-readable
// message, the HTTP status that produced it (0 when none), and an optional
// wrapped internal error.
type AppError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same kind/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithStatus creates a new AppError with a custom message and HTTP status.
func WithStatus(sentinel *AppError, message string, status int) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Message:    message,
		StatusCode: status,
		Internal:   sentinel.Internal,
	}
}

// KindOf returns the kind of err when it is (or wraps) an *AppError, and ""
// otherwise.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Gateway errors.
var (
	ErrBackendUnreachable = &AppError{Kind: KindNetworkUnavailable, Message: "Backend services are currently unavailable"}
	ErrSessionExpired     = &AppError{Kind: KindAuthExpired, Message: "Your session has expired. Please login again", StatusCode: 401}
	ErrAuthRejected       = &AppError{Kind: KindAuthRejected, Message: "Authentication failed", StatusCode: 401}
	ErrServerFault        = &AppError{Kind: KindServerFault, Message: "The server encountered an error", StatusCode: 500}
	ErrValidation         = &AppError{Kind: KindValidationRejected, Message: "The request was rejected", StatusCode: 400}
)

// Local configuration errors.
var (
	ErrInvalidTotal     = &AppError{Kind: KindConfigurationInvalid, Message: "Total budget amount must be a positive number"}
	ErrEmptyPlanName    = &AppError{Kind: KindConfigurationInvalid, Message: "Budget plan name must not be empty"}
	ErrNoCategories     = &AppError{Kind: KindConfigurationInvalid, Message: "At least one budget category must be enabled"}
	ErrInvalidDateRange = &AppError{Kind: KindConfigurationInvalid, Message: "End date cannot be before start date"}
	ErrInvalidInput     = &AppError{Kind: KindConfigurationInvalid, Message: "Invalid input"}
)
