package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindRateLimit
	KindConfiguration
	KindProvider
	KindPersistence
	KindCrypto
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindRateLimit:
		return "RATE_LIMIT"
	case KindConfiguration:
		return "CONFIGURATION"
	case KindProvider:
		return "PROVIDER"
	case KindPersistence:
		return "PERSISTENCE"
	case KindCrypto:
		return "CRYPTO"
	}
	return "UNKNOWN"
}

// User-facing messages. Provider bodies and causes are never shown.
const (
	MsgInvalidFormat = "Invalid message format"
	MsgRateLimited   = "Too many requests. Please wait a moment before trying again."
	MsgDisabled      = "AI chatbot is currently disabled"
	MsgUnconfigured  = "AI provider is not configured"
	MsgProvider      = "Failed to get AI response"
)

// Error carries a kind, the visitor-safe message and the internal cause
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on kind so errors.Is(err, apperror.RateLimit()) works
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// HTTPStatus maps the error to the status code returned to the caller
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindConfiguration, KindCrypto:
		return http.StatusServiceUnavailable
	case KindProvider:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func Validation(cause error) *Error {
	return New(KindValidation, MsgInvalidFormat, cause)
}

func RateLimit(cause error) *Error {
	return New(KindRateLimit, MsgRateLimited, cause)
}

func Disabled(cause error) *Error {
	return New(KindConfiguration, MsgDisabled, cause)
}

func Unconfigured(cause error) *Error {
	return New(KindConfiguration, MsgUnconfigured, cause)
}

func Provider(cause error) *Error {
	return New(KindProvider, MsgProvider, cause)
}

func Persistence(cause error) *Error {
	return New(KindPersistence, "Failed to save conversation", cause)
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
