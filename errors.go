package vss

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tarantool/go-vss/message"
	"github.com/tarantool/go-vss/transport"
)

var (
	// ErrEmptyBaseURL is returned by New when the base URL is empty.
	ErrEmptyBaseURL = errors.New("base URL is empty")

	// ErrNoSuchKey matches a StatusError carrying the NO_SUCH_KEY_EXCEPTION code.
	ErrNoSuchKey = errors.New("no such key")
	// ErrConflict matches a StatusError carrying the CONFLICT_EXCEPTION code.
	ErrConflict = errors.New("version conflict")
	// ErrInvalidRequest matches a StatusError carrying the INVALID_REQUEST_EXCEPTION code.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized matches a StatusError carrying the AUTH_EXCEPTION code.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInternalServer matches a StatusError carrying the INTERNAL_SERVER_EXCEPTION code.
	ErrInternalServer = errors.New("internal server error")
)

// AuthError is returned when the header provider fails to build headers.
type AuthError struct {
	parent error
}

func errAuth(parent error) error {
	return AuthError{parent: parent}
}

func (e AuthError) Error() string {
	return fmt.Sprintf("failed to build request headers: %s", e.parent)
}

func (e AuthError) Unwrap() error {
	return e.parent
}

// TransportError is returned when the request did not produce a response.
type TransportError struct {
	parent error
}

func errTransport(parent error) error {
	return TransportError{parent: parent}
}

func (e TransportError) Error() string {
	return fmt.Sprintf("transport failure: %s", e.parent)
}

func (e TransportError) Unwrap() error {
	return e.parent
}

// StatusError is returned when the server answers with a non-2xx status.
// Payload is the raw response body; Code and Message are filled when the
// body decodes as an error response.
type StatusError struct {
	StatusCode int
	Payload    []byte
	Code       message.ErrorCode
	Message    string
}

func errStatus(statusCode int, payload []byte) error {
	statusErr := StatusError{
		StatusCode: statusCode,
		Payload:    payload,
		Code:       message.ErrorCodeUnknown,
		Message:    "",
	}

	var resp message.ErrorResponse
	if err := resp.Unmarshal(payload); err == nil {
		statusErr.Code = resp.ErrorCode
		statusErr.Message = resp.Message
	}

	return statusErr
}

func (e StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d (%d bytes of payload)", e.StatusCode, len(e.Payload))
	}

	return fmt.Sprintf("unexpected status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is maps the decoded error code to the package sentinels.
func (e StatusError) Is(target error) bool {
	switch e.Code {
	case message.ErrorCodeNoSuchKey:
		return target == ErrNoSuchKey
	case message.ErrorCodeConflict:
		return target == ErrConflict
	case message.ErrorCodeInvalidRequest:
		return target == ErrInvalidRequest
	case message.ErrorCodeAuth:
		return target == ErrUnauthorized
	case message.ErrorCodeInternalServer:
		return target == ErrInternalServer
	default:
		return false
	}
}

// Retryable reports whether the status is worth another attempt:
// request timeout, throttling and server-side failures.
func (e StatusError) Retryable() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusTooManyRequests:
		return true
	default:
		return e.StatusCode >= http.StatusInternalServerError
	}
}

// DecodeError is returned when a 2xx response body cannot be decoded.
// It is never retried.
type DecodeError struct {
	parent error
}

func errDecode(parent error) error {
	return DecodeError{parent: parent}
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %s", e.parent)
}

func (e DecodeError) Unwrap() error {
	return e.parent
}

// Terminal implements retry.Terminal interface.
func (DecodeError) Terminal() bool {
	return true
}

// ProtocolViolationError is returned when a decoded response breaks the
// protocol, e.g. a successful get without a value. It is never retried.
type ProtocolViolationError struct {
	text string
}

func errProtocolViolation(text string) error {
	return ProtocolViolationError{text: text}
}

func (e ProtocolViolationError) Error() string {
	return "protocol violation: " + e.text
}

// Terminal implements retry.Terminal interface.
func (ProtocolViolationError) Terminal() bool {
	return true
}

// IsRetryable is the default error classification: transport failures
// (except cancellation) and retryable statuses are worth another attempt.
func IsRetryable(err error) bool {
	var (
		transportErr TransportError
		statusErr    StatusError
	)

	switch {
	case errors.As(err, &transportErr):
		return !errors.Is(err, context.Canceled) && !errors.Is(err, transport.ErrResponseTooLarge)
	case errors.As(err, &statusErr):
		return statusErr.Retryable()
	default:
		return false
	}
}
