package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTransport matches any failure where no response was received from the backend.
var ErrTransport = errors.New("backend unreachable")

// APIError is a server-reported failure: a response with an error status and,
// usually, a JSON body of the form {"message": "..."}.
type APIError struct {
	StatusCode int
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend %s: status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("backend %s: status %d: %s", e.Path, e.StatusCode, e.Message)
}

// TransportError wraps a failure to reach the backend at all.
type TransportError struct {
	Op   string
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrTransport) match every transport failure.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ErrDecode matches a 2xx response whose body could not be decoded.
var ErrDecode = errors.New("backend response not decodable")

// DecodeError is a successful status with a body that is not the expected
// JSON. The request itself succeeded.
type DecodeError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response (status %d): %v", e.Path, e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match every decode failure.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Message returns the server-provided message carried by err, if any.
func Message(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message, true
	}
	return "", false
}

// MessageOr returns the server-provided message carried by err, or fallback.
func MessageOr(err error, fallback string) string {
	if msg, ok := Message(err); ok {
		return msg
	}
	return fallback
}

// IsUnauthorized reports whether the backend rejected the ambient credential.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}
