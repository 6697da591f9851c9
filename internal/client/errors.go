package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response decoded from the server's error
// envelope. The server message is human-readable and safe to surface.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: %s (%d %s)", e.Message, e.Status, e.Code)
}

// NetworkError wraps a transport-level failure: connection refused,
// timeout, malformed response. No server verdict was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return "client: " + e.Op + ": " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

// IsAuthorization reports whether err is a 401/403 from the server. The
// attached message replaces the normal view when rendered.
func IsAuthorization(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) &&
		(ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden)
}

// IsValidation reports whether err is a 400 validation rejection.
func IsValidation(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusBadRequest
}

// IsNetwork reports whether err is a transport failure rather than a
// server response.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// Message extracts the human-readable server message, falling back to
// the error string.
func Message(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
