package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound marks a backend 404. Callers listing records treat it as empty.
var ErrNotFound = errors.New("not found")

// ServerError is a non-2xx backend reply. Message carries the backend's
// {"error"} or {"message"} text when one was sent.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %d", e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Is makes a 404 ServerError match ErrNotFound.
func (e *ServerError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// NetworkError is a request that never produced a response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ServerMessage returns the backend's message when err is a ServerError
// that carried one.
func ServerMessage(err error) (string, bool) {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message, true
	}
	return "", false
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
