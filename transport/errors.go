package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction marks a Client that could not be
	// built: malformed token or unusable base URL.
	ErrConstruction = errors.New("invalid github client configuration")

	// ErrTransport marks a network-level failure while
	// sending a request.
	ErrTransport = errors.New("github request failed")

	// ErrDecode marks a response body that is not valid
	// JSON where JSON was expected.
	ErrDecode = errors.New("invalid json in github response")
)

// APIError is a non-2xx response carrying a readable
// provider message at errors[0].message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// MalformedErrorBodyError is a non-2xx response whose
// body has no errors[0].message. Body holds the decoded
// body re-encoded as compact JSON.
type MalformedErrorBodyError struct {
	StatusCode int
	Body       string
}

func (e *MalformedErrorBodyError) Error() string {
	return "could not read github error message. " +
		"Response body " + e.Body
}

// StatusError is a non-2xx response from an endpoint
// that returns no body.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(
		"github responded with status %s", e.Status,
	)
}
