// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
	"net/url"
)

// Error kinds produced while polling the review API. Use errors.Is to classify.
var (
	ErrConnection          = errors.New("connection error")
	ErrInvalidResponseCode = errors.New("invalid response code")
	ErrType                = errors.New("type error")
	ErrKey                 = errors.New("key error")
	ErrValue               = errors.New("value error")
	ErrDelivery            = errors.New("delivery error")
)

// ConnectionError is returned when the API could not be reached at all.
type ConnectionError struct {
	Endpoint string
	Params   url.Values
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("request to %s with params %s failed: %v", e.Endpoint, e.Params.Encode(), e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// InvalidResponseCodeError is returned when the API answered with a non-200 status.
type InvalidResponseCodeError struct {
	StatusCode int
	Reason     string
	Body       string
}

func (e *InvalidResponseCodeError) Error() string {
	return fmt.Sprintf("unexpected response code %d %s: %s", e.StatusCode, e.Reason, e.Body)
}

func (e *InvalidResponseCodeError) Is(target error) bool { return target == ErrInvalidResponseCode }
