package client

import (
	"errors"
	"fmt"
)

// ErrorClass classifies request failures for metrics and retry policy.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx responses. Never retried.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx responses.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents connection and timeout failures.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents a 2xx response whose body did not
	// decode as the expected JSON shape.
	ErrorClassDecode ErrorClass = "decode"
)

// StatusError is a non-2xx response from the API. Body carries the raw
// response text the API returned alongside the status.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

// Class returns the error class for the status code.
func (e *StatusError) Class() ErrorClass {
	if e.StatusCode >= 500 {
		return ErrorClassServer
	}
	return ErrorClassClient
}

// TransportError is a network-level failure: the request never produced
// an HTTP response, or the response body could not be read.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("http request: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is a syntactically valid HTTP response whose JSON body
// did not match the expected shape.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Classify returns the error class of a request failure.
func Classify(err error) ErrorClass {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Class()
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return ErrorClassDecode
	}
	return ErrorClassNetwork
}

// shouldRetry reports whether a failed request is worth re-issuing.
// Client errors are deterministic rejections and decode failures repeat
// on every attempt; only server and network failures are transient.
func shouldRetry(class ErrorClass) bool {
	switch class {
	case ErrorClassServer, ErrorClassNetwork:
		return true
	default:
		return false
	}
}
