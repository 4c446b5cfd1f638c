package oxylabs

import (
	"errors"
	"fmt"
)

// ConfigurationError is returned by New when credentials, the endpoint, or
// default parameters are missing or invalid.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("oxylabs configuration error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("oxylabs configuration error: %s", e.Message)
}

// InvalidArgumentError is returned before any request is made when a call
// argument is unusable, e.g. an empty query.
type InvalidArgumentError struct {
	Argument string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Argument, e.Message)
}

// TransportErrorKind classifies a TransportError.
type TransportErrorKind string

const (
	TransportTimeout    TransportErrorKind = "timeout"
	TransportConnection TransportErrorKind = "connection"
	TransportStatus     TransportErrorKind = "status"
)

// TransportError is returned when the provider could not be reached, the
// request timed out, or the provider answered with a non-2xx status.
type TransportError struct {
	Kind TransportErrorKind
	// StatusCode is set when Kind is TransportStatus.
	StatusCode int
	// Body holds the start of the response body for status errors.
	Body string
	Err  error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case TransportStatus:
		if e.Body != "" {
			return fmt.Sprintf("oxylabs request failed with status %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("oxylabs request failed with status %d", e.StatusCode)
	case TransportTimeout:
		return fmt.Sprintf("oxylabs request timed out: %v", e.Err)
	default:
		return fmt.Sprintf("oxylabs request failed: %v", e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResponseFormatError is returned when the provider response does not have
// the shape needed for parsing and formatting.
type ResponseFormatError struct {
	Reason string
	Err    error
}

func (e *ResponseFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oxylabs response validation error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("oxylabs response validation error: %s", e.Reason)
}

func (e *ResponseFormatError) Unwrap() error {
	return e.Err
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsInvalidArgumentError checks if an error is an InvalidArgumentError
func IsInvalidArgumentError(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}

// IsTransportError checks if an error is a TransportError
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsResponseFormatError checks if an error is a ResponseFormatError
func IsResponseFormatError(err error) bool {
	var target *ResponseFormatError
	return errors.As(err, &target)
}
