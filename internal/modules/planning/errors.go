// README: Error kinds for planning requests; the HTTP layer maps each kind to its status code.
package planning

import (
	"errors"
	"fmt"
)

// ValidationError reports missing or malformed request fields (HTTP 400).
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

// ConfigurationError reports a required credential or setting that is absent (HTTP 500).
type ConfigurationError struct {
	Setting string
	Msg     string
}

func (e ConfigurationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s is not configured", e.Setting)
}

// UpstreamError wraps a failed call to an external service (HTTP 500).
type UpstreamError struct {
	Service string
	Err     error
}

func (e UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s call failed", e.Service)
	}
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Err)
}

func (e UpstreamError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConfiguration(err error) bool {
	var target ConfigurationError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}
