package coach

import "fmt"

// InputError marks a request the caller could fix (missing or malformed
// address). Handlers map it to a 400.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

// ConfigError marks a missing operator-side setting, typically an absent
// credential. Handlers map it to a 500; retrying cannot help.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// ExternalServiceError marks an upstream dependency failure on a path the
// request cannot proceed without. Handlers map it to a 502.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
