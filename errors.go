package lloyd

import (
	"errors"
	"fmt"
)

// ConfigError indicates an invalid or missing run configuration value.
// It is detected before any clustering work starts; a run that returns a
// ConfigError has produced no partial result.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ConfigError struct {
	Option string
	Reason string
	cause  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Option, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.cause }

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func configError(option, format string, args ...any) *ConfigError {
	return &ConfigError{Option: option, Reason: fmt.Sprintf(format, args...)}
}

func configErrorCause(option, reason string, cause error) *ConfigError {
	return &ConfigError{Option: option, Reason: reason, cause: cause}
}
