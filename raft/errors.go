package raft

import "github.com/pkg/errors"

// ConfigError is returned by New when the supplied Config fails
// validation. It wraps the first violation found so the caller's error
// chain still reaches the underlying cause.
type ConfigError struct {
	cause error
}

func (e *ConfigError) Error() string {
	return "raft: invalid config: " + e.cause.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.cause
}

func newConfigError(msg string) *ConfigError {
	return &ConfigError{cause: errors.New(msg)}
}

// assertf panics with a formatted message. Used for invariant violations —
// programmer errors that must never occur in a correct build, matching the
// source's AssertionError.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(errors.Errorf(format, args...))
	}
}
