package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks a map or cost model that cannot be searched.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidEndpoint marks a start or goal that is out of bounds or blocked.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)

// ConfigError describes why a map or configuration was rejected.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Reason }

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// EndpointError describes a rejected start or goal cell.
type EndpointError struct {
	Role   string // "start" or "goal"
	Cell   Cell
	Reason string
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("invalid endpoint: %s %s %s", e.Role, e.Cell, e.Reason)
}

func (e *EndpointError) Unwrap() error { return ErrInvalidEndpoint }
