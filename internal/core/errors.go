// internal/core/errors.go
package core

import (
	"errors"
	"fmt"
)

// Define custom errors for better error handling and classification
var (
	ErrOutputFormat = errors.New("unsupported output format")
	ErrFileWrite    = errors.New("failed to write to file")
)

// ConfigError reports a missing or invalid configuration field. It is the
// only error class that aborts a run before any query is sent.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
