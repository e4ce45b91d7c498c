package yongeon

import (
	"fmt"
)

// ConfigError reports malformed input at a construction boundary
// (lexicon entries, rules, configuration values). The structure being
// built or extended is left untouched.
type ConfigError struct {
	// Field names the offending part of the input.
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func newConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
