package sim

import "fmt"

// ConfigError reports an invalid start-time parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TraceFormatError reports a trace record that cannot be replayed.
// Line is 1-based; Raw holds the offending line verbatim.
type TraceFormatError struct {
	Line   int
	Raw    string
	Reason string
}

func (e *TraceFormatError) Error() string {
	return fmt.Sprintf("trace line %d %q: %s", e.Line, e.Raw, e.Reason)
}

// ResourceError reports a file or sink that could not be opened, created or written.
type ResourceError struct {
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
