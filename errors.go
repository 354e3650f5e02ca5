package flatly

import "fmt"

// ConfigError reports an invalid mapping configuration detected at plan
// construction time; a plan with a ConfigError cannot be built.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid mapping: %s", e.Message)
	}
	return fmt.Sprintf("invalid mapping for %v: %s", e.Path, e.Message)
}

func configError(path, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// FieldError wraps a per-field conversion or assignment failure with the
// target path it occurred on.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %v: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// RecordError reports a record that could not be tokenized, an unterminated
// quote or a missing field.
type RecordError struct {
	Message string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("invalid record: %s", e.Message)
}

func recordError(format string, args ...interface{}) *RecordError {
	return &RecordError{Message: fmt.Sprintf(format, args...)}
}
