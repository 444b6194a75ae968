package config

import "fmt"

// LoadError represents a failure to read, parse or validate a configuration file.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error in %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("config error in %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
