package models

import (
	"fmt"
	"strings"
)

// ValidationError carries every missing required file found by a preflight
// run, never just the first one.
type ValidationError struct {
	MissingFiles []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required files: %s", strings.Join(e.MissingFiles, ", "))
}

// EnvironmentError means the container runtime is absent or not running.
// Fatal, never retried.
type EnvironmentError struct {
	Reason string
	Err    error
}

func (e *EnvironmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// HealthTimeoutError means bounded polling was exhausted. The poller itself
// returns TimedOut as data; commands that treat it as fatal wrap it in this.
type HealthTimeoutError struct {
	Target   string
	Attempts int
}

func (e *HealthTimeoutError) Error() string {
	return fmt.Sprintf("%s did not become healthy within %d attempts", e.Target, e.Attempts)
}

// ProvisioningError means the model creation command failed.
type ProvisioningError struct {
	Model string
	Err   error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning model %s failed: %v", e.Model, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}
