package errors

import (
	"fmt"

	"github.com/45air/airlocal/ui"
)

// ValidationError is malformed operator input. Prompts re-ask on it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DuplicateEnvironmentError is returned by the pre-flight guard.
type DuplicateEnvironmentError struct {
	Host string
	Path string
	// ExistingHost is set when another hostname already owns the slug.
	ExistingHost string
	// InProgress is set when another run holds the environment lock.
	InProgress bool
}

func (e *DuplicateEnvironmentError) Error() string {
	switch {
	case e.InProgress:
		return fmt.Sprintf("%s is already being created by another airlocal process (lock held in %s). If no other airlocal process is running, remove %s and try again",
			ui.RedText(e.Host), e.Path, ui.CyanText(e.Path))
	case e.ExistingHost != "" && e.ExistingHost != e.Host:
		return fmt.Sprintf("%s maps to the same directory as the existing environment %s (%s). Choose a different hostname or delete it first by running %s",
			ui.RedText(e.Host), ui.Bold(e.ExistingHost), e.Path, ui.CyanText("airlocal delete "+e.ExistingHost))
	default:
		return fmt.Sprintf("%s environment already exists. To recreate the environment, please delete it first by running %s",
			ui.RedText(e.Host), ui.CyanText("airlocal delete "+e.Host))
	}
}

// ConfigurationError means an unsupported value reached the topology builder.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unsupported %s %q", e.Field, e.Value)
}

// InfrastructureError wraps the failure of a fatal provisioning phase.
type InfrastructureError struct {
	Phase string
	Err   error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// AdvisoryWarning is logged by the pipeline and never aborts it.
type AdvisoryWarning struct {
	Phase string
	Hint  string
	Err   error
}

func (e *AdvisoryWarning) Error() string {
	if e.Err == nil {
		return e.Hint
	}
	return fmt.Sprintf("%s Error: %v", e.Hint, e.Err)
}

func (e *AdvisoryWarning) Unwrap() error {
	return e.Err
}
