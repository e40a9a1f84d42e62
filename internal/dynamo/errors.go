package dynamo

import "errors"

// Domain errors for configuration and lookup.
var (
	// ErrUnknownFamily indicates an attractor family name or id that is not one of the six.
	ErrUnknownFamily = errors.New("dynamo: unknown attractor family")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidConfig indicates a configuration value the simulation cannot run with.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// ParamError wraps an error with the offending parameter.
type ParamError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return e.Name + ": " + e.Wrapped.Error()
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
