package automap

import (
	"errors"
	"fmt"
)

var (
	// Registry errors
	ErrConverterNotFound = errors.New("no converter registered")

	// Conversion errors
	ErrTypeConversion = errors.New("type conversion failed")

	// Argument errors
	ErrNilArgument = errors.New("required argument is nil")

	// Build-time errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

func NewConverterNotFoundError(typeName string) error {
	return fmt.Errorf("%w: %s (run automap-gen and load the generated registry)", ErrConverterNotFound, typeName)
}

func NewTypeConversionError(fieldName, expectedType, actualType string) error {
	return fmt.Errorf("%w: field '%s' expects %s, got %s", ErrTypeConversion, fieldName, expectedType, actualType)
}

func NewNilArgumentError(what string) error {
	return fmt.Errorf("%w: %s", ErrNilArgument, what)
}

func NewInvalidConfigurationError(typeName, details string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfiguration, typeName, details)
}

// IsNotFoundError returns true if the error reports a missing converter.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrConverterNotFound)
}

// IsConversionError returns true if the error reports a value whose runtime
// type did not match the target field's declared type.
func IsConversionError(err error) bool {
	return errors.Is(err, ErrTypeConversion)
}

// IsInvalidArgumentError returns true if the error reports a nil argument
// supplied to an API that requires one.
func IsInvalidArgumentError(err error) bool {
	return errors.Is(err, ErrNilArgument)
}

// IsConfigurationError returns true if the error represents a build-time
// configuration problem.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
