package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/stormgen/dialect/sqlschema"
)

// Sentinel errors for common failure cases.
var (
	// ErrConfig indicates a configuration error, such as an unreadable template.
	ErrConfig = errors.New("stormgen: configuration error")
	// ErrConversion indicates a default value that could not be converted.
	ErrConversion = errors.New("stormgen: value conversion failed")
	// ErrValidation indicates invalid entity or attribute input.
	ErrValidation = errors.New("stormgen: validation failed")
	// ErrGenerationFailed indicates a failure while emitting generated source.
	ErrGenerationFailed = errors.New("stormgen: code generation failed")
	// ErrLookup indicates a backend/type pair missing from the type map.
	ErrLookup = sqlschema.ErrLookup
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Value != nil {
		fmt.Fprintf(&b, "stormgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	} else {
		fmt.Fprintf(&b, "stormgen: config error for %q: %s", e.Option, e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// ConversionError is returned when an attribute default cannot be coerced
// to the literal its column requires.
type ConversionError struct {
	Entity    string
	Attribute string
	Value     string
	Cause     error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	var b strings.Builder
	b.WriteString("stormgen: conversion error")
	if e.Entity != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Entity)
	}
	if e.Attribute != "" {
		b.WriteString(" field ")
		b.WriteString(e.Attribute)
	}
	fmt.Fprintf(&b, ": default %q is not an integer literal", e.Value)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ConversionError.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// GenerationError represents a failure while emitting generated source.
type GenerationError struct {
	Phase   string // "template", "emit".
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("stormgen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Type    string
	Field   string
	Value   any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("stormgen: validation error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(typeName, field string, value any, message string) *ValidationError {
	return &ValidationError{
		Type:    typeName,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsConversionError reports whether the error is a ConversionError.
func IsConversionError(err error) bool {
	var convErr *ConversionError
	return errors.As(err, &convErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsLookupError reports whether the error is a sqlschema.LookupError.
func IsLookupError(err error) bool {
	return sqlschema.IsLookupError(err)
}
