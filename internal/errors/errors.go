package errors

import (
	"errors"
	"fmt"
)

// Configuration errors indicate the framework config cannot drive generation.
var (
	// ErrProjectNotInitialized indicates the project has not been set up with Kauri.
	ErrProjectNotInitialized = errors.New("project has not been initialized")

	// ErrMissingPort indicates a non-worker service has no port configured.
	ErrMissingPort = errors.New("service is missing a port")

	// ErrInvalidServiceName indicates a service name is not lowercase kebab-case.
	ErrInvalidServiceName = errors.New("service name must be lowercase kebab-case")

	// ErrInvalidProjectConfig indicates kauri.toml is malformed or corrupt.
	ErrInvalidProjectConfig = errors.New("project configuration is invalid")
)

// Referential integrity errors indicate a secrets file references a value
// that does not exist after merging.
var (
	// ErrUnresolvedReference indicates a secrets array names a missing key.
	ErrUnresolvedReference = errors.New("secret reference cannot be resolved")
)

// File errors indicate issues with the secrets files on disk.
var (
	// ErrLocalSecretsMissing indicates the merged local file has not been generated yet.
	ErrLocalSecretsMissing = errors.New("local secrets file does not exist, run generation first")

	// ErrServiceNotFound indicates the requested service has no entry in the secrets files.
	ErrServiceNotFound = errors.New("service not found in secrets files")

	// ErrInvalidSigningKey indicates an imported signing key is malformed or unsupported.
	ErrInvalidSigningKey = errors.New("invalid or unsupported signing key format")
)

// ConfigError is a configuration error tied to a specific service and field.
// It unwraps to one of the configuration sentinels so callers can use errors.Is.
type ConfigError struct {
	Service string
	Field   string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("service %q: invalid %s: %v", e.Service, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ReferenceError is a referential integrity error naming the offending
// service and the reference that could not be resolved.
type ReferenceError struct {
	Service   string
	Reference string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("service %q references secret %q which does not exist", e.Service, e.Reference)
}

func (e *ReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}
