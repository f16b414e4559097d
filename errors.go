// File: lixenwraith/logprops/errors.go
package logprops

import "errors"

var (
	// ErrConfigNotFound is returned when a property file does not exist.
	// It is not fatal: the Environment still resolves from its other sources.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrUnsupportedOperation is returned when mutating a sealed Environment.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrMalformedKey is returned when a key does not follow the
	// log4j2.<context>.<component>.<key> composite form.
	ErrMalformedKey = errors.New("malformed composite property key")

	// ErrInvalidDocument is returned for JSON documents without the expected root object.
	ErrInvalidDocument = errors.New("invalid property document")

	// ErrUnknownFormat is returned when a file format cannot be determined.
	ErrUnknownFormat = errors.New("unknown property file format")

	// ErrFileTooLarge is returned when a file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("property file too large")

	// ErrDuplicateProvider is returned when a provider name is registered twice.
	ErrDuplicateProvider = errors.New("property source provider already registered")

	// ErrInvalidDuration is returned by ParseDuration.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrProvidersSealed is returned when registering after SealProviders.
	ErrProvidersSealed = errors.New("property source providers are sealed")
)
