package types

import (
	"errors"
	"fmt"
)

// ErrProviderNotFound the requested provider is not integrated
var ErrProviderNotFound = errors.New("payment: unsupported provider")

// ValidationError bad caller input, user correctable, maps to 400
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

// NewValidationError formats a ValidationError
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// CredentialError merchant has no usable provider configuration, maps to 400
type CredentialError struct {
	Provider Provider
	Message  string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("credentials[%s]: %s", e.Provider, e.Message)
}

// ProviderAuthError token acquisition failed: provider outage, timeout or a
// bad secret. Maps to 500 because the caller cannot correct it.
type ProviderAuthError struct {
	Provider Provider
	Err      error
}

func (e *ProviderAuthError) Error() string {
	return fmt.Sprintf("provider auth[%s]: %v", e.Provider, e.Err)
}

func (e *ProviderAuthError) Unwrap() error {
	return e.Err
}

// ProviderRejectedError the provider validated the request and declined it.
// Carries the provider's own message, maps to 400.
type ProviderRejectedError struct {
	Provider Provider
	Code     string
	Message  string
}

func (e *ProviderRejectedError) Error() string {
	return fmt.Sprintf("provider rejected[%s] code=%s: %s", e.Provider, e.Code, e.Message)
}
