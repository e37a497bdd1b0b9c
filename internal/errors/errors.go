package errors

import (
	"fmt"
)

// NotAuthenticatedError is raised locally when an operation is attempted
// before a successful login; no network call is made.
type NotAuthenticatedError struct{}

// Error returns the error message
func (e *NotAuthenticatedError) Error() string {
	return "not authenticated: call Login first"
}

// NotFoundError represents a local lookup miss for an inbound or client
type NotFoundError struct {
	Kind string
	ID   string
}

// Error returns the error message
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// UnsupportedProtocolError is raised for inbounds whose protocol has no
// client management support
type UnsupportedProtocolError struct {
	Protocol string
}

// Error returns the error message
func (e *UnsupportedProtocolError) Error() string {
	return fmt.Sprintf("unsupported protocol: %q (supported: vless, vmess, trojan)", e.Protocol)
}

// DuplicateClientError is raised when a client label already exists in
// the target inbound
type DuplicateClientError struct {
	Email string
}

// Error returns the error message
func (e *DuplicateClientError) Error() string {
	return fmt.Sprintf("duplicate client label: %s", e.Email)
}

// APIError represents a well-formed panel response with success=false
type APIError struct {
	Operation string
	Message   string
}

// Error returns the error message
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("panel API error during %s", e.Operation)
	}
	return fmt.Sprintf("panel API error during %s: %s", e.Operation, e.Message)
}

// HTTPStatusError represents a non-2xx response from the panel
type HTTPStatusError struct {
	Operation string
	Status    int
	Body      string
}

// Error returns the error message
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.Status, e.Body)
}

// MalformedResponseError represents an empty or non-JSON response body
type MalformedResponseError struct {
	Operation string
	Body      string
}

// Error returns the error message
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s returned a malformed response: %q", e.Operation, e.Body)
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Field   string
	Message string
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
}
