// Package model defines core data structures and error types for the Feedly MCP server.
package model

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrorType represents different categories of errors that can occur
type ErrorType string

const (
	// ErrorTypeConfiguration represents configuration-related errors, such as a missing access token
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeTransport represents MCP transport configuration errors
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeValidation represents malformed or out-of-bounds tool input
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeAuthentication represents upstream 401 responses
	ErrorTypeAuthentication ErrorType = "authentication"
	// ErrorTypeAuthorization represents upstream 403 responses
	ErrorTypeAuthorization ErrorType = "authorization"
	// ErrorTypeNotFound represents upstream 404 responses
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeRateLimit represents upstream 429 responses
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeHTTP represents any other non-success upstream status
	ErrorTypeHTTP ErrorType = "http"

	// ErrorTypeTimeout represents request timeout errors
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeNetwork represents general network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeCircuitBreaker represents circuit breaker state errors
	ErrorTypeCircuitBreaker ErrorType = "circuit_breaker"

	// ErrorTypeInternal represents internal server errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeUnknown represents unknown or unclassified errors
	ErrorTypeUnknown ErrorType = "unknown"
)

// FeedlyError represents a structured error with additional context for debugging.
// Message is the user-facing text; Error() renders the full diagnostic string.
type FeedlyError struct {
	ID         string    `json:"id"`         // Unique correlation ID for tracking
	Timestamp  time.Time `json:"timestamp"`  // When the error occurred
	ErrorType  ErrorType `json:"error_type"` // Category of error
	Message    string    `json:"message"`    // Human-readable error message
	Suggestion string    `json:"suggestion"` // Actionable suggestion for resolution

	Operation string `json:"operation,omitempty"` // What operation was being performed
	Component string `json:"component,omitempty"` // Which component generated the error

	HTTPStatus  int               `json:"http_status,omitempty"`  // HTTP status code
	HTTPHeaders map[string]string `json:"http_headers,omitempty"` // Relevant HTTP headers

	Cause error `json:"-"` // Original error (not serialized to JSON)
}

// Error implements the error interface
func (fe *FeedlyError) Error() string {
	var parts []string

	if fe.Message != "" {
		parts = append(parts, fe.Message)
	}
	if fe.Operation != "" {
		parts = append(parts, fmt.Sprintf("Operation: %s", fe.Operation))
	}
	if fe.HTTPStatus != 0 {
		parts = append(parts, fmt.Sprintf("HTTP Status: %d", fe.HTTPStatus))
	}
	parts = append(parts, fmt.Sprintf("Type: %s", fe.ErrorType), fmt.Sprintf("ID: %s", fe.ID))

	return strings.Join(parts, " | ")
}

// Unwrap returns the underlying cause for error wrapping support
func (fe *FeedlyError) Unwrap() error {
	return fe.Cause
}

// NewFeedlyError creates a new FeedlyError with basic information
func NewFeedlyError(errorType ErrorType, message string) *FeedlyError {
	id, _ := gonanoid.New() // Generate unique correlation ID

	return &FeedlyError{
		ID:         id,
		Timestamp:  time.Now().UTC(),
		ErrorType:  errorType,
		Message:    message,
		Suggestion: getSuggestionForErrorType(errorType),
	}
}

// NewFeedlyErrorWithCause creates a new FeedlyError wrapping an existing error
func NewFeedlyErrorWithCause(errorType ErrorType, message string, cause error) *FeedlyError {
	fe := NewFeedlyError(errorType, message)
	fe.Cause = cause
	return fe
}

// WithOperation adds operation context to the error
func (fe *FeedlyError) WithOperation(operation string) *FeedlyError {
	fe.Operation = operation
	return fe
}

// WithComponent adds component context to the error
func (fe *FeedlyError) WithComponent(component string) *FeedlyError {
	fe.Component = component
	return fe
}

// WithHTTP adds HTTP-specific context to the error
func (fe *FeedlyError) WithHTTP(status int, headers http.Header) *FeedlyError {
	fe.HTTPStatus = status

	if headers != nil {
		fe.HTTPHeaders = make(map[string]string)

		// Include relevant headers for debugging
		relevantHeaders := []string{
			"Content-Type", "Retry-After",
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset",
		}

		for _, header := range relevantHeaders {
			if value := headers.Get(header); value != "" {
				fe.HTTPHeaders[header] = value
			}
		}
	}

	return fe
}

// getSuggestionForErrorType returns actionable suggestions based on error type
func getSuggestionForErrorType(errorType ErrorType) string {
	suggestions := map[ErrorType]string{
		ErrorTypeConfiguration:  "Set FEEDLY_ACCESS_TOKEN and review connection flags",
		ErrorTypeTransport:      "Check transport configuration (stdio, http-with-sse)",
		ErrorTypeValidation:     "Review the tool input against its schema",
		ErrorTypeAuthentication: "Verify the access token is valid and not expired",
		ErrorTypeAuthorization:  "Verify your Feedly plan includes this API",
		ErrorTypeNotFound:       "Verify the stream or entry ID exists",
		ErrorTypeRateLimit:      "Wait before issuing further requests",
		ErrorTypeHTTP:           "Check the upstream status and response body",
		ErrorTypeTimeout:        "Check network connectivity or increase the timeout",
		ErrorTypeNetwork:        "Verify cloud.feedly.com is reachable",
		ErrorTypeCircuitBreaker: "Upstream is temporarily unavailable due to repeated failures",
		ErrorTypeInternal:       "Internal server error occurred, check logs for details",
	}

	if suggestion, exists := suggestions[errorType]; exists {
		return suggestion
	}

	return "Check the error details and try again"
}
