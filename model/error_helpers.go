// Package model provides helper functions for creating structured errors.
package model

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// User-facing messages for the special-cased upstream statuses. The wording
// is part of the tool contract and must not drift.
const (
	MsgAuthenticationFailed = "Authentication failed. Check FEEDLY_ACCESS_TOKEN."
	MsgAccessForbidden      = "Access forbidden. Check your Feedly plan."
	MsgResourceNotFound     = "Resource not found. Check the ID."
	MsgRateLimitExceeded    = "Rate limit exceeded. Wait before retrying."
	MsgRequestTimedOut      = "Request timed out. Try again."
)

// CreateStatusError maps an upstream HTTP status to a FeedlyError. The
// special cases are checked before the generic status failure, in this order:
// 401, 403, 404, 429, then anything else non-2xx.
func CreateStatusError(status int, body string, headers http.Header) *FeedlyError {
	var errorType ErrorType
	var message string

	switch status {
	case http.StatusUnauthorized:
		errorType = ErrorTypeAuthentication
		message = MsgAuthenticationFailed
	case http.StatusForbidden:
		errorType = ErrorTypeAuthorization
		message = MsgAccessForbidden
	case http.StatusNotFound:
		errorType = ErrorTypeNotFound
		message = MsgResourceNotFound
	case http.StatusTooManyRequests:
		errorType = ErrorTypeRateLimit
		message = MsgRateLimitExceeded
	default:
		errorType = ErrorTypeHTTP
		message = fmt.Sprintf("HTTP %d: %s", status, strings.TrimSpace(body))
	}

	return NewFeedlyError(errorType, message).
		WithOperation("api_request").
		WithComponent("feedly_client").
		WithHTTP(status, headers)
}

// CreateRequestError categorizes a transport-level failure (the request never
// produced an HTTP status) into timeout or generic network errors.
func CreateRequestError(err error) *FeedlyError {
	errorType := ErrorTypeNetwork
	message := "Network error occurred"

	if isTimeoutError(err) {
		errorType = ErrorTypeTimeout
		message = MsgRequestTimedOut
	}

	return NewFeedlyErrorWithCause(errorType, message, err).
		WithOperation("api_request").
		WithComponent("feedly_client")
}

// isTimeoutError checks if an error is timeout-related
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// http.Client wraps timeouts in url.Error with this text
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

// IsErrorType reports whether err is a *FeedlyError of the given type.
func IsErrorType(err error, errorType ErrorType) bool {
	var fe *FeedlyError
	if errors.As(err, &fe) {
		return fe.ErrorType == errorType
	}
	return false
}

// UserMessage extracts the user-facing message from an error. Structured
// errors contribute their Message field only; the diagnostic context from
// Error() stays out of tool output.
func UserMessage(err error) string {
	var fe *FeedlyError
	if errors.As(err, &fe) {
		return fe.Message
	}
	if isTimeoutError(err) {
		return MsgRequestTimedOut
	}
	return err.Error()
}
