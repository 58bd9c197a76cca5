package gocardless

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// AuthError means the secret-id/secret-key exchange failed; no authenticated
// call can proceed in the current run.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("gocardless: token exchange failed: %s", e.Body)
	}
	return fmt.Sprintf("gocardless: token exchange failed: status %d: %s", e.Status, e.Body)
}

// RemoteError is a non-2xx response from the aggregator on an authenticated
// call. Callers isolate it per account or operation; it never aborts
// sibling operations.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("gocardless: remote error: status %d: %s", e.Status, e.Body)
}

// NotFoundError reports a 404 for a specific resource such as a requisition.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("gocardless: %s %s not found", e.Resource, e.ID)
}

// IsTimeout reports whether err was caused by the bounded wait on a remote
// call expiring. Timeouts are treated like RemoteError for isolation:
// retryable but not retried within a run.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func is2xx(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
