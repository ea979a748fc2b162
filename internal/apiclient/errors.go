package apiclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for protocol-level outcomes. A 401 is not an application
// error: callers must treat ErrUnauthenticated as "session is gone" and hand
// control back to the auth gate.
var (
	ErrUnauthenticated = errors.New("apiclient: unauthenticated")
	ErrNotFound        = errors.New("apiclient: not found")
)

// GenericMessage is shown when the backend rejects a request without
// providing its own message, or when the response cannot be decoded.
const GenericMessage = "The server could not complete the request. Please try again."

// ConnectivityMessage is shown when the backend cannot be reached at all.
const ConnectivityMessage = "Could not reach the Mohandz service. Check your connection and try again."

// APIError carries a backend-rejected outcome (non-2xx with an envelope).
// Message is safe to surface to the user verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend rejected request (status %d): %s", e.Status, e.Message)
}

// UserMessage returns the text a handler should show for err: the backend's
// own message for an APIError, the connectivity fallback otherwise.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return GenericMessage
	}
	return ConnectivityMessage
}
