// internal/infrastructure/cartapi/errors.go
package cartapi

import "fmt"

// RemoteError is an expected failure reported by the cart service: a
// rejected request, a non-2xx status, or an unreachable host. UserTip
// carries the human-readable message from the service error payload when
// one was present.
type RemoteError struct {
	StatusCode int
	UserTip    string
	Reason     string
}

func (e *RemoteError) Error() string {
	switch {
	case e.UserTip != "":
		return fmt.Sprintf("cart service rejected the request (status %d): %s", e.StatusCode, e.UserTip)
	case e.StatusCode != 0:
		return fmt.Sprintf("cart service request failed (status %d): %s", e.StatusCode, e.Reason)
	default:
		return fmt.Sprintf("cart service unreachable: %s", e.Reason)
	}
}

// UserMessage returns the service-provided message to surface to the user,
// or empty when the service provided none.
func (e *RemoteError) UserMessage() string {
	return e.UserTip
}

// DecodeError marks a response body that violates the service contract.
// It is deliberately not a RemoteFailure: an unparseable response is a
// fatal condition, not something to coerce into the normal failure path.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cart service returned a malformed response during %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
