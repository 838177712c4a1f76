package auth

import "errors"

var (
	ErrLoginInFlight = errors.New("login already in progress")
)

// DefaultLoginFailedMessage is shown to the user when the backend provides no
// failure reason, or when the login exchange fails at the transport level.
const DefaultLoginFailedMessage = "login failed"

// RejectedError reports a login exchange the backend completed but refused
// (envelope status != 1). Message is user-facing.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "login rejected: " + e.Message
}
