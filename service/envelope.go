package service

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// StatusOK is the envelope status every backend response uses to signal
// success.
const StatusOK = 1

// DefaultRequestFailedMessage is surfaced when the backend provides no
// failure reason.
const DefaultRequestFailedMessage = "request failed"

// ErrUnauthenticated is returned when the backend signals that the session is
// no longer authenticated (HTTP 401).
var ErrUnauthenticated = errors.New("unauthenticated")

// Envelope is the wrapper every backend response shares. Message is optional
// on the wire.
type Envelope struct {
	Status  int             `json:"status"`
	Message *string         `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// EnvelopeError reports a response the backend completed but marked as a
// failure (status != 1). Message is user-facing.
type EnvelopeError struct {
	Status  int
	Message string
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}
