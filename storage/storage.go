package storage

import (
	"context"

	"github.com/pkg/errors"
)

// Keys used by the session core. The refresh-token slot currently mirrors the
// token slot (see the session controller).
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyUserName     = "userName"
)

var ErrNotFound = errors.New("credential not found")

// Store is the persistent credential store contract. Implementations provide
// no expiry, no encryption, and no atomicity across keys; callers must order
// multi-key writes. Remove is idempotent: removing an absent key is not an
// error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
