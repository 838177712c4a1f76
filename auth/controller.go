package auth

import (
	"context"
	"sync/atomic"

	"github.com/devicepulse/console/session"
	"github.com/devicepulse/console/storage"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Navigator is the routing boundary. CurrentRouteConstant reports whether the
// active route is reachable without authentication; Reset only redirects to
// the login destination when it is not.
type Navigator interface {
	ToLogin()
	ToHome()
	CurrentRouteConstant() bool
}

// Notifier is the user-facing notification boundary: a titled success signal
// or a single-line error message.
type Notifier interface {
	Success(title, message string)
	Error(message string)
}

// Resetter is implemented by collaborators whose derived state must be
// rebuilt after a session reset (tab cache, route table).
type Resetter interface {
	ResetState()
}

// Deps holds the collaborator dependencies of the session controller.
type Deps struct {
	Gateway   Gateway
	Store     storage.Store
	State     *session.State
	Navigator Navigator
	Notifier  Notifier
	Resetters []Resetter
}

// Controller owns the credential lifecycle: login, logout/reset, and startup
// restoration. It is the sole authority on whether a failure resets the
// session. Construct one instance at process start and pass it by reference
// to every consumer.
type Controller struct {
	deps    Deps
	fetcher UserInfoFetcher
	logger  zerolog.Logger
	loading atomic.Bool
}

// ControllerOption modifies a Controller instance.
type ControllerOption func(*Controller)

// WithUserInfoFetcher replaces the default always-succeeding validation step.
func WithUserInfoFetcher(fetcher UserInfoFetcher) ControllerOption {
	return func(c *Controller) {
		c.fetcher = fetcher
	}
}

// WithLogger sets the controller's logger.
func WithLogger(logger zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController initializes a session controller with required dependencies.
func NewController(deps Deps, options ...ControllerOption) (*Controller, error) {
	if deps.Gateway == nil {
		return nil, errors.New("[NewController] Gateway is required")
	}
	if deps.Store == nil {
		return nil, errors.New("[NewController] Store is required")
	}
	if deps.State == nil {
		return nil, errors.New("[NewController] State is required")
	}
	if deps.Navigator == nil {
		return nil, errors.New("[NewController] Navigator is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("[NewController] Notifier is required")
	}

	controller := &Controller{
		deps:    deps,
		fetcher: StaticUserInfoFetcher{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(controller)
	}
	return controller, nil
}

// Loading reports whether a login attempt is in flight.
func (c *Controller) Loading() bool {
	return c.loading.Load()
}

type loginSettings struct {
	redirect bool
}

// LoginOption modifies a single Login call.
type LoginOption func(*loginSettings)

// WithoutRedirect suppresses the post-login redirect to the home destination.
func WithoutRedirect() LoginOption {
	return func(s *loginSettings) {
		s.redirect = false
	}
}

// Login runs the login exchange and commits the resulting session. Attempts
// are serialized: a call made while another is in flight returns
// ErrLoginInFlight without touching any state. Every failure path converges
// on Reset so identity and token are only ever fully populated or fully
// empty.
func (c *Controller) Login(ctx context.Context, userName, password string, options ...LoginOption) error {
	if !c.loading.CompareAndSwap(false, true) {
		return ErrLoginInFlight
	}
	defer c.loading.Store(false)

	settings := loginSettings{redirect: true}
	for _, opt := range options {
		opt(&settings)
	}

	creds, err := c.deps.Gateway.Login(ctx, userName, password)
	if err != nil {
		return c.failLogin(ctx, err)
	}

	if err := c.commitSession(ctx, creds); err != nil {
		return c.failLogin(ctx, err)
	}

	if settings.redirect {
		c.deps.Navigator.ToHome()
	}
	c.deps.Notifier.Success("Login Successful", "Welcome back, "+creds.UserName)
	c.logger.Trace().Str("token", creds.Token).Msg("stored session token")
	return nil
}

// commitSession writes the credential pair to memory and the persistent
// store. The token is written before the identity so a concurrent reader
// never observes identity-present-but-token-absent; the refresh-token slot
// mirrors the token until the backend issues a distinct refresh credential.
func (c *Controller) commitSession(ctx context.Context, creds *Credentials) error {
	c.deps.State.SetToken(creds.Token)
	if err := c.deps.Store.Set(ctx, storage.KeyToken, creds.Token); err != nil {
		return errors.Wrap(err, "[Controller.commitSession] persist token")
	}
	if err := c.deps.Store.Set(ctx, storage.KeyRefreshToken, creds.Token); err != nil {
		return errors.Wrap(err, "[Controller.commitSession] persist refresh token")
	}

	roles := creds.Permissions
	if roles == nil {
		roles = []string{}
	}
	c.deps.State.SetUserInfo(session.UserInfo{
		UserID:   creds.UserID,
		UserName: creds.UserName,
		Roles:    roles,
		Buttons:  []string{},
	})
	if err := c.deps.Store.Set(ctx, storage.KeyUserName, creds.UserName); err != nil {
		return errors.Wrap(err, "[Controller.commitSession] persist user name")
	}

	if err := c.fetcher.Fetch(ctx, creds.Token); err != nil {
		return errors.Wrap(err, "[Controller.commitSession] validate user info")
	}
	return nil
}

// failLogin surfaces the failure to the user and resets the session. A
// credential rejection carries the backend's message; anything else is a
// transport-level failure reported with the generic message and logged.
func (c *Controller) failLogin(ctx context.Context, loginErr error) error {
	var rejected *RejectedError
	if errors.As(loginErr, &rejected) {
		c.deps.Notifier.Error(rejected.Message)
	} else {
		c.logger.Err(loginErr).Msg("login failed")
		c.deps.Notifier.Error(DefaultLoginFailedMessage)
	}

	if err := c.Reset(ctx); err != nil {
		c.logger.Err(err).Msg("reset after failed login")
	}
	return loginErr
}

// Reset fully clears the session: persisted credentials first, then the
// in-memory identity and token together. It redirects to the login
// destination unless the active route is constant, and always instructs the
// registered collaborators to rebuild their derived state. Reset is
// idempotent.
func (c *Controller) Reset(ctx context.Context) error {
	var resetErr error
	for _, key := range []string{storage.KeyToken, storage.KeyRefreshToken, storage.KeyUserName} {
		if err := c.deps.Store.Remove(ctx, key); err != nil && resetErr == nil {
			resetErr = errors.Wrapf(err, "[Controller.Reset] remove %s", key)
		}
	}

	c.deps.State.Clear()

	if !c.deps.Navigator.CurrentRouteConstant() {
		c.deps.Navigator.ToLogin()
	}
	for _, resetter := range c.deps.Resetters {
		resetter.ResetState()
	}
	return resetErr
}

// Restore re-establishes a session from the persistent store at process
// start. Without a persisted token it is a no-op. With one, the token and the
// remembered username are loaded into memory and the validation step runs; a
// validation failure resets the session. No login-endpoint call is made.
func (c *Controller) Restore(ctx context.Context) error {
	token, err := c.deps.Store.Get(ctx, storage.KeyToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return errors.Wrap(err, "[Controller.Restore] read token")
	}
	if token == "" {
		return nil
	}

	c.deps.State.SetToken(token)

	if userName, err := c.deps.Store.Get(ctx, storage.KeyUserName); err == nil && userName != "" {
		info := c.deps.State.UserInfo()
		info.UserName = userName
		c.deps.State.SetUserInfo(info)
	}

	if err := c.fetcher.Fetch(ctx, token); err != nil {
		c.logger.Err(err).Msg("restored token failed validation")
		return c.Reset(ctx)
	}
	return nil
}
