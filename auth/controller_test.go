package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/devicepulse/console/auth"
	"github.com/devicepulse/console/auth/authfakes"
	"github.com/devicepulse/console/session"
	"github.com/devicepulse/console/storage"
	"github.com/devicepulse/console/storage/memstore"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type testConfig struct{}

func (testConfig) GetAuthRouteMode() string   { return "static" }
func (testConfig) GetStaticSuperRole() string { return "superadmin" }

type testFixture struct {
	gateway    *authfakes.FakeGateway
	store      *memstore.Store
	state      *session.State
	navigator  *authfakes.FakeNavigator
	notifier   *authfakes.FakeNotifier
	resetter   *authfakes.FakeResetter
	controller *auth.Controller
}

func setupTestFixture(t *testing.T, options ...auth.ControllerOption) *testFixture {
	t.Helper()

	f := &testFixture{
		gateway:   &authfakes.FakeGateway{},
		store:     memstore.New(),
		state:     session.New(testConfig{}),
		navigator: &authfakes.FakeNavigator{},
		notifier:  &authfakes.FakeNotifier{},
		resetter:  &authfakes.FakeResetter{},
	}

	controller, err := auth.NewController(auth.Deps{
		Gateway:   f.gateway,
		Store:     f.store,
		State:     f.state,
		Navigator: f.navigator,
		Notifier:  f.notifier,
		Resetters: []auth.Resetter{f.resetter},
	}, options...)
	require.NoError(t, err)

	f.controller = controller
	return f
}

func (f *testFixture) requireFullyReset(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	for _, key := range []string{storage.KeyToken, storage.KeyRefreshToken, storage.KeyUserName} {
		_, err := f.store.Get(ctx, key)
		require.ErrorIs(t, err, storage.ErrNotFound, "key %s should be absent", key)
	}

	require.False(t, f.state.IsLoggedIn())
	require.Empty(t, f.state.Token())
	info := f.state.UserInfo()
	require.Empty(t, info.UserID)
	require.Empty(t, info.UserName)
	require.Empty(t, info.Roles)
	require.Empty(t, info.Buttons)
}

func TestLoginRoundTrip(t *testing.T) {
	f := setupTestFixture(t)
	f.gateway.Credentials = &auth.Credentials{
		Token:       "tok123",
		UserID:      "u1",
		Permissions: []string{"admin"},
	}

	ctx := context.Background()
	require.NoError(t, f.controller.Login(ctx, "alice", "pw"))

	require.Equal(t, "tok123", f.state.Token())
	require.True(t, f.state.IsLoggedIn())

	info := f.state.UserInfo()
	require.Equal(t, "u1", info.UserID)
	require.Equal(t, "alice", info.UserName)
	require.Equal(t, []string{"admin"}, info.Roles)

	token, err := f.store.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "tok123", token)

	refreshToken, err := f.store.Get(ctx, storage.KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "tok123", refreshToken, "refresh slot mirrors the token")

	userName, err := f.store.Get(ctx, storage.KeyUserName)
	require.NoError(t, err)
	require.Equal(t, "alice", userName)

	require.Equal(t, 1, f.navigator.ToHomeCalls)
	require.Len(t, f.notifier.Successes, 1)
	require.Contains(t, f.notifier.Successes[0].Message, "alice")
	require.False(t, f.controller.Loading())
}

func TestLoginWithoutRedirect(t *testing.T) {
	f := setupTestFixture(t)
	f.gateway.Credentials = &auth.Credentials{Token: "tok123", UserID: "u1"}

	require.NoError(t, f.controller.Login(context.Background(), "alice", "pw", auth.WithoutRedirect()))
	require.Zero(t, f.navigator.ToHomeCalls)
	require.True(t, f.state.IsLoggedIn())
}

func TestLoginNilPermissionsYieldEmptyRoles(t *testing.T) {
	f := setupTestFixture(t)
	f.gateway.Credentials = &auth.Credentials{Token: "tok123", UserID: "u1"}

	require.NoError(t, f.controller.Login(context.Background(), "alice", "pw"))
	require.NotNil(t, f.state.UserInfo().Roles)
	require.Empty(t, f.state.UserInfo().Roles)
}

func TestLoginRejectionSurfacesMessageAndResets(t *testing.T) {
	f := setupTestFixture(t)
	f.gateway.Err = &auth.RejectedError{Message: "bad credentials"}

	err := f.controller.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	require.Equal(t, []string{"bad credentials"}, f.notifier.Errors)
	f.requireFullyReset(t)
	require.Equal(t, 1, f.navigator.ToLoginCalls)
	require.Equal(t, 1, f.resetter.ResetCalls)
	require.False(t, f.controller.Loading())
}

func TestLoginTransportErrorUsesGenericMessageAndResets(t *testing.T) {
	f := setupTestFixture(t)
	f.gateway.Err = errors.New("connection refused")

	err := f.controller.Login(context.Background(), "alice", "pw")
	require.Error(t, err)

	require.Equal(t, []string{auth.DefaultLoginFailedMessage}, f.notifier.Errors)
	f.requireFullyReset(t)
}

func TestLoginRejectionClearsPreviousSession(t *testing.T) {
	f := setupTestFixture(t)
	f.gateway.Credentials = &auth.Credentials{Token: "tok123", UserID: "u1", Permissions: []string{"admin"}}

	ctx := context.Background()
	require.NoError(t, f.controller.Login(ctx, "alice", "pw"))

	f.gateway.Credentials = nil
	f.gateway.Err = &auth.RejectedError{Message: "bad credentials"}
	require.Error(t, f.controller.Login(ctx, "alice", "wrong"))

	f.requireFullyReset(t)
}

func TestResetIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	f.gateway.Credentials = &auth.Credentials{Token: "tok123", UserID: "u1"}

	ctx := context.Background()
	require.NoError(t, f.controller.Login(ctx, "alice", "pw"))

	require.NoError(t, f.controller.Reset(ctx))
	f.requireFullyReset(t)

	require.NoError(t, f.controller.Reset(ctx))
	f.requireFullyReset(t)
}

func TestResetSkipsLoginRedirectOnConstantRoute(t *testing.T) {
	f := setupTestFixture(t)
	f.navigator.ConstantRoute = true

	require.NoError(t, f.controller.Reset(context.Background()))
	require.Zero(t, f.navigator.ToLoginCalls)
	require.Equal(t, 1, f.resetter.ResetCalls, "collaborators reset regardless of route")
}

func TestRestoreWithPersistedToken(t *testing.T) {
	f := setupTestFixture(t)

	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, storage.KeyToken, "tokXYZ"))
	require.NoError(t, f.store.Set(ctx, storage.KeyUserName, "bob"))

	require.NoError(t, f.controller.Restore(ctx))

	require.True(t, f.state.IsLoggedIn())
	require.Equal(t, "tokXYZ", f.state.Token())
	require.Equal(t, "bob", f.state.UserInfo().UserName)
	require.Empty(t, f.gateway.Calls(), "restore must not call the login endpoint")
}

func TestRestoreWithoutTokenIsNoOp(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.controller.Restore(context.Background()))
	require.False(t, f.state.IsLoggedIn())
	require.Zero(t, f.navigator.ToLoginCalls)
	require.Zero(t, f.resetter.ResetCalls)
}

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) error {
	return errors.New("validation failed")
}

func TestRestoreValidationFailureResets(t *testing.T) {
	f := setupTestFixture(t, auth.WithUserInfoFetcher(failingFetcher{}))

	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, storage.KeyToken, "tokXYZ"))
	require.NoError(t, f.store.Set(ctx, storage.KeyUserName, "bob"))

	require.NoError(t, f.controller.Restore(ctx))
	f.requireFullyReset(t)
}

func TestLoginValidationFailureResets(t *testing.T) {
	f := setupTestFixture(t, auth.WithUserInfoFetcher(failingFetcher{}))
	f.gateway.Credentials = &auth.Credentials{Token: "tok123", UserID: "u1"}

	err := f.controller.Login(context.Background(), "alice", "pw")
	require.Error(t, err)
	f.requireFullyReset(t)
}

type blockingGateway struct {
	release chan struct{}
	started chan struct{}
}

func (g *blockingGateway) Login(context.Context, string, string) (*auth.Credentials, error) {
	close(g.started)
	<-g.release
	return &auth.Credentials{Token: "tok123", UserID: "u1"}, nil
}

func TestConcurrentLoginIsRejected(t *testing.T) {
	gateway := &blockingGateway{release: make(chan struct{}), started: make(chan struct{})}

	f := setupTestFixture(t)
	controller, err := auth.NewController(auth.Deps{
		Gateway:   gateway,
		Store:     f.store,
		State:     f.state,
		Navigator: f.navigator,
		Notifier:  f.notifier,
	})
	require.NoError(t, err)

	ctx := context.Background()
	var wg sync.WaitGroup
	var firstLoginErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstLoginErr = controller.Login(ctx, "alice", "pw")
	}()

	<-gateway.started
	require.True(t, controller.Loading())
	require.ErrorIs(t, controller.Login(ctx, "alice", "pw"), auth.ErrLoginInFlight)

	close(gateway.release)
	wg.Wait()
	require.NoError(t, firstLoginErr)
	require.False(t, controller.Loading())
	require.True(t, f.state.IsLoggedIn())
}

func TestNewControllerValidatesDependencies(t *testing.T) {
	_, err := auth.NewController(auth.Deps{})
	require.Error(t, err)
}
