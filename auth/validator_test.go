package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/devicepulse/console/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStaticFetcherAlwaysSucceeds(t *testing.T) {
	fetcher := auth.StaticUserInfoFetcher{}
	require.NoError(t, fetcher.Fetch(context.Background(), ""))
	require.NoError(t, fetcher.Fetch(context.Background(), "anything"))
}

func TestJWTFetcherAcceptsUnexpiredToken(t *testing.T) {
	fetcher := auth.JWTUserInfoFetcher{}
	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, fetcher.Fetch(context.Background(), token))
}

func TestJWTFetcherRejectsExpiredToken(t *testing.T) {
	fetcher := auth.JWTUserInfoFetcher{}
	token := signedToken(t, time.Now().Add(-time.Hour))
	require.Error(t, fetcher.Fetch(context.Background(), token))
}

func TestJWTFetcherLeeway(t *testing.T) {
	fetcher := auth.JWTUserInfoFetcher{Leeway: 2 * time.Hour}
	token := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, fetcher.Fetch(context.Background(), token))
}

func TestJWTFetcherRejectsOpaqueToken(t *testing.T) {
	fetcher := auth.JWTUserInfoFetcher{}
	require.Error(t, fetcher.Fetch(context.Background(), "tok123"))
}

func TestJWTFetcherAcceptsTokenWithoutExpiry(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	fetcher := auth.JWTUserInfoFetcher{}
	require.NoError(t, fetcher.Fetch(context.Background(), signed))
}
