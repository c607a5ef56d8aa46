package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-with-enough-length"

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.NoError(t, CheckPasswordHash(hash, "hunter22"))
	require.ErrorIs(t, CheckPasswordHash(hash, "wrong"), ErrInvalidCredentials)
}

func TestJWT(t *testing.T) {
	t.Run("A token round trips its subject and id", func(t *testing.T) {
		token, err := MakeJWT("user-1", "carsdb", secret, time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, token.ID)

		claims, err := ValidateJWT(token.Value, secret)
		require.NoError(t, err)
		require.Equal(t, "user-1", claims.UserID)
		require.Equal(t, token.ID, claims.TokenID)
		require.WithinDuration(t, token.ExpiresAt, claims.ExpiresAt, time.Second)
	})

	t.Run("Each token gets a distinct id", func(t *testing.T) {
		a, err := MakeJWT("user-1", "carsdb", secret, time.Hour)
		require.NoError(t, err)
		b, err := MakeJWT("user-1", "carsdb", secret, time.Hour)
		require.NoError(t, err)
		require.NotEqual(t, a.ID, b.ID)
	})

	t.Run("An expired token is rejected", func(t *testing.T) {
		token, err := MakeJWT("user-1", "carsdb", secret, -time.Minute)
		require.NoError(t, err)

		_, err = ValidateJWT(token.Value, secret)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("A token signed with another secret is rejected", func(t *testing.T) {
		token, err := MakeJWT("user-1", "carsdb", secret, time.Hour)
		require.NoError(t, err)

		_, err = ValidateJWT(token.Value, "another-secret-of-enough-length")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		_, err := ValidateJWT("not.a.token", secret)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGetBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		err    error
	}{
		{"", "", ErrNoAuthorizationHeader},
		{"Basic abc", "", ErrMalformedAuthHeader},
		{"Bearer   ", "", ErrNoTokenInAuthHeader},
		{"Bearer abc ", "abc", nil},
	}

	for _, tc := range cases {
		headers := http.Header{}
		if tc.header != "" {
			headers.Set("Authorization", tc.header)
		}
		token, err := GetBearerToken(headers)
		if tc.err != nil {
			require.ErrorIs(t, err, tc.err, tc.header)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.token, token)
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, GetUserFromContext(ctx))

	ctx = WithUser(ctx, models.Profile{Uid: "u1", IsAdmin: true})
	user := GetUserFromContext(ctx)
	require.NotNil(t, user)
	require.Equal(t, "u1", user.Uid)

	_, ok := GetClaimsFromContext(ctx)
	require.False(t, ok)
	ctx = WithClaims(ctx, Claims{UserID: "u1", TokenID: "t1"})
	claims, ok := GetClaimsFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "t1", claims.TokenID)
}
