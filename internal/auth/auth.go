package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lealre/carsdb-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	UserKey   contextKey = "user"
	ClaimsKey contextKey = "claims"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Token is a signed access token plus the claims needed to revoke it.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

type Claims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

func MakeJWT(userID, issuer, tokenSecret string, expiresIn time.Duration) (Token, error) {
	now := time.Now()
	claim := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		Subject:   userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)

	signedToken, err := token.SignedString([]byte(tokenSecret))
	if err != nil {
		return Token{}, err
	}

	return Token{Value: signedToken, ID: claim.ID, ExpiresAt: claim.ExpiresAt.Time}, nil
}

func ValidateJWT(tokenString, tokenSecret string) (Claims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenSigningMethod
			}
			return []byte(tokenSecret), nil
		},
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case errors.Is(err, ErrTokenSigningMethod):
		return Claims{}, ErrTokenSigningMethod
	case err != nil:
		return Claims{}, ErrInvalidToken
	}

	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	if claims.Subject == "" {
		return Claims{}, ErrTokenWithNoSubject
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: claims.Subject, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func GetBearerToken(headers http.Header) (string, error) {
	bearerToken := headers.Get("Authorization")

	if bearerToken == "" {
		return "", ErrNoAuthorizationHeader
	}

	if !strings.HasPrefix(bearerToken, "Bearer ") {
		return "", ErrMalformedAuthHeader
	}

	token := strings.TrimSpace(strings.TrimPrefix(bearerToken, "Bearer "))
	if token == "" {
		return "", ErrNoTokenInAuthHeader
	}

	return token, nil
}

// GetUserFromContext returns the session profile set by the auth
// middleware, or nil on public routes.
func GetUserFromContext(ctx context.Context) *models.Profile {
	if user, ok := ctx.Value(UserKey).(models.Profile); ok {
		return &user
	}
	return nil
}

func WithUser(ctx context.Context, user models.Profile) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func GetClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(Claims)
	return claims, ok
}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}
