package users

import (
	"context"
	"time"

	"github.com/lealre/carsdb-backend/internal/mongodb"
)

// Store covers identity, profiles and the car lookups the profile page needs.
type Store interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	CreateCredential(ctx context.Context, email, passwordHash string) (mongodb.CredentialDb, error)
	GetCredentialByEmail(ctx context.Context, email string) (mongodb.CredentialDb, error)
	TouchCredentialLogin(ctx context.Context, id string) error
	RevokeToken(ctx context.Context, tokenId, userId string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, tokenId string) (bool, error)

	CreateUser(ctx context.Context, user mongodb.UserDb) (mongodb.UserDb, error)
	GetUserById(ctx context.Context, id string) (mongodb.UserDb, error)
	AddToUserSet(ctx context.Context, userId, field, carId string) error
	RemoveFromUserSet(ctx context.Context, userId, field, carId string) error

	CarExists(ctx context.Context, id string) (bool, error)
	GetCarsByIds(ctx context.Context, ids []string) ([]mongodb.CarDb, error)
}

var _ Store = (*mongodb.DB)(nil)
