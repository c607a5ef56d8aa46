package users

import (
	"context"
	"errors"
	"strings"

	"github.com/lealre/carsdb-backend/internal/auth"
	"github.com/lealre/carsdb-backend/internal/config"
	"github.com/lealre/carsdb-backend/internal/logx"
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/lealre/carsdb-backend/internal/services/cars"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates the identity and an empty, non-admin profile together.
func SignUp(db Store, ctx context.Context, jwtCfg config.JWTConfig, creds auth.Credentials) (auth.LoginResponse, error) {
	email := normalizeEmail(creds.Email)

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	var userDb mongodb.UserDb
	err = db.RunTransaction(ctx, func(ctx context.Context) error {
		cred, err := db.CreateCredential(ctx, email, hash)
		if err != nil {
			if errors.Is(err, mongodb.ErrDuplicateRecord) {
				return ErrEmailTaken
			}
			return err
		}

		userDb, err = db.CreateUser(ctx, mongodb.UserDb{Id: cred.Id, Email: email})
		return err
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	logx.FromContext(ctx).Info().Str("user_id", userDb.Id).Msg("user signed up")
	return newLoginResponse(jwtCfg, MapDbUserToProfile(userDb))
}

// SignIn verifies the password and creates the profile if it is missing.
func SignIn(db Store, ctx context.Context, jwtCfg config.JWTConfig, creds auth.Credentials) (auth.LoginResponse, error) {
	cred, err := db.GetCredentialByEmail(ctx, normalizeEmail(creds.Email))
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := auth.CheckPasswordHash(cred.PasswordHash, creds.Password); err != nil {
		return auth.LoginResponse{}, err
	}

	userDb, err := db.GetUserById(ctx, cred.Id)
	if errors.Is(err, mongodb.ErrRecordNotFound) {
		logx.FromContext(ctx).Warn().Str("user_id", cred.Id).Msg("profile missing at sign in, creating it")
		userDb, err = db.CreateUser(ctx, mongodb.UserDb{Id: cred.Id, Email: cred.Email})
	}
	if err != nil {
		return auth.LoginResponse{}, err
	}

	if err := db.TouchCredentialLogin(ctx, cred.Id); err != nil {
		logx.FromContext(ctx).Warn().Err(err).Msg("failed to record last login")
	}

	return newLoginResponse(jwtCfg, MapDbUserToProfile(userDb))
}

// SignOut revokes the token until it would have expired anyway.
func SignOut(db Store, ctx context.Context, claims auth.Claims) error {
	return db.RevokeToken(ctx, claims.TokenID, claims.UserID, claims.ExpiresAt)
}

func IsTokenRevoked(db Store, ctx context.Context, tokenId string) (bool, error) {
	return db.IsTokenRevoked(ctx, tokenId)
}

func GetProfile(db Store, ctx context.Context, uid string) (models.Profile, error) {
	userDb, err := db.GetUserById(ctx, uid)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return models.Profile{}, ErrUserNotFound
		}
		return models.Profile{}, err
	}
	return MapDbUserToProfile(userDb), nil
}

// GetUserPage resolves another user's owned and wishlist ids into cars.
func GetUserPage(db Store, ctx context.Context, uid string) (UserPage, error) {
	profile, err := GetProfile(db, ctx, uid)
	if err != nil {
		return UserPage{}, err
	}

	owned, err := cars.GetCarsByIds(db, ctx, profile.OwnedCars)
	if err != nil {
		return UserPage{}, err
	}
	wishlist, err := cars.GetCarsByIds(db, ctx, profile.Wishlist)
	if err != nil {
		return UserPage{}, err
	}

	return UserPage{
		Uid:       profile.Uid,
		Email:     profile.Email,
		OwnedCars: owned,
		Wishlist:  wishlist,
	}, nil
}

func newLoginResponse(jwtCfg config.JWTConfig, profile models.Profile) (auth.LoginResponse, error) {
	token, err := auth.MakeJWT(profile.Uid, jwtCfg.Issuer, jwtCfg.Secret, jwtCfg.TTL)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	return auth.LoginResponse{
		AccessToken: token.Value,
		ExpiresAt:   token.ExpiresAt,
		Session:     profile,
	}, nil
}
