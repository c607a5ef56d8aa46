package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDuplicateRecord = errors.New("record already exists in the database")

// CredentialDb is the identity record. Its id is the uid shared with the
// profile document.
type CredentialDb struct {
	Id           string     `json:"id" bson:"_id"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
}

func (db *DB) CreateCredential(ctx context.Context, email, passwordHash string) (CredentialDb, error) {
	coll := db.Collection(CredentialsCollection)

	cred := CredentialDb{
		Id:           primitive.NewObjectID().Hex(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := coll.InsertOne(ctx, cred); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return CredentialDb{}, ErrDuplicateRecord
		}
		return CredentialDb{}, err
	}
	return cred, nil
}

func (db *DB) GetCredentialByEmail(ctx context.Context, email string) (CredentialDb, error) {
	coll := db.Collection(CredentialsCollection)

	opts := options.FindOne().SetCollation(&options.Collation{Locale: "en", Strength: 2})

	var cred CredentialDb
	if err := coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&cred); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CredentialDb{}, ErrRecordNotFound
		}
		return CredentialDb{}, err
	}
	return cred, nil
}

func (db *DB) TouchCredentialLogin(ctx context.Context, id string) error {
	coll := db.Collection(CredentialsCollection)
	_, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"lastLoginAt": time.Now().UTC()}})
	return err
}

// ----- Revoked session tokens -----

type RevokedTokenDb struct {
	Id        string    `bson:"_id"`
	UserId    string    `bson:"userId"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// RevokeToken records a token id until its expiry. Revoking twice is a no-op.
func (db *DB) RevokeToken(ctx context.Context, tokenId, userId string, expiresAt time.Time) error {
	coll := db.Collection(RevokedTokensCollection)

	_, err := coll.UpdateOne(
		ctx,
		bson.M{"_id": tokenId},
		bson.M{"$setOnInsert": bson.M{"userId": userId, "expiresAt": expiresAt.UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (db *DB) IsTokenRevoked(ctx context.Context, tokenId string) (bool, error) {
	coll := db.Collection(RevokedTokensCollection)

	count, err := coll.CountDocuments(ctx, bson.M{"_id": tokenId}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
