package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserDb is the profile document, keyed by the identity subject id.
type UserDb struct {
	Id        string             `json:"id" bson:"_id"`
	Email     string             `json:"email" bson:"email"`
	IsAdmin   bool               `json:"isAdmin" bson:"isAdmin"`
	Ratings   map[string]float64 `json:"ratings" bson:"ratings"`
	Wishlist  []string           `json:"wishlist" bson:"wishlist"`
	OwnedCars []string           `json:"ownedCars" bson:"ownedCars"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Profile set fields that can be toggled.
const (
	WishlistField  = "wishlist"
	OwnedCarsField = "ownedCars"
)

func (db *DB) CreateUser(ctx context.Context, user UserDb) (UserDb, error) {
	coll := db.Collection(UsersCollection)

	if user.Ratings == nil {
		user.Ratings = map[string]float64{}
	}
	if user.Wishlist == nil {
		user.Wishlist = []string{}
	}
	if user.OwnedCars == nil {
		user.OwnedCars = []string{}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, user); err != nil {
		return UserDb{}, err
	}
	return user, nil
}

func (db *DB) GetUserById(ctx context.Context, id string) (UserDb, error) {
	coll := db.Collection(UsersCollection)
	var userDb UserDb
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&userDb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserDb{}, ErrRecordNotFound
		}
		return UserDb{}, err
	}

	return userDb, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (UserDb, error) {
	coll := db.Collection(UsersCollection)

	opts := options.FindOne().SetCollation(&options.Collation{Locale: "en", Strength: 2})

	var userDb UserDb
	if err := coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&userDb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserDb{}, ErrRecordNotFound
		}
		return UserDb{}, err
	}
	return userDb, nil
}

// UpdateUserField sets a single (possibly dotted) field path on a profile.
func (db *DB) UpdateUserField(ctx context.Context, id, fieldPath string, value any) error {
	return db.updateUser(ctx, id, bson.M{"$set": bson.M{fieldPath: value}})
}

func (db *DB) SetUserRating(ctx context.Context, userId, carId string, rating float64) error {
	return db.updateUser(ctx, userId, bson.M{"$set": bson.M{"ratings." + carId: rating}})
}

func (db *DB) UnsetUserRating(ctx context.Context, userId, carId string) error {
	return db.updateUser(ctx, userId, bson.M{"$unset": bson.M{"ratings." + carId: ""}})
}

// AddToUserSet has set-union semantics: adding a present id is a no-op.
func (db *DB) AddToUserSet(ctx context.Context, userId, field, carId string) error {
	return db.updateUser(ctx, userId, bson.M{"$addToSet": bson.M{field: carId}})
}

// RemoveFromUserSet removes every occurrence of carId; absent ids are a no-op.
func (db *DB) RemoveFromUserSet(ctx context.Context, userId, field, carId string) error {
	return db.updateUser(ctx, userId, bson.M{"$pull": bson.M{field: carId}})
}

func (db *DB) updateUser(ctx context.Context, id string, update bson.M) error {
	coll := db.Collection(UsersCollection)

	if set, ok := update["$set"].(bson.M); ok {
		set["updatedAt"] = time.Now().UTC()
	} else {
		update["$set"] = bson.M{"updatedAt": time.Now().UTC()}
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
