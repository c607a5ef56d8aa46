package mongodb

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// DeleteAllIndexes deletes all indexes from all collections in the database
// (except the default _id_ index which cannot be deleted)
func DeleteAllIndexes(ctx context.Context, db *mongo.Database, logger zerolog.Logger) error {
	collections, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, collName := range collections {
		names, err := listIndexNames(ctx, db.Collection(collName))
		if err != nil {
			return fmt.Errorf("collection '%s': %w", collName, err)
		}
		for _, indexName := range names {
			if indexName == "_id_" {
				continue
			}
			if _, err := db.Collection(collName).Indexes().DropOne(ctx, indexName); err != nil {
				return fmt.Errorf("failed to delete index '%s' from collection '%s': %w", indexName, collName, err)
			}
			logger.Info().Str("collection", collName).Str("index", indexName).Msg("index deleted")
		}
	}

	return nil
}

// CreateAllIndexes creates the indexes for every collection. With reset the
// existing ones are dropped and recreated.
func CreateAllIndexes(ctx context.Context, db *mongo.Database, reset bool, logger zerolog.Logger) error {
	if err := CreateCredentialIndexes(ctx, db, reset, logger); err != nil {
		return fmt.Errorf("failed to create credential indexes: %w", err)
	}
	if err := CreateUserIndexes(ctx, db, reset, logger); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	if err := CreateCarIndexes(ctx, db, reset, logger); err != nil {
		return fmt.Errorf("failed to create car indexes: %w", err)
	}
	if err := CreateRevokedTokenIndexes(ctx, db, reset, logger); err != nil {
		return fmt.Errorf("failed to create revoked token indexes: %w", err)
	}
	return nil
}

// CreateCredentialIndexes enforces one identity per email, case-insensitive.
func CreateCredentialIndexes(ctx context.Context, db *mongo.Database, reset bool, logger zerolog.Logger) error {
	coll := db.Collection(CredentialsCollection)
	indexName := "email_unique"

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName(indexName).
			SetCollation(caseInsensitive),
	}
	return createIndexIfNotExists(ctx, coll, emailIndex, indexName, reset, logger)
}

func CreateUserIndexes(ctx context.Context, db *mongo.Database, reset bool, logger zerolog.Logger) error {
	coll := db.Collection(UsersCollection)
	indexName := "email_unique"

	// Exclude empty strings and null values from uniqueness constraint
	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName(indexName).
			SetCollation(caseInsensitive).
			SetPartialFilterExpression(bson.M{
				"$and": []bson.M{
					{"email": bson.M{"$type": "string"}},
					{"email": bson.M{"$gt": ""}},
				},
			}),
	}
	return createIndexIfNotExists(ctx, coll, emailIndex, indexName, reset, logger)
}

func CreateCarIndexes(ctx context.Context, db *mongo.Database, reset bool, logger zerolog.Logger) error {
	coll := db.Collection(CarsCollection)

	seriesIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "series", Value: 1}},
		Options: options.Index().SetName("series_1"),
	}
	if err := createIndexIfNotExists(ctx, coll, seriesIndex, "series_1", reset, logger); err != nil {
		return err
	}

	tagsIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "tags", Value: 1}},
		Options: options.Index().SetName("tags_1"),
	}
	return createIndexIfNotExists(ctx, coll, tagsIndex, "tags_1", reset, logger)
}

// CreateRevokedTokenIndexes lets MongoDB drop revoked tokens once they expire.
func CreateRevokedTokenIndexes(ctx context.Context, db *mongo.Database, reset bool, logger zerolog.Logger) error {
	coll := db.Collection(RevokedTokensCollection)
	indexName := "expiresAt_ttl"

	ttlIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().
			SetName(indexName).
			SetExpireAfterSeconds(0),
	}
	return createIndexIfNotExists(ctx, coll, ttlIndex, indexName, reset, logger)
}

// createIndexIfNotExists checks if an index exists and creates it if it doesn't
// If reset is true, it will delete the existing index and recreate it
func createIndexIfNotExists(
	ctx context.Context,
	coll *mongo.Collection,
	indexModel mongo.IndexModel,
	indexName string,
	reset bool,
	logger zerolog.Logger,
) error {
	names, err := listIndexNames(ctx, coll)
	if err != nil {
		return err
	}

	indexExists := false
	for _, name := range names {
		if name == indexName {
			indexExists = true
			break
		}
	}

	if indexExists {
		if !reset {
			logger.Debug().Str("collection", coll.Name()).Str("index", indexName).Msg("index already exists, skipping")
			return nil
		}
		if _, err := coll.Indexes().DropOne(ctx, indexName); err != nil {
			return fmt.Errorf("failed to delete index '%s': %w", indexName, err)
		}
		logger.Info().Str("collection", coll.Name()).Str("index", indexName).Msg("index deleted")
	}

	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create index '%s': %w", indexName, err)
	}

	logger.Info().Str("collection", coll.Name()).Str("index", indexName).Msg("index created")
	return nil
}

func listIndexNames(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			return nil, fmt.Errorf("failed to decode index: %w", err)
		}
		if name, ok := index["name"].(string); ok {
			names = append(names, name)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return names, nil
}
