package mongodb

import (
	"context"
	"fmt"

	"github.com/lealre/carsdb-backend/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CarsCollection          = "cars"
	UsersCollection         = "users"
	CredentialsCollection   = "credentials"
	RevokedTokensCollection = "revoked_tokens"
)

// DB wraps a client bound to one database. Every store operation in the
// service layer goes through it.
type DB struct {
	client *mongo.Client
	name   string
}

func NewDB(client *mongo.Client, name string) *DB {
	return &DB{client: client, name: name}
}

// Connect connects to MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Direct {
		opts.SetDirect(true)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}

func (db *DB) GetDatabaseName() string {
	return db.name
}

func (db *DB) Database() *mongo.Database {
	return db.client.Database(db.name)
}

func (db *DB) Collection(name string) *mongo.Collection {
	return db.Database().Collection(name)
}

func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

/*
RunTransaction runs fn inside a multi-document transaction.

The context handed to fn carries the session, so every collection call made
with it joins the transaction. The driver re-runs fn from the start on
transient errors (write conflicts included), which means reads done inside fn
always see the latest committed state. Any error returned by fn aborts the
transaction and is returned unchanged.
*/
func (db *DB) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := db.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
