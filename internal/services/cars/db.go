package cars

import (
	"context"

	"github.com/lealre/carsdb-backend/internal/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the subset of *mongodb.DB the catalog curation needs.
type Store interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	AddCar(ctx context.Context, car mongodb.CarDb) (mongodb.CarDb, error)
	GetCarById(ctx context.Context, id string) (mongodb.CarDb, error)
	GetCars(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]mongodb.CarDb, error)
	GetCarsByIds(ctx context.Context, ids []string) ([]mongodb.CarDb, error)
	UpdateCarFields(ctx context.Context, id string, update mongodb.CarFieldsUpdate) (mongodb.CarDb, error)
	AddTagToCars(ctx context.Context, ids []string, tag string) (int, error)
}

// CarsByIdsGetter is enough to resolve a user's collections into cars.
type CarsByIdsGetter interface {
	GetCarsByIds(ctx context.Context, ids []string) ([]mongodb.CarDb, error)
}

var _ Store = (*mongodb.DB)(nil)
