package cars

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/lealre/carsdb-backend/internal/logx"
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/lealre/carsdb-backend/internal/state"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateCar(db Store, ctx context.Context, req CreateCarRequest) (state.ItemAdded, error) {
	name := strings.TrimSpace(req.Name)
	image := strings.TrimSpace(req.Image)
	if name == "" || image == "" || req.Series == "" {
		return state.ItemAdded{}, ErrMissingFields
	}
	if !models.IsValidSeries(req.Series) {
		return state.ItemAdded{}, ErrInvalidSeries
	}

	carDb, err := db.AddCar(ctx, mongodb.CarDb{
		Name:   name,
		Image:  image,
		Series: req.Series,
		Tags:   []string{},
	})
	if err != nil {
		return state.ItemAdded{}, err
	}

	logx.FromContext(ctx).Info().Str("car_id", carDb.Id).Msg("car created")
	return state.ItemAdded{Car: MapDbCarToCar(carDb)}, nil
}

func UpdateCar(db Store, ctx context.Context, id string, req UpdateCarRequest) (state.ItemUpdated, error) {
	if req.Name == nil && req.Image == nil && req.Series == nil {
		return state.ItemUpdated{}, ErrNoFieldsToUpdate
	}

	update := mongodb.CarFieldsUpdate{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return state.ItemUpdated{}, ErrMissingFields
		}
		update.Name = &name
	}
	if req.Image != nil {
		image := strings.TrimSpace(*req.Image)
		if image == "" {
			return state.ItemUpdated{}, ErrMissingFields
		}
		update.Image = &image
	}
	if req.Series != nil {
		if !models.IsValidSeries(*req.Series) {
			return state.ItemUpdated{}, ErrInvalidSeries
		}
		update.Series = req.Series
	}

	carDb, err := db.UpdateCarFields(ctx, id, update)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return state.ItemUpdated{}, ErrCarNotFound
		}
		return state.ItemUpdated{}, err
	}

	return state.ItemUpdated{Car: MapDbCarToCar(carDb)}, nil
}

// ListCars returns the whole catalog ordered by name. Callers re-sort.
func ListCars(db Store, ctx context.Context) ([]models.Car, error) {
	carsDb, err := db.GetCars(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return MapDbCarsToCars(carsDb), nil
}

func GetCar(db Store, ctx context.Context, id string) (models.Car, error) {
	carDb, err := db.GetCarById(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return models.Car{}, ErrCarNotFound
		}
		return models.Car{}, err
	}
	return MapDbCarToCar(carDb), nil
}

// GetCarsByIds keeps the order of ids and skips ids that no longer exist.
func GetCarsByIds(db CarsByIdsGetter, ctx context.Context, ids []string) ([]models.Car, error) {
	carsDb, err := db.GetCarsByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	byId := make(map[string]mongodb.CarDb, len(carsDb))
	for _, carDb := range carsDb {
		byId[carDb.Id] = carDb
	}
	cars := make([]models.Car, 0, len(ids))
	for _, id := range ids {
		if carDb, ok := byId[id]; ok {
			cars = append(cars, MapDbCarToCar(carDb))
		}
	}
	return cars, nil
}

/*
ApplyTag unions tag into every selected car as a single all-or-nothing batch.

The bulk write runs inside a transaction; when any selected id does not match
a car the transaction is aborted and no car is tagged. Cars that already carry
the tag are matched but left unchanged.
*/
func ApplyTag(db Store, ctx context.Context, carIds []string, tag string) (state.ItemTagged, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return state.ItemTagged{}, ErrBlankTag
	}

	ids := dedupe(carIds)
	if len(ids) == 0 {
		return state.ItemTagged{}, ErrEmptySelection
	}

	err := db.RunTransaction(ctx, func(ctx context.Context) error {
		matched, err := db.AddTagToCars(ctx, ids, tag)
		if err != nil {
			return err
		}
		if matched < len(ids) {
			return ErrCarNotFound
		}
		return nil
	})
	if err != nil {
		return state.ItemTagged{}, err
	}

	logx.FromContext(ctx).Info().Str("tag", tag).Int("cars", len(ids)).Msg("tag applied")
	return state.ItemTagged{CarIDs: ids, Tag: tag}, nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
