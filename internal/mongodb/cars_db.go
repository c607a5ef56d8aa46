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

// ----- Types for the database -----

type CarDb struct {
	Id               string     `json:"id" bson:"_id"`
	Name             string     `json:"name" bson:"name"`
	Image            string     `json:"image" bson:"image"`
	Series           string     `json:"series" bson:"series"`
	Tags             []string   `json:"tags" bson:"tags"`
	TotalRatingScore float64    `json:"totalRatingScore" bson:"totalRatingScore"`
	RatingCount      int        `json:"ratingCount" bson:"ratingCount"`
	AddedAt          *time.Time `json:"addedAt,omitempty" bson:"addedAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CarFieldsUpdate holds the admin-editable fields. Nil fields are left as is.
type CarFieldsUpdate struct {
	Name   *string
	Image  *string
	Series *string
}

// ----- Methods for the database -----

func (db *DB) AddCar(ctx context.Context, car CarDb) (CarDb, error) {
	coll := db.Collection(CarsCollection)

	car.Id = primitive.NewObjectID().Hex()
	if car.Tags == nil {
		car.Tags = []string{}
	}
	now := time.Now().UTC()
	car.AddedAt = &now
	car.UpdatedAt = &now

	if _, err := coll.InsertOne(ctx, car); err != nil {
		return CarDb{}, err
	}
	return car, nil
}

// AddCars inserts already-built documents, keeping their ids when set.
func (db *DB) AddCars(ctx context.Context, cars []CarDb) (int, error) {
	if len(cars) == 0 {
		return 0, nil
	}
	coll := db.Collection(CarsCollection)

	now := time.Now().UTC()
	docs := make([]interface{}, len(cars))
	for i, car := range cars {
		if car.Id == "" {
			car.Id = primitive.NewObjectID().Hex()
		}
		if car.Tags == nil {
			car.Tags = []string{}
		}
		car.AddedAt = &now
		car.UpdatedAt = &now
		docs[i] = car
	}

	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (db *DB) GetCarById(ctx context.Context, id string) (CarDb, error) {
	coll := db.Collection(CarsCollection)

	var carDb CarDb
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&carDb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CarDb{}, ErrRecordNotFound
		}
		return CarDb{}, err
	}
	return carDb, nil
}

// GetCars returns the cars matching filter. A nil filter matches every car.
func (db *DB) GetCars(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]CarDb, error) {
	coll := db.Collection(CarsCollection)

	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return []CarDb{}, err
	}
	defer cursor.Close(ctx)

	var cars []CarDb
	if err := cursor.All(ctx, &cars); err != nil {
		return []CarDb{}, err
	}
	return cars, nil
}

func (db *DB) GetCarsByIds(ctx context.Context, ids []string) ([]CarDb, error) {
	if len(ids) == 0 {
		return []CarDb{}, nil
	}
	return db.GetCars(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (db *DB) CarExists(ctx context.Context, id string) (bool, error) {
	coll := db.Collection(CarsCollection)

	// Only ask MongoDB for the _id field
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})

	err := coll.FindOne(ctx, bson.M{"_id": id}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateCarFields sets the non-nil fields and returns the updated document.
func (db *DB) UpdateCarFields(ctx context.Context, id string, update CarFieldsUpdate) (CarDb, error) {
	coll := db.Collection(CarsCollection)

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.Series != nil {
		set["series"] = *update.Series
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var carDb CarDb
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&carDb)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CarDb{}, ErrRecordNotFound
		}
		return CarDb{}, err
	}
	return carDb, nil
}

func (db *DB) UpdateCarRating(ctx context.Context, id string, totalRatingScore float64, ratingCount int) error {
	coll := db.Collection(CarsCollection)

	update := bson.M{
		"$set": bson.M{
			"totalRatingScore": totalRatingScore,
			"ratingCount":      ratingCount,
			"updatedAt":        time.Now().UTC(),
		},
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

/*
AddTagToCars unions tag into the tags array of every car in ids with one
ordered bulk write. It returns how many documents matched; callers running
inside a transaction compare it with len(ids) to decide whether to abort.
*/
func (db *DB) AddTagToCars(ctx context.Context, ids []string, tag string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	coll := db.Collection(CarsCollection)

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, len(ids))
	for i, id := range ids {
		writes[i] = mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{
				"$addToSet": bson.M{"tags": tag},
				"$set":      bson.M{"updatedAt": now},
			})
	}

	res, err := coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return 0, err
	}
	return int(res.MatchedCount), nil
}
