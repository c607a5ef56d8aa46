package cars

import (
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/mongodb"
)

func MapDbCarToCar(carDb mongodb.CarDb) models.Car {
	tags := carDb.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Car{
		Id:               carDb.Id,
		Name:             carDb.Name,
		Image:            carDb.Image,
		Series:           carDb.Series,
		Tags:             tags,
		TotalRatingScore: carDb.TotalRatingScore,
		RatingCount:      carDb.RatingCount,
		AddedAt:          carDb.AddedAt,
		UpdatedAt:        carDb.UpdatedAt,
	}
}

func MapDbCarsToCars(carsDb []mongodb.CarDb) []models.Car {
	cars := make([]models.Car, len(carsDb))
	for i, carDb := range carsDb {
		cars[i] = MapDbCarToCar(carDb)
	}
	return cars
}
