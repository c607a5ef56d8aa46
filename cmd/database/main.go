package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/lealre/carsdb-backend/internal/config"
	"github.com/lealre/carsdb-backend/internal/logx"
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/rs/zerolog"
)

func main() {
	indexes := flag.Bool("indexes", false, "create indexes in the database if they do not exist")
	resetIndexes := flag.Bool("reset", false, "Delete the indexes and recreate it")
	deleteIndexes := flag.Bool("delete", false, "Delete the indexes")
	admin := flag.String("admin", "", "grant admin to the user with this email")
	revokeAdmin := flag.String("revoke-admin", "", "revoke admin from the user with this email")
	seed := flag.String("seed", "", "import cars from a JSON file")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logx.New(os.Stdout, cfg.Logging.Level, "console")

	ctx := context.Background()
	dbClient, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer dbClient.Disconnect(ctx)

	db := mongodb.NewDB(dbClient, cfg.Mongo.Database)

	switch {
	case *indexes:
		if *deleteIndexes {
			if err := mongodb.DeleteAllIndexes(ctx, db.Database(), logger); err != nil {
				logger.Fatal().Err(err).Msg("failed to delete indexes")
			}
			logger.Info().Msg("all indexes deleted")
			return
		}

		if err := mongodb.CreateAllIndexes(ctx, db.Database(), *resetIndexes, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to create indexes")
		}
		logger.Info().Msg("indexes command ran successfully")

	case *admin != "":
		if err := setAdmin(ctx, db, *admin, true, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to grant admin")
		}

	case *revokeAdmin != "":
		if err := setAdmin(ctx, db, *revokeAdmin, false, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to revoke admin")
		}

	case *seed != "":
		cars, err := readSeedFile(*seed)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to read seed file")
		}
		inserted, err := db.AddCars(ctx, cars)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to import cars")
		}
		logger.Info().Int("cars", inserted).Str("file", *seed).Msg("seed imported")

	default:
		fmt.Println("No valid command specified.")
		flag.Usage()
	}
}

// setAdmin flips isAdmin on the profile. The user must have signed in at
// least once so that the profile exists.
func setAdmin(ctx context.Context, db *mongodb.DB, email string, isAdmin bool, logger zerolog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := db.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return fmt.Errorf("no profile for %s, the user must sign up first", email)
		}
		return err
	}

	if err := db.UpdateUserField(ctx, user.Id, "isAdmin", isAdmin); err != nil {
		return err
	}
	logger.Info().Str("email", email).Bool("isAdmin", isAdmin).Msg("admin flag updated")
	return nil
}

type seedCar struct {
	Id     string   `json:"id"`
	Name   string   `json:"name"`
	Image  string   `json:"image"`
	Series string   `json:"series"`
	Tags   []string `json:"tags"`
}

// readSeedFile parses a JSON array of cars. Ratings always start empty.
func readSeedFile(path string) ([]mongodb.CarDb, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seeds []seedCar
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cars := make([]mongodb.CarDb, 0, len(seeds))
	for i, s := range seeds {
		if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Image) == "" {
			return nil, fmt.Errorf("car %d: name and image are required", i)
		}
		if !models.IsValidSeries(s.Series) {
			return nil, fmt.Errorf("car %d (%s): unknown series %q", i, s.Name, s.Series)
		}

		tags := []string{}
		for _, tag := range s.Tags {
			if tag = strings.TrimSpace(tag); tag != "" && !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
		cars = append(cars, mongodb.CarDb{Id: s.Id, Name: s.Name, Image: s.Image, Series: s.Series, Tags: tags})
	}
	return cars, nil
}
