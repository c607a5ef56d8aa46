// Package servicetest provides an in-memory stand-in for mongodb.DB so the
// service protocols can be tested without a database. Transactions are
// serialized and rolled back on error.
package servicetest

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lealre/carsdb-backend/internal/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type txKey struct{}

type Store struct {
	mu sync.Mutex

	cars    map[string]mongodb.CarDb
	users   map[string]mongodb.UserDb
	creds   map[string]mongodb.CredentialDb
	revoked map[string]time.Time
	nextId  int

	// TxErr, when set, is returned by RunTransaction after fn succeeds, as if
	// the commit failed. Nothing fn wrote is kept.
	TxErr error
	// Transactions counts calls to RunTransaction.
	Transactions int
}

func New() *Store {
	return &Store{
		cars:    map[string]mongodb.CarDb{},
		users:   map[string]mongodb.UserDb{},
		creds:   map[string]mongodb.CredentialDb{},
		revoked: map[string]time.Time{},
	}
}

type snapshot struct {
	cars    map[string]mongodb.CarDb
	users   map[string]mongodb.UserDb
	creds   map[string]mongodb.CredentialDb
	revoked map[string]time.Time
}

func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transactions++

	before := s.snapshot()
	err := fn(context.WithValue(ctx, txKey{}, true))
	if err == nil {
		err = s.TxErr
	}
	if err != nil {
		s.cars, s.users, s.creds, s.revoked = before.cars, before.users, before.creds, before.revoked
	}
	return err
}

func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		cars:    make(map[string]mongodb.CarDb, len(s.cars)),
		users:   make(map[string]mongodb.UserDb, len(s.users)),
		creds:   maps.Clone(s.creds),
		revoked: maps.Clone(s.revoked),
	}
	for id, car := range s.cars {
		car.Tags = slices.Clone(car.Tags)
		snap.cars[id] = car
	}
	for id, user := range s.users {
		snap.users[id] = cloneUser(user)
	}
	return snap
}

func cloneUser(user mongodb.UserDb) mongodb.UserDb {
	user.Ratings = maps.Clone(user.Ratings)
	user.Wishlist = slices.Clone(user.Wishlist)
	user.OwnedCars = slices.Clone(user.OwnedCars)
	return user
}

func (s *Store) newId() string {
	s.nextId++
	return fmt.Sprintf("%024x", s.nextId)
}

// ----- Cars -----

func (s *Store) AddCar(ctx context.Context, car mongodb.CarDb) (mongodb.CarDb, error) {
	defer s.lock(ctx)()

	car.Id = s.newId()
	if car.Tags == nil {
		car.Tags = []string{}
	}
	now := time.Now().UTC()
	car.AddedAt = &now
	car.UpdatedAt = &now
	s.cars[car.Id] = car
	return car, nil
}

// PutCar stores car as is, for test setup.
func (s *Store) PutCar(car mongodb.CarDb) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cars[car.Id] = car
}

func (s *Store) GetCarById(ctx context.Context, id string) (mongodb.CarDb, error) {
	defer s.lock(ctx)()

	car, ok := s.cars[id]
	if !ok {
		return mongodb.CarDb{}, mongodb.ErrRecordNotFound
	}
	car.Tags = slices.Clone(car.Tags)
	return car, nil
}

func (s *Store) GetCars(ctx context.Context, _ bson.M, _ ...*options.FindOptions) ([]mongodb.CarDb, error) {
	defer s.lock(ctx)()

	ids := slices.Sorted(maps.Keys(s.cars))
	cars := make([]mongodb.CarDb, 0, len(ids))
	for _, id := range ids {
		car := s.cars[id]
		car.Tags = slices.Clone(car.Tags)
		cars = append(cars, car)
	}
	return cars, nil
}

func (s *Store) GetCarsByIds(ctx context.Context, ids []string) ([]mongodb.CarDb, error) {
	defer s.lock(ctx)()

	cars := []mongodb.CarDb{}
	for _, id := range ids {
		if car, ok := s.cars[id]; ok {
			cars = append(cars, car)
		}
	}
	return cars, nil
}

func (s *Store) CarExists(ctx context.Context, id string) (bool, error) {
	defer s.lock(ctx)()
	_, ok := s.cars[id]
	return ok, nil
}

func (s *Store) UpdateCarFields(ctx context.Context, id string, update mongodb.CarFieldsUpdate) (mongodb.CarDb, error) {
	defer s.lock(ctx)()

	car, ok := s.cars[id]
	if !ok {
		return mongodb.CarDb{}, mongodb.ErrRecordNotFound
	}
	if update.Name != nil {
		car.Name = *update.Name
	}
	if update.Image != nil {
		car.Image = *update.Image
	}
	if update.Series != nil {
		car.Series = *update.Series
	}
	now := time.Now().UTC()
	car.UpdatedAt = &now
	s.cars[id] = car
	return car, nil
}

func (s *Store) UpdateCarRating(ctx context.Context, id string, totalRatingScore float64, ratingCount int) error {
	defer s.lock(ctx)()

	car, ok := s.cars[id]
	if !ok {
		return mongodb.ErrRecordNotFound
	}
	car.TotalRatingScore = totalRatingScore
	car.RatingCount = ratingCount
	s.cars[id] = car
	return nil
}

func (s *Store) AddTagToCars(ctx context.Context, ids []string, tag string) (int, error) {
	defer s.lock(ctx)()

	matched := 0
	for _, id := range ids {
		car, ok := s.cars[id]
		if !ok {
			continue
		}
		matched++
		if !slices.Contains(car.Tags, tag) {
			car.Tags = append(slices.Clone(car.Tags), tag)
		}
		s.cars[id] = car
	}
	return matched, nil
}

// DeleteCar removes a car, simulating a concurrent delete.
func (s *Store) DeleteCar(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cars, id)
}

// ----- Users -----

func (s *Store) CreateUser(ctx context.Context, user mongodb.UserDb) (mongodb.UserDb, error) {
	defer s.lock(ctx)()

	if _, ok := s.users[user.Id]; ok {
		return mongodb.UserDb{}, mongodb.ErrDuplicateRecord
	}
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
	s.users[user.Id] = cloneUser(user)
	return user, nil
}

func (s *Store) GetUserById(ctx context.Context, id string) (mongodb.UserDb, error) {
	defer s.lock(ctx)()

	user, ok := s.users[id]
	if !ok {
		return mongodb.UserDb{}, mongodb.ErrRecordNotFound
	}
	return cloneUser(user), nil
}

func (s *Store) SetUserRating(ctx context.Context, userId, carId string, rating float64) error {
	return s.updateUser(ctx, userId, func(u *mongodb.UserDb) {
		if u.Ratings == nil {
			u.Ratings = map[string]float64{}
		}
		u.Ratings[carId] = rating
	})
}

func (s *Store) UnsetUserRating(ctx context.Context, userId, carId string) error {
	return s.updateUser(ctx, userId, func(u *mongodb.UserDb) {
		delete(u.Ratings, carId)
	})
}

func (s *Store) AddToUserSet(ctx context.Context, userId, field, carId string) error {
	return s.updateUser(ctx, userId, func(u *mongodb.UserDb) {
		set := userSet(u, field)
		if !slices.Contains(*set, carId) {
			*set = append(*set, carId)
		}
	})
}

func (s *Store) RemoveFromUserSet(ctx context.Context, userId, field, carId string) error {
	return s.updateUser(ctx, userId, func(u *mongodb.UserDb) {
		set := userSet(u, field)
		*set = slices.DeleteFunc(*set, func(id string) bool { return id == carId })
	})
}

func userSet(u *mongodb.UserDb, field string) *[]string {
	if field == mongodb.OwnedCarsField {
		return &u.OwnedCars
	}
	return &u.Wishlist
}

func (s *Store) updateUser(ctx context.Context, id string, fn func(u *mongodb.UserDb)) error {
	defer s.lock(ctx)()

	user, ok := s.users[id]
	if !ok {
		return mongodb.ErrRecordNotFound
	}
	user = cloneUser(user)
	fn(&user)
	user.UpdatedAt = time.Now().UTC()
	s.users[id] = user
	return nil
}

// ----- Credentials -----

func (s *Store) CreateCredential(ctx context.Context, email, passwordHash string) (mongodb.CredentialDb, error) {
	defer s.lock(ctx)()

	for _, cred := range s.creds {
		if strings.EqualFold(cred.Email, email) {
			return mongodb.CredentialDb{}, mongodb.ErrDuplicateRecord
		}
	}
	cred := mongodb.CredentialDb{
		Id:           s.newId(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.creds[cred.Id] = cred
	return cred, nil
}

func (s *Store) GetCredentialByEmail(ctx context.Context, email string) (mongodb.CredentialDb, error) {
	defer s.lock(ctx)()

	for _, cred := range s.creds {
		if strings.EqualFold(cred.Email, email) {
			return cred, nil
		}
	}
	return mongodb.CredentialDb{}, mongodb.ErrRecordNotFound
}

func (s *Store) TouchCredentialLogin(ctx context.Context, id string) error {
	defer s.lock(ctx)()

	cred, ok := s.creds[id]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	cred.LastLoginAt = &now
	s.creds[id] = cred
	return nil
}

func (s *Store) RevokeToken(ctx context.Context, tokenId, _ string, expiresAt time.Time) error {
	defer s.lock(ctx)()
	if _, ok := s.revoked[tokenId]; !ok {
		s.revoked[tokenId] = expiresAt
	}
	return nil
}

func (s *Store) IsTokenRevoked(ctx context.Context, tokenId string) (bool, error) {
	defer s.lock(ctx)()
	_, ok := s.revoked[tokenId]
	return ok, nil
}
