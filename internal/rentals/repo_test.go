package rentals

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Wizhill05/car-rental/internal/cars"
	"github.com/Wizhill05/car-rental/pkg/db/models"
)

func setupRentalsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE cars (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  rate_per_day NUMERIC NOT NULL,
  available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL UNIQUE,
  license_no TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`,
		`CREATE TABLE rentals (
  id TEXT PRIMARY KEY,
  car_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  start_date DATETIME NOT NULL,
  end_date DATETIME NOT NULL,
  total_amount NUMERIC NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`,
		`CREATE TABLE reviews (
  id TEXT PRIMARY KEY,
  rental_id TEXT NOT NULL,
  rating INTEGER NOT NULL,
  comment TEXT,
  created_at DATETIME
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedCar(t *testing.T, db *gorm.DB, available bool) *models.Car {
	t.Helper()
	car := &models.Car{
		ID:         uuid.New(),
		Name:       "Civic",
		Type:       "Sedan",
		RatePerDay: decimal.NewFromInt(50),
		Available:  available,
	}
	require.NoError(t, db.Exec(
		"INSERT INTO cars (id, name, type, rate_per_day, available, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		car.ID, car.Name, car.Type, car.RatePerDay, car.Available, time.Now().UTC(), time.Now().UTC(),
	).Error)
	return car
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New(),
		Name:      "Dana",
		Phone:     "555-" + uuid.NewString()[:8],
		LicenseNo: "DL-" + uuid.NewString()[:8],
		Email:     uuid.NewString() + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedRental(t *testing.T, repo Repository, car *models.Car, user *models.User, start, end time.Time, active bool) *models.Rental {
	t.Helper()
	rental := &models.Rental{
		CarID:       car.ID,
		UserID:      user.ID,
		StartDate:   start,
		EndDate:     end,
		TotalAmount: decimal.NewFromInt(100),
		Active:      active,
	}
	require.NoError(t, repo.Create(context.Background(), rental))
	if !active {
		require.NoError(t, repo.(*repositoryImpl).db.
			Exec("UPDATE rentals SET active = 0 WHERE id = ?", rental.ID).Error)
	}
	return rental
}

func TestReserveIsCompareAndSet(t *testing.T) {
	db := setupRentalsTestDB(t)
	car := seedCar(t, db, true)
	carRepo := cars.NewRepository(db)
	now := time.Now().UTC()

	reserved, err := carRepo.ReserveWithTx(db, car.ID, now)
	require.NoError(t, err)
	assert.True(t, reserved, "first reservation must win")

	reserved, err = carRepo.ReserveWithTx(db, car.ID, now)
	require.NoError(t, err)
	assert.False(t, reserved, "second reservation must lose the race")

	loaded, err := carRepo.FindByID(context.Background(), car.ID)
	require.NoError(t, err)
	assert.False(t, loaded.Available)
}

func TestMarkAvailableIsIdempotent(t *testing.T) {
	db := setupRentalsTestDB(t)
	car := seedCar(t, db, false)
	carRepo := cars.NewRepository(db)
	now := time.Now().UTC()

	healed, err := carRepo.MarkAvailable(context.Background(), car.ID, now)
	require.NoError(t, err)
	assert.True(t, healed)

	healed, err = carRepo.MarkAvailable(context.Background(), car.ID, now)
	require.NoError(t, err)
	assert.False(t, healed, "second heal must touch zero rows")
}

func TestListActiveFiltersAndOrders(t *testing.T) {
	db := setupRentalsTestDB(t)
	repo := NewRepository(db)
	car := seedCar(t, db, false)
	user := seedUser(t, db)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	ended := seedRental(t, repo, car, user, now.AddDate(0, 0, -10), now.AddDate(0, 0, -5), true)
	older := seedRental(t, repo, car, user, now.AddDate(0, 0, -1), now.AddDate(0, 0, 3), true)
	newer := seedRental(t, repo, car, user, now, now.AddDate(0, 0, 2), true)

	rows, err := repo.ListActive(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID, "newest start first")
	assert.Equal(t, older.ID, rows[1].ID)
	assert.Equal(t, "Civic", rows[0].CarName)
	assert.Equal(t, user.Phone, rows[0].UserPhone)

	for _, row := range rows {
		assert.NotEqual(t, ended.ID, row.ID, "ended rentals are not active")
	}
}

func TestListHistoryFlagsReviews(t *testing.T) {
	db := setupRentalsTestDB(t)
	repo := NewRepository(db)
	car := seedCar(t, db, false)
	user := seedUser(t, db)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	reviewed := seedRental(t, repo, car, user, now.AddDate(0, 0, -4), now.AddDate(0, 0, -2), true)
	bare := seedRental(t, repo, car, user, now.AddDate(0, 0, -2), now.AddDate(0, 0, 1), true)
	require.NoError(t, db.Exec(
		"INSERT INTO reviews (id, rental_id, rating, created_at) VALUES (?, ?, ?, ?)",
		uuid.New(), reviewed.ID, 5, now,
	).Error)

	rows, err := repo.ListHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[uuid.UUID]HistoryRental{}
	for _, row := range rows {
		byID[row.ID] = row
	}
	assert.True(t, byID[reviewed.ID].HasReview)
	assert.False(t, byID[bare.ID].HasReview)
}

func TestListByUser(t *testing.T) {
	db := setupRentalsTestDB(t)
	repo := NewRepository(db)
	car := seedCar(t, db, false)
	renter := seedUser(t, db)
	other := seedUser(t, db)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	mine := seedRental(t, repo, car, renter, now, now.AddDate(0, 0, 2), true)
	seedRental(t, repo, car, other, now, now.AddDate(0, 0, 2), true)

	rows, err := repo.ListByUser(context.Background(), renter.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, mine.ID, rows[0].ID)
	assert.Equal(t, "Civic", rows[0].CarName)
}

func TestLatestActiveEnd(t *testing.T) {
	db := setupRentalsTestDB(t)
	repo := NewRepository(db)
	car := seedCar(t, db, false)
	user := seedUser(t, db)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	end, err := repo.LatestActiveEnd(context.Background(), car.ID, now)
	require.NoError(t, err)
	assert.Nil(t, end, "no rentals means no holding end date")

	seedRental(t, repo, car, user, now.AddDate(0, 0, -10), now.AddDate(0, 0, -5), true)
	end, err = repo.LatestActiveEnd(context.Background(), car.ID, now)
	require.NoError(t, err)
	assert.Nil(t, end, "past rentals do not hold the car")

	far := seedRental(t, repo, car, user, now, now.AddDate(0, 0, 7), true)
	seedRental(t, repo, car, user, now, now.AddDate(0, 0, 3), true)
	seedRental(t, repo, car, user, now, now.AddDate(0, 0, 9), false)

	end, err = repo.LatestActiveEnd(context.Background(), car.ID, now)
	require.NoError(t, err)
	require.NotNil(t, end)
	assert.WithinDuration(t, far.EndDate, *end, time.Second, "furthest active end wins; inactive rentals are ignored")
}
