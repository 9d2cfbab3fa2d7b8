package utils

import (
	"context"
	"crs/src/lib"
	"crs/src/models"
	"crs/src/types"
	"regexp"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenerateBookingCode(t *testing.T) {
	pattern := regexp.MustCompile(`^BK-[0-9A-F]{12}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GenerateBookingCode()
		assert.Regexp(t, pattern, code)
		assert.False(t, seen[code], "codes must not repeat")
		seen[code] = true
	}
}

func seedCar(t *testing.T, d *gorm.DB, status types.CarStatus) *models.Car {
	t.Helper()
	car := models.Car{
		Brand:        "Toyota",
		Model:        "Vios",
		Year:         2023,
		LicensePlate: "51K-123.45",
		Seats:        5,
		DailyPrice:   500_000,
		Status:       status,
	}
	require.NoError(t, d.Create(&car).Error)
	return &car
}

func TestHasOverlappingBooking(t *testing.T) {
	d := newTestDB(t)
	car := seedCar(t, d, types.CAR_AVAILABLE)

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)
	booking := models.Booking{
		Code:      "BK-OVERLAP0001",
		UserID:    1,
		CarID:     car.ID,
		StartDate: &start,
		EndDate:   &end,
		Status:    types.BOOKING_CONFIRMED,
	}
	require.NoError(t, d.Create(&booking).Error)

	overlap, err := HasOverlappingBooking(d, car.ID, start.Add(24*time.Hour), end.Add(24*time.Hour))
	assert.NoError(t, err)
	assert.True(t, overlap)

	// Back-to-back intervals do not overlap.
	overlap, err = HasOverlappingBooking(d, car.ID, end, end.Add(48*time.Hour))
	assert.NoError(t, err)
	assert.False(t, overlap)

	// A completed booking no longer blocks the car.
	require.NoError(t, d.Model(&booking).Update("status", types.BOOKING_COMPLETED).Error)
	overlap, err = HasOverlappingBooking(d, car.ID, start, end)
	assert.NoError(t, err)
	assert.False(t, overlap)
}

func testCommitHold(car *models.Car, code string) *types.HoldPayload {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	return &types.HoldPayload{
		BookingCode:     code,
		CarID:           car.ID,
		UserID:          7,
		StartDate:       start,
		EndDate:         start.Add(48 * time.Hour),
		TotalPrice:      1_000_000,
		PaymentProvider: "vnpay",
	}
}

func TestCommitBooking(t *testing.T) {
	d := newTestDB(t)
	car := seedCar(t, d, types.CAR_AVAILABLE)

	rdb, mock := redismock.NewClientMock()
	lib.NewRedisClient(rdb)
	hold := testCommitHold(car, "BK-COMMIT00001")
	mock.ExpectGet(lib.HoldKey(hold.BookingCode)).RedisNil()

	booking, err := CommitBooking(context.Background(), hold, "ref-123")
	require.NoError(t, err)
	assert.Equal(t, hold.BookingCode, booking.Code)
	assert.Equal(t, types.BOOKING_CONFIRMED, booking.Status)
	require.NotNil(t, booking.TransactionID)

	var storedCar models.Car
	require.NoError(t, d.First(&storedCar, car.ID).Error)
	assert.Equal(t, types.CAR_RENTED, storedCar.Status)

	var txn models.Transaction
	require.NoError(t, d.Where("booking_id = ?", booking.ID).First(&txn).Error)
	assert.Equal(t, types.TRANSACTION_COMPLETED, txn.Status)
	assert.Equal(t, "ref-123", txn.ReferenceID)
	assert.Equal(t, int64(1_000_000), txn.Amount)
	assert.NotNil(t, txn.PaidAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitBookingConflict(t *testing.T) {
	d := newTestDB(t)
	car := seedCar(t, d, types.CAR_AVAILABLE)

	hold := testCommitHold(car, "BK-COMMIT00002")
	existing := models.Booking{
		Code:      "BK-EXISTING001",
		UserID:    2,
		CarID:     car.ID,
		StartDate: &hold.StartDate,
		EndDate:   &hold.EndDate,
		Status:    types.BOOKING_CONFIRMED,
	}
	require.NoError(t, d.Create(&existing).Error)

	_, err := CommitBooking(context.Background(), hold, "ref-456")
	assert.ErrorIs(t, err, types.ErrBookingConflict)

	// Nothing from the aborted commit may stick.
	var count int64
	require.NoError(t, d.Model(&models.Booking{}).Where("code = ?", hold.BookingCode).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	var storedCar models.Car
	require.NoError(t, d.First(&storedCar, car.ID).Error)
	assert.Equal(t, types.CAR_AVAILABLE, storedCar.Status)
}

func TestPickupAndReturn(t *testing.T) {
	d := newTestDB(t)
	car := seedCar(t, d, types.CAR_RENTED)

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	booking := models.Booking{
		Code:      "BK-LIFECYCLE01",
		UserID:    7,
		CarID:     car.ID,
		StartDate: &start,
		EndDate:   &end,
		Status:    types.BOOKING_CONFIRMED,
	}
	require.NoError(t, d.Create(&booking).Error)

	picked, err := PickupCar(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_ONGOING, picked.Status)

	// A second pickup is rejected.
	_, err = PickupCar(booking.ID)
	assert.Error(t, err)

	returned, err := ReturnCar(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_COMPLETED, returned.Status)

	var storedCar models.Car
	require.NoError(t, d.First(&storedCar, car.ID).Error)
	assert.Equal(t, types.CAR_AVAILABLE, storedCar.Status)

	_, err = ReturnCar(booking.ID)
	assert.Error(t, err)

	_, err = PickupCar(99999)
	assert.ErrorIs(t, err, types.ErrBookingNotFound)
}
