package lib

import (
	"context"
	"crs/src/config"
	"crs/src/types"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func testHold(code string, carId uint) *types.HoldPayload {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &types.HoldPayload{
		BookingCode:     code,
		CarID:           carId,
		UserID:          7,
		StartDate:       start,
		EndDate:         start.Add(48 * time.Hour),
		TotalPrice:      1_000_000,
		PaymentProvider: "stripe",
	}
}

func TestCreateHold(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	NewRedisClient(rdb)

	hold := testHold("BK-TEST00000001", 3)
	raw, err := json.Marshal(hold)
	assert.NoError(t, err)

	mock.ExpectSetNX(CarLockKey(3), hold.BookingCode, config.HOLD_TTL).SetVal(true)
	mock.ExpectSet(HoldKey(hold.BookingCode), raw, config.HOLD_TTL).SetVal("OK")

	err = CreateHold(context.Background(), hold, config.HOLD_TTL)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHoldLosesRace(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	NewRedisClient(rdb)

	hold := testHold("BK-TEST00000002", 3)
	mock.ExpectSetNX(CarLockKey(3), hold.BookingCode, config.HOLD_TTL).SetVal(false)

	err := CreateHold(context.Background(), hold, config.HOLD_TTL)
	assert.ErrorIs(t, err, types.ErrCarNotAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHoldMissing(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	NewRedisClient(rdb)

	mock.ExpectGet(HoldKey("BK-UNKNOWN")).RedisNil()

	hold, err := GetHold(context.Background(), "BK-UNKNOWN")
	assert.NoError(t, err)
	assert.Nil(t, hold)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteHold(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	NewRedisClient(rdb)

	hold := testHold("BK-TEST00000003", 5)
	raw, err := json.Marshal(hold)
	assert.NoError(t, err)

	mock.ExpectGet(HoldKey(hold.BookingCode)).SetVal(string(raw))
	mock.ExpectDel(HoldKey(hold.BookingCode), CarLockKey(5)).SetVal(2)

	err = DeleteHold(context.Background(), hold.BookingCode)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteHoldAlreadyGone(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	NewRedisClient(rdb)

	mock.ExpectGet(HoldKey("BK-GONE")).RedisNil()

	err := DeleteHold(context.Background(), "BK-GONE")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarHeld(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	NewRedisClient(rdb)

	mock.ExpectExists(CarLockKey(9)).SetVal(1)
	held, err := CarHeld(context.Background(), 9)
	assert.NoError(t, err)
	assert.True(t, held)

	mock.ExpectExists(CarLockKey(10)).SetVal(0)
	held, err = CarHeld(context.Background(), 10)
	assert.NoError(t, err)
	assert.False(t, held)

	assert.NoError(t, mock.ExpectationsWereMet())
}
