package workers

import (
	"crs/src/config"
	"crs/src/db"
	"crs/src/lib"
	"crs/src/models"
	"crs/src/types"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&models.JobTask{}))
	db.NewDB(gormDB)
	return gormDB
}

func seedJob(t *testing.T, d *gorm.DB, code string) *models.JobTask {
	t.Helper()
	job := models.JobTask{
		ID:          uuid.New(),
		Name:        fmt.Sprintf("Hold_%s_Expiry", code),
		JobType:     "OneTimeJobStartDateTime",
		RunsAt:      time.Now().UTC().Add(config.HOLD_TTL),
		BookingCode: code,
		Payload:     types.JSONB{"booking_code": code},
		Status:      "pending",
		Topic:       "HoldExpiry",
	}
	require.NoError(t, d.Create(&job).Error)
	return &job
}

func TestOnHoldExpiryReleasesHold(t *testing.T) {
	d := newTestDB(t)
	seedJob(t, d, "BK-EXPIRE00001")

	hold := types.HoldPayload{
		BookingCode: "BK-EXPIRE00001",
		CarID:       4,
		UserID:      7,
	}
	raw, err := json.Marshal(&hold)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	lib.NewRedisClient(rdb)
	mock.ExpectGet(lib.HoldKey(hold.BookingCode)).SetVal(string(raw))
	mock.ExpectGet(lib.HoldKey(hold.BookingCode)).SetVal(string(raw))
	mock.ExpectDel(lib.HoldKey(hold.BookingCode), lib.CarLockKey(4)).SetVal(2)

	require.NoError(t, OnHoldExpiry(hold.BookingCode))

	assert.NoError(t, mock.ExpectationsWereMet())
	var job models.JobTask
	require.NoError(t, d.Where("booking_code = ?", hold.BookingCode).First(&job).Error)
	assert.Equal(t, "done", job.Status)
}

func TestOnHoldExpiryAlreadySettled(t *testing.T) {
	d := newTestDB(t)
	seedJob(t, d, "BK-EXPIRE00002")

	rdb, mock := redismock.NewClientMock()
	lib.NewRedisClient(rdb)
	mock.ExpectGet(lib.HoldKey("BK-EXPIRE00002")).RedisNil()

	require.NoError(t, OnHoldExpiry("BK-EXPIRE00002"))

	assert.NoError(t, mock.ExpectationsWereMet())
	var job models.JobTask
	require.NoError(t, d.Where("booking_code = ?", "BK-EXPIRE00002").First(&job).Error)
	assert.Equal(t, "done", job.Status)
}

func TestScheduleHoldExpiry(t *testing.T) {
	d := newTestDB(t)

	jobId, err := ScheduleHoldExpiry("BK-SCHED000001", 4, config.HOLD_TTL)
	require.NoError(t, err)
	assert.NotEmpty(t, jobId)

	var job models.JobTask
	require.NoError(t, d.Where("booking_code = ?", "BK-SCHED000001").First(&job).Error)
	assert.Equal(t, "pending", job.Status)
	assert.Equal(t, "HoldExpiry", job.Topic)
	assert.Equal(t, jobId, job.ID.String())
	assert.WithinDuration(t, time.Now().UTC().Add(config.HOLD_TTL), job.RunsAt, time.Minute)
}
