package utils

import (
	"crs/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRentalDays(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	days, err := RentalDays(start, start.Add(72*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(3), days)

	days, err = RentalDays(start, start.Add(72*time.Hour+3*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(4), days)

	days, err = RentalDays(start, start.Add(time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), days)
}

func TestRentalDaysRejectsBadRanges(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	_, err := RentalDays(start, start)
	assert.ErrorIs(t, err, types.ErrInvalidDateRange)

	_, err = RentalDays(start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, types.ErrInvalidDateRange)
}

func TestComputePrice(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	total, err := ComputePrice(500_000, start, end)
	assert.NoError(t, err)
	assert.Equal(t, int64(1_000_000), total)

	total, err = ComputePrice(500_000, start, end.Add(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(1_500_000), total)

	_, err = ComputePrice(500_000, end, start)
	assert.ErrorIs(t, err, types.ErrInvalidDateRange)
}
