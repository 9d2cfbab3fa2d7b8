package utils

import (
	"crs/src/types"
	"time"
)

const day = 24 * time.Hour

// RentalDays counts billable days between start and end. Partial days round
// up: a rental of 2 days and 3 hours bills 3 days. Zero-length and inverted
// ranges are rejected rather than billed as 0.
func RentalDays(start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, types.ErrInvalidDateRange
	}
	d := end.Sub(start)
	days := int64(d / day)
	if d%day > 0 {
		days++
	}
	return days, nil
}

func ComputePrice(dailyPrice int64, start, end time.Time) (int64, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return 0, err
	}
	return dailyPrice * days, nil
}
