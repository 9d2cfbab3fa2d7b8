package scopes

import (
	"crs/src/types"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

// AvailableCars keeps only cars a renter can book right now.
func AvailableCars(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", types.CAR_AVAILABLE)
}

func WithBookingStatus(statuses ...types.BookingStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status IN ?", statuses)
	}
}
