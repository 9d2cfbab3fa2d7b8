package models

import (
	"crs/src/types"
)

type Car struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	Brand        string          `json:"brand,omitempty"`
	Model        string          `json:"model,omitempty"`
	Year         uint            `json:"year,omitempty"`
	LicensePlate string          `gorm:"uniqueIndex" json:"license_plate,omitempty"`
	Seats        uint8           `json:"seats,omitempty"`
	Description  string          `json:"description,omitempty"`
	DailyPrice   int64           `json:"daily_price,omitempty"`
	PhotoKey     string          `json:"photo_key,omitempty"`
	Status       types.CarStatus `gorm:"default:'available'" json:"status,omitempty"`

	Bookings []Booking `gorm:"foreignKey:car_id" json:"bookings,omitempty"`

	types.Timestamps
}
