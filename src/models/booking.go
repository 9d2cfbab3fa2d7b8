package models

import (
	"crs/src/types"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	Code          string              `gorm:"uniqueIndex" json:"code,omitempty"`
	UserID        uint                `json:"user_id,omitempty"`
	CarID         uint                `json:"car_id,omitempty"`
	StartDate     *time.Time          `json:"start_date,omitempty"`
	EndDate       *time.Time          `json:"end_date,omitempty"`
	PickupAddress string              `json:"pickup_address,omitempty"`
	ReturnAddress string              `json:"return_address,omitempty"`
	TotalPrice    int64               `json:"total_price,omitempty"`
	Status        types.BookingStatus `gorm:"default:'confirmed'" json:"status,omitempty"`
	TransactionID *uuid.UUID          `gorm:"type:uuid" json:"transaction_id,omitempty"`

	Car         *Car         `gorm:"foreignKey:car_id" json:"car,omitempty"`
	User        *User        `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Transaction *Transaction `gorm:"foreignKey:booking_id" json:"transaction,omitempty"`

	types.Timestamps
}
