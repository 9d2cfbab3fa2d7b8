package models

import (
	"crs/src/types"
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`

	BookingID       uint                    `json:"booking_id,omitempty"`
	Amount          int64                   `json:"amount,omitempty"`
	Discount        int64                   `json:"discount,omitempty"`
	Currency        string                  `json:"currency,omitempty"`
	PaymentProvider string                  `json:"payment_provider,omitempty"`
	ReferenceID     string                  `json:"reference_id,omitempty"`
	Status          types.TransactionStatus `gorm:"default:'pending'" json:"status,omitempty"`
	PaidAt          *time.Time              `json:"paid_at,omitempty"`
	RefundedAt      *time.Time              `json:"refunded_at,omitempty"`

	types.Timestamps

	Booking *Booking `gorm:"foreignKey:booking_id" json:"-"`
}
