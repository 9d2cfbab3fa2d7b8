package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &a)
	case string:
		return json.Unmarshal([]byte(v), &a)
	default:
		return errors.New("unsupported source type for JSONB")
	}
}

// Handler consumes a raw queue message body. A non-nil error leaves the
// message on the queue so the redrive policy can redeliver it.
type Handler func(payload string) error

type CarStatus string

const (
	CAR_AVAILABLE   CarStatus = "available"
	CAR_RENTED      CarStatus = "rented"
	CAR_MAINTENANCE CarStatus = "maintenance"
	CAR_RETIRED     CarStatus = "retired"
)

type BookingStatus string

const (
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_ONGOING   BookingStatus = "ongoing"
	BOOKING_COMPLETED BookingStatus = "completed"
	BOOKING_CANCELED  BookingStatus = "canceled"
)

type TransactionStatus string

const (
	TRANSACTION_PENDING   TransactionStatus = "pending"
	TRANSACTION_COMPLETED TransactionStatus = "paid"
	TRANSACTION_CANCELED  TransactionStatus = "canceled"
	TRANSACTION_REFUNDED  TransactionStatus = "refunded"
)

type MembershipLevel string

const (
	MEMBERSHIP_BRONZE   MembershipLevel = "bronze"
	MEMBERSHIP_SILVER   MembershipLevel = "silver"
	MEMBERSHIP_GOLD     MembershipLevel = "gold"
	MEMBERSHIP_PLATINUM MembershipLevel = "platinum"
)

// HoldPayload is the transient reservation record kept in the availability
// ledger while payment for a booking is pending. Existence of the hold means
// the car is blocked for the requested interval; absence means the booking
// either committed or timed out.
type HoldPayload struct {
	BookingCode     string    `json:"booking_code"`
	CarID           uint      `json:"car_id"`
	UserID          uint      `json:"user_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalPrice      int64     `json:"total_price"`
	PickupAddress   string    `json:"pickup_address"`
	ReturnAddress   string    `json:"return_address"`
	PaymentProvider string    `json:"payment_provider"`
	ReturnURL       string    `json:"return_url"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateBookingRequestBody struct {
	CarID           uint   `json:"car_id" binding:"required"`
	StartDate       string `json:"start_date" binding:"required,bookabledate"`
	EndDate         string `json:"end_date" binding:"required,bookabledate,gtdate=StartDate"`
	PickupAddress   string `json:"pickup_address" binding:"required"`
	ReturnAddress   string `json:"return_address" binding:"required"`
	PaymentProvider string `json:"payment_provider" binding:"required"`
	ReturnURL       string `json:"return_url" binding:"required,url"`
}

type CarQueryFilters struct {
	Brand    string `form:"brand"`
	Seats    uint8  `form:"seats"`
	MaxPrice int64  `form:"max_price"`
}
