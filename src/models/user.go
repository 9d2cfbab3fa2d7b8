package models

import (
	"crs/src/types"
)

type User struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	Name          string `json:"name,omitempty"`
	Email         string `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Role          string `gorm:"default:'user'" json:"role,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`

	Bookings   []Booking   `gorm:"foreignKey:user_id" json:"bookings,omitempty"`
	Membership *Membership `gorm:"foreignKey:user_id" json:"membership,omitempty"`

	types.Timestamps
}
