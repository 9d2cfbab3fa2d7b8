package models

import (
	"crs/src/types"
)

type Membership struct {
	ID     uint                  `gorm:"primarykey" json:"id"`
	UserID uint                  `gorm:"uniqueIndex" json:"user_id,omitempty"`
	Level  types.MembershipLevel `gorm:"default:'bronze'" json:"level,omitempty"`
	Points int64                 `json:"points"`

	User *User `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}

// PointHistory is the append-only ledger behind Membership.Points: the running
// total on the membership must always equal the sum of these deltas.
type PointHistory struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	UserID      uint   `gorm:"index" json:"user_id,omitempty"`
	Points      int64  `json:"points"`
	Description string `json:"description,omitempty"`

	types.Timestamps
}
