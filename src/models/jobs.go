package models

import (
	"time"

	"crs/src/types"

	"github.com/google/uuid"
)

// JobTask mirrors a scheduled delayed job so pending jobs survive a restart
// and can be re-queued on boot.
type JobTask struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`

	Name        string      `json:"-"`
	JobType     string      `json:"-"`
	RunsAt      time.Time   `json:"-"`
	BookingCode string      `gorm:"index" json:"-"`
	Payload     types.JSONB `gorm:"type:jsonb" json:"-"`
	Status      string      `gorm:"default:'pending'" json:"-"`
	Topic       string      `json:"-"`
}
