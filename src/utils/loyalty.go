package utils

import (
	"crs/src/config"
	"crs/src/db"
	"crs/src/models"
	"crs/src/types"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type CreditResult struct {
	Points     int64                 `json:"points"`
	Total      int64                 `json:"total"`
	Level      types.MembershipLevel `json:"level"`
	Multiplier int64                 `json:"multiplier"`
}

// Multipliers are percentages so the whole earn computation stays in integer
// arithmetic: earned = floor(floor(amount/unit) * multiplier / 100).
func levelMultiplier(level types.MembershipLevel) int64 {
	switch level {
	case types.MEMBERSHIP_SILVER:
		return 110
	case types.MEMBERSHIP_GOLD:
		return 125
	case types.MEMBERSHIP_PLATINUM:
		return 150
	default:
		return 100
	}
}

func levelForPoints(points int64) types.MembershipLevel {
	switch {
	case points >= 20_000:
		return types.MEMBERSHIP_PLATINUM
	case points >= 5_000:
		return types.MEMBERSHIP_GOLD
	case points >= 1_000:
		return types.MEMBERSHIP_SILVER
	default:
		return types.MEMBERSHIP_BRONZE
	}
}

// CreditForBooking credits loyalty points for a paid booking. The membership
// increment and the point-history append happen in one transaction so the
// running total never drifts from the ledger sum.
func CreditForBooking(bookingCode string, amount int64) (*CreditResult, error) {
	d := db.GetDb()
	var booking models.Booking
	if err := d.
		Model(&models.Booking{}).
		Where(&models.Booking{Code: bookingCode}).
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrBookingNotFound
		}
		return nil, err
	}

	var result CreditResult
	err := d.Transaction(func(tx *gorm.DB) error {
		var membership models.Membership
		if err := tx.
			Where(&models.Membership{UserID: booking.UserID}).
			FirstOrCreate(&membership, &models.Membership{
				UserID: booking.UserID,
				Level:  types.MEMBERSHIP_BRONZE,
			}).Error; err != nil {
			return err
		}
		if membership.Level == "" {
			membership.Level = types.MEMBERSHIP_BRONZE
		}

		basePoints := amount / config.POINT_UNIT
		multiplier := levelMultiplier(membership.Level)
		earned := basePoints * multiplier / 100

		// Increment in place so concurrent credits for the same user never
		// overwrite each other's totals, then re-read for the level check.
		if err := tx.
			Model(&models.Membership{}).
			Where("id = ?", membership.ID).
			Update("points", gorm.Expr("points + ?", earned)).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Membership{}).
			Where("id = ?", membership.ID).
			First(&membership).
			Error; err != nil {
			return err
		}
		total := membership.Points
		newLevel := levelForPoints(total)
		if newLevel != membership.Level {
			if err := tx.
				Model(&models.Membership{}).
				Where("id = ?", membership.ID).
				Update("level", newLevel).
				Error; err != nil {
				return err
			}
		}
		history := models.PointHistory{
			UserID:      booking.UserID,
			Points:      earned,
			Description: fmt.Sprintf("Points earned for booking %s", bookingCode),
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		result = CreditResult{
			Points:     earned,
			Total:      total,
			Level:      newLevel,
			Multiplier: multiplier,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
