package utils

import (
	"context"
	"crs/src/config"
	"crs/src/db"
	"crs/src/lib"
	"crs/src/models"
	"crs/src/models/scopes"
	"crs/src/types"
	"crs/src/workers"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateBookingCode returns a fresh code identifying one hold, one payment
// order and, on success, one durable booking. The code is independent of the
// car id so a car's booking history never reuses identifiers.
func GenerateBookingCode() string {
	id := uuid.New()
	return fmt.Sprintf("BK-%s", strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12]))
}

// HasOverlappingBooking reports whether a confirmed or ongoing booking for the
// car overlaps [start, end).
func HasOverlappingBooking(tx *gorm.DB, carId uint, start, end time.Time) (bool, error) {
	var count int64
	err := tx.
		Model(&models.Booking{}).
		Where("car_id = ?", carId).
		Scopes(scopes.WithBookingStatus(types.BOOKING_CONFIRMED, types.BOOKING_ONGOING)).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CheckAvailability is the dual availability check: no transient hold blocking
// the car AND no overlapping durable booking. Both are needed because a hold
// exists before its booking does.
func CheckAvailability(ctx context.Context, carId uint, start, end time.Time) (bool, error) {
	held, err := lib.CarHeld(ctx, carId)
	if err != nil {
		return false, err
	}
	if held {
		return false, nil
	}
	overlap, err := HasOverlappingBooking(db.GetDb(), carId, start, end)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

type ConfirmBookingResult struct {
	Hold       *types.HoldPayload `json:"booking"`
	PaymentURL string             `json:"payment_url"`
}

// ConfirmBooking runs the reservation pipeline: availability check, price,
// hold, payment link, expiry job. The hold is only created after availability
// is confirmed, and a payment-link failure deletes it again so no path leaves
// a dangling hold behind.
func ConfirmBooking(ctx context.Context, userId uint, params *types.CreateBookingRequestBody, clientIP string, host string) (*ConfirmBookingResult, error) {
	start, err := time.Parse(config.TIME_PARSE_FORMAT, params.StartDate)
	if err != nil {
		return nil, types.ErrInvalidDateRange
	}
	end, err := time.Parse(config.TIME_PARSE_FORMAT, params.EndDate)
	if err != nil {
		return nil, types.ErrInvalidDateRange
	}

	var car models.Car
	d := db.GetDb()
	if err := d.
		Model(&models.Car{}).
		Where(&models.Car{ID: params.CarID}).
		First(&car).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrCarNotFound
		}
		return nil, err
	}

	ok, err := CheckAvailability(ctx, car.ID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.ErrCarNotAvailable
	}

	totalPrice, err := ComputePrice(car.DailyPrice, start, end)
	if err != nil {
		return nil, err
	}

	code := GenerateBookingCode()
	hold := &types.HoldPayload{
		BookingCode:     code,
		CarID:           car.ID,
		UserID:          userId,
		StartDate:       start,
		EndDate:         end,
		TotalPrice:      totalPrice,
		PickupAddress:   params.PickupAddress,
		ReturnAddress:   params.ReturnAddress,
		PaymentProvider: params.PaymentProvider,
		ReturnURL:       params.ReturnURL,
	}
	if err := lib.CreateHold(ctx, hold, config.HOLD_TTL); err != nil {
		return nil, err
	}

	gateway, err := lib.GetGateway(params.PaymentProvider)
	if err != nil {
		releaseHold(ctx, code)
		return nil, err
	}
	paymentURL, err := gateway.CreatePaymentLink(ctx, &lib.PaymentLinkOptions{
		Amount:      totalPrice,
		Currency:    config.DEFAULT_CURRENCY,
		OrderCode:   code,
		Description: fmt.Sprintf("Car rental %s", code),
		ClientIP:    clientIP,
		Host:        host,
		ReturnURL:   params.ReturnURL,
	})
	if err != nil {
		log.Printf("Error creating %s payment link for %s: %s\n", params.PaymentProvider, code, err.Error())
		releaseHold(ctx, code)
		return nil, types.ErrGatewayUnreachable
	}

	if _, err := workers.ScheduleHoldExpiry(code, car.ID, config.HOLD_TTL); err != nil {
		// The store's TTL still evicts the hold, so the booking proceeds.
		log.Printf("Error scheduling expiry for %s: %s\n", code, err.Error())
	}

	return &ConfirmBookingResult{Hold: hold, PaymentURL: paymentURL}, nil
}

func releaseHold(ctx context.Context, code string) {
	if err := lib.DeleteHold(ctx, code); err != nil {
		log.Printf("Error rolling back hold %s: %s\n", code, err.Error())
	}
}

// CommitBooking turns a paid hold into a durable booking: car flipped to
// rented, booking and transaction inserted, all in one database transaction.
// A conflict aborts everything and keeps the hold so the expiry worker can
// still reclaim it; the hold is only deleted once the commit has stuck.
func CommitBooking(ctx context.Context, hold *types.HoldPayload, referenceId string) (*models.Booking, error) {
	d := db.GetDb()
	var booking models.Booking
	err := d.Transaction(func(tx *gorm.DB) error {
		overlap, err := HasOverlappingBooking(tx, hold.CarID, hold.StartDate, hold.EndDate)
		if err != nil {
			return err
		}
		if overlap {
			return types.ErrBookingConflict
		}

		res := tx.
			Model(&models.Car{}).
			Where("id = ?", hold.CarID).
			Update("status", types.CAR_RENTED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrCarNotFound
		}

		booking = models.Booking{
			Code:          hold.BookingCode,
			UserID:        hold.UserID,
			CarID:         hold.CarID,
			StartDate:     &hold.StartDate,
			EndDate:       &hold.EndDate,
			PickupAddress: hold.PickupAddress,
			ReturnAddress: hold.ReturnAddress,
			TotalPrice:    hold.TotalPrice,
			Status:        types.BOOKING_CONFIRMED,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		now := time.Now()
		txn := models.Transaction{
			ID:              uuid.New(),
			BookingID:       booking.ID,
			Amount:          hold.TotalPrice,
			Currency:        config.DEFAULT_CURRENCY,
			PaymentProvider: hold.PaymentProvider,
			ReferenceID:     referenceId,
			Status:          types.TRANSACTION_COMPLETED,
			PaidAt:          &now,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("transaction_id", txn.ID).
			Error; err != nil {
			return err
		}
		booking.TransactionID = &txn.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := lib.DeleteHold(ctx, hold.BookingCode); err != nil {
		log.Printf("Error deleting hold %s after commit: %s\n", hold.BookingCode, err.Error())
	}
	return &booking, nil
}

// PickupCar marks a confirmed booking as ongoing.
func PickupCar(bookingId uint) (*models.Booking, error) {
	d := db.GetDb()
	var booking models.Booking
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(scopes.WithID(bookingId)).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrBookingNotFound
			}
			return err
		}
		if booking.Status != types.BOOKING_CONFIRMED {
			return fmt.Errorf("booking [%d] cannot be picked up from status %s", bookingId, booking.Status)
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", bookingId).
			Update("status", types.BOOKING_ONGOING).
			Error; err != nil {
			return err
		}
		booking.Status = types.BOOKING_ONGOING
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ReturnCar completes a booking and makes the car available again, in one
// transaction.
func ReturnCar(bookingId uint) (*models.Booking, error) {
	d := db.GetDb()
	var booking models.Booking
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(scopes.WithID(bookingId)).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrBookingNotFound
			}
			return err
		}
		if booking.Status != types.BOOKING_CONFIRMED && booking.Status != types.BOOKING_ONGOING {
			return fmt.Errorf("booking [%d] cannot be returned from status %s", bookingId, booking.Status)
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", bookingId).
			Update("status", types.BOOKING_COMPLETED).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Car{}).
			Where("id = ?", booking.CarID).
			Update("status", types.CAR_AVAILABLE).
			Error; err != nil {
			return err
		}
		booking.Status = types.BOOKING_COMPLETED
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
