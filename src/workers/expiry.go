package workers

import (
	"context"
	"crs/src/db"
	"crs/src/lib"
	"crs/src/models"
	"crs/src/types"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OnHoldExpiry releases the hold for an unpaid booking. Deleting an absent
// hold is a no-op, so redelivered expiry jobs and the race against the payment
// callback are both safe. Idempotent on the jobs table too: the done update is
// guarded on the pending status. A non-nil error means the hold may still be
// in place and the job should be redelivered.
func OnHoldExpiry(bookingCode string) error {
	ctx := context.Background()
	hold, err := lib.GetHold(ctx, bookingCode)
	if err != nil {
		log.Printf("Error reading hold %s: %s\n", bookingCode, err.Error())
		return err
	}
	if hold == nil {
		log.Printf("Hold %s already settled. Nothing to release\n", bookingCode)
		markJobDone(bookingCode)
		return nil
	}
	if err := lib.DeleteHold(ctx, bookingCode); err != nil {
		// Leave the job pending; the queue retries and the store's TTL is the
		// final backstop.
		log.Printf("Error releasing hold %s: %s\n", bookingCode, err.Error())
		return err
	}
	log.Printf("Released expired hold %s for car %d\n", bookingCode, hold.CarID)
	markJobDone(bookingCode)
	if os.Getenv("KAFKA_BROKER") == "" {
		return nil
	}
	go func() {
		err := lib.KafkaProduceMessage("crs-activity", "booking-activity", types.JSONB{
			"type":         "booking.expired",
			"booking_code": bookingCode,
			"car_id":       hold.CarID,
		})
		if err != nil {
			log.Printf("Error tracking expiry for %s: %s\n", bookingCode, err.Error())
		}
	}()
	return nil
}

// ScheduleHoldExpiry persists a JobTask for the hold and schedules its
// one-shot expiry job at the hold's deadline.
func ScheduleHoldExpiry(bookingCode string, carId uint, ttl time.Duration) (string, error) {
	runsAt := time.Now().UTC().Add(ttl)
	jobID := uuid.New()
	payload := types.JSONB{
		"job_id":       jobID.String(),
		"booking_code": bookingCode,
		"car_id":       carId,
		"topic":        "HoldExpiry",
	}
	jobTask := models.JobTask{
		ID:          jobID,
		Name:        fmt.Sprintf("Hold_%s_Expiry", bookingCode),
		JobType:     "OneTimeJobStartDateTime",
		RunsAt:      runsAt,
		BookingCode: bookingCode,
		Payload:     payload,
		Topic:       "HoldExpiry",
	}
	db := db.GetDb()
	if err := db.Create(&jobTask).Error; err != nil {
		return "", err
	}
	vars := map[string]string{
		"name":  jobTask.Name,
		"topic": jobTask.Topic,
	}
	if _, err := lib.NewScheduledJob(runsAt, vars, payload, ExpiryTask); err != nil {
		return "", err
	}
	return jobID.String(), nil
}

// ExpiryTask adapts a scheduled job payload to the expiry handler.
func ExpiryTask(ctx context.Context, p types.JSONB) {
	code, _ := p["booking_code"].(string)
	if code == "" {
		log.Printf("Expiry job payload missing booking code: %v\n", p)
		return
	}
	if err := OnHoldExpiry(code); err != nil {
		log.Printf("Expiry job for %s failed: %s\n", code, err.Error())
	}
}

func markJobDone(bookingCode string) {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.JobTask{}).
			Where(&models.JobTask{BookingCode: bookingCode, Status: "pending"}).
			Update("status", "done").
			Error
	})
	if err != nil {
		log.Printf("Error updating job status for %s: %s\n", bookingCode, err.Error())
	}
}
