package mailer

import (
	"crs/src/config"
	"crs/src/lib"
	"crs/src/models"
	"crs/src/types"
	"crs/src/utils"
	"encoding/json"
	"fmt"
	"os"
)

// NewMailerMessage hands the email to the delivery pipeline. In production and
// staging the message goes through the email queue so sending survives
// restarts and gets the queue's retry semantics; elsewhere it is sent
// directly over SMTP.
func NewMailerMessage(input *lib.SendMailInput) error {
	apiEnv := config.API_ENV
	if apiEnv != "production" && apiEnv != "staging" {
		if os.Getenv("SMTP_HOST") == "" {
			return nil
		}
		return lib.SendMail(input)
	}
	emailQueue := os.Getenv("EMAIL_QUEUE")
	if emailQueue == "" {
		emailQueue = "EmailsToSend"
	}
	emailBody := &types.JSONB{
		"from":      input.From,
		"from-name": input.FromName,
		"to":        input.To,
		"reply-to":  input.ReplyTo,
		"body":      input.Body,
		"html":      input.Html,
		"subject":   input.Subject,
	}
	body, err := json.Marshal(&emailBody)
	if err != nil {
		return err
	}
	if err := lib.SQSProduceMessage(utils.WithSuffix(emailQueue), string(body)); err != nil {
		return fmt.Errorf("error sending message to queue: %s", err.Error())
	}
	return nil
}

// BookingReceipt builds the confirmation email for a paid booking.
func BookingReceipt(user *models.User, booking *models.Booking) *lib.SendMailInput {
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "no-reply@crs.example.com"
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking %s is confirmed.\nPickup: %s\nReturn: %s\nTotal: %d %s\n\nSafe travels!",
		user.Name,
		booking.Code,
		booking.PickupAddress,
		booking.ReturnAddress,
		booking.TotalPrice,
		config.DEFAULT_CURRENCY,
	)
	return &lib.SendMailInput{
		From:     from,
		FromName: "CRS Bookings",
		To:       []string{user.Email},
		Subject:  fmt.Sprintf("Booking %s confirmed", booking.Code),
		Body:     body,
	}
}
