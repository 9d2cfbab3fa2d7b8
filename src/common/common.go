package common

import (
	awslib "crs/src/lib/aws"
	"crs/src/utils"
	"crs/src/workers"
	"log"
	"os"

	"github.com/tidwall/gjson"
)

// SQSConsumers starts the queue consumers behind the delayed-job pipeline:
// the hold-expiry queue feeding the worker pool and its dead-letter queue for
// jobs that exhausted the redrive policy.
func SQSConsumers() {
	he := awslib.NewSQSConsumer("HoldExpiry", HoldExpiryHandler)
	he.Listen()
	dlq := awslib.NewSQSConsumer("HoldExpiryDLQ", func(body string) error {
		// Exhausted retries: an operator has to look at this. The store TTL
		// has long since evicted the hold itself.
		log.Printf("[HoldExpiryDLQ] expiry job dead-lettered: %s\n", body)
		return nil
	})
	dlq.Listen()

	emailQueue := os.Getenv("EMAIL_QUEUE")
	if emailQueue == "" {
		emailQueue = "EmailsToSend"
	}
	emails := awslib.NewSQSConsumer(utils.WithSuffix(emailQueue), EmailHandler)
	emails.Listen()
}

// EmailHandler sends a queued email through SES. Malformed messages are
// dropped rather than retried, a redelivery cannot fix them.
func EmailHandler(body string) error {
	if !gjson.Valid(body) {
		log.Printf("[Emails] Received invalid json body. Aborting")
		return nil
	}
	to := []string{}
	for _, addr := range gjson.Get(body, "to").Array() {
		to = append(to, addr.String())
	}
	if len(to) == 0 {
		log.Printf("[Emails] Message has no recipients: %s\n", body)
		return nil
	}
	return awslib.SESSendMessage(
		gjson.Get(body, "from").String(),
		to,
		gjson.Get(body, "subject").String(),
		gjson.Get(body, "body").String(),
		gjson.Get(body, "html").Bool(),
	)
}

// HoldExpiryHandler unwraps the SNS->SQS envelope and releases the hold.
// Delivery is at-least-once; the handler tolerates duplicates because the
// underlying delete is a no-op on an absent hold.
func HoldExpiryHandler(body string) error {
	if !gjson.Valid(body) {
		log.Printf("[HoldExpiry] Received invalid json body. Aborting")
		return nil
	}
	message := gjson.Get(body, "Message").String()
	if message == "" {
		message = body
	}
	code := gjson.Get(message, "booking_code").String()
	if code == "" {
		log.Printf("[HoldExpiry] Message has no booking code: %s\n", message)
		return nil
	}
	return workers.OnHoldExpiry(code)
}

func SNSSubscribes() {
	holdExpiry := awslib.NewSNSSubscriber("HoldExpiry")
	holdExpiry.Subscribe("sqs", queueArn("HoldExpiry"))
}
