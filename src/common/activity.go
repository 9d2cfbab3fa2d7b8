package common

import (
	"crs/src/lib"
	"crs/src/types"
	"log"
	"os"
)

const activityTopic = "booking-activity"

func queueArn(name string) string {
	return lib.GetQueueArn(name)
}

// TrackActivity publishes an analytics event. Best effort only: it runs off
// the request path and a failure is logged, never propagated.
func TrackActivity(eventType string, payload types.JSONB) {
	if os.Getenv("KAFKA_BROKER") == "" {
		log.Printf("[activity] No broker configured, skipping %s\n", eventType)
		return
	}
	go func() {
		payload["type"] = eventType
		if err := lib.KafkaProduceMessage("crs-activity", activityTopic, payload); err != nil {
			log.Printf("Error tracking %s: %s\n", eventType, err.Error())
		}
	}()
}
