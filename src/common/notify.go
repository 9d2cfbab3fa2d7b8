package common

import (
	"crs/src/lib"
	"crs/src/types"
	"fmt"
	"log"
	"os"
)

// NotifyUser pushes a realtime event to the user's private channel. Best
// effort: failures are logged, never propagated.
func NotifyUser(userId uint, event string, data types.JSONB) {
	if os.Getenv("PUSHER_KEY") == "" {
		return
	}
	go func() {
		client := lib.GetPusherClient()
		channel := fmt.Sprintf("private-user-%d", userId)
		if err := client.Trigger(channel, event, data); err != nil {
			log.Printf("Error pushing %s to %s: %s\n", event, channel, err.Error())
		}
	}()
}
