package lib

import (
	"os"

	"github.com/pusher/pusher-http-go/v5"
)

var pusherClient *pusher.Client

// GetPusherClient returns the shared client behind the realtime booking
// notifications, configured from the PUSHER_* environment.
func GetPusherClient() *pusher.Client {
	if pusherClient != nil {
		return pusherClient
	}
	pusherClient = &pusher.Client{
		AppID:   os.Getenv("PUSHER_APP_ID"),
		Key:     os.Getenv("PUSHER_KEY"),
		Secret:  os.Getenv("PUSHER_SECRET"),
		Cluster: os.Getenv("PUSHER_CLUSTER"),
	}
	return pusherClient
}

// NewPusherClient replaces the shared instance with a custom client, used by
// tests to inject a stub.
func NewPusherClient(c *pusher.Client) *pusher.Client {
	pusherClient = c
	return pusherClient
}
