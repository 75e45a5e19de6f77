package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

var rdbClient *redis.Client

// SetRedisClient wires the shared Redis client into the websocket layer
func SetRedisClient(client *redis.Client) {
	rdbClient = client
}

// worldEvent mirrors the payload published on the world_events channel
type worldEvent struct {
	Type       string `json:"type"`
	WorldToken string `json:"world_token"`
	Reason     string `json:"reason,omitempty"`
}

// StartWorldEventSubscriber listens on the world_events pub/sub channel
// and relays lifecycle events to the affected rooms. Runs until ctx is
// cancelled.
func StartWorldEventSubscriber(ctx context.Context) {
	if rdbClient == nil {
		log.Println("[WS] redis client not set, world event subscriber disabled")
		return
	}

	pubsub := rdbClient.Subscribe(ctx, "world_events")

	go func() {
		defer pubsub.Close()
		log.Println("[WS] world event subscriber started")

		for {
			select {
			case <-ctx.Done():
				return

			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}

				var event worldEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("[WS] bad world event payload: %v", err)
					continue
				}

				handleWorldEvent(event, msg.Payload)
			}
		}
	}()
}

func handleWorldEvent(event worldEvent, payload string) {
	switch event.Type {
	case "world_expired":
		notice, _ := json.Marshal(WSMessage{Type: "world_expired", Data: json.RawMessage(payload)})
		WorldHub.BroadcastToWorld(event.WorldToken, notice)
		stopWorldTicker(event.WorldToken)

	case "world_created":
		// Informational only, nobody is connected yet

	default:
		log.Printf("[WS] unhandled world event type %q for %s", event.Type, event.WorldToken)
	}
}
