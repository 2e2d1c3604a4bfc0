// Package realtime publishes catalog change notifications so connected
// clients can refresh their event list without polling.
package realtime

import (
	"log/slog"

	pubnub "github.com/pubnub/go"
)

const eventsChannel = "event-updates"

type Notifier struct {
	pubnub *pubnub.PubNub
}

// NewNotifier returns a notifier bound to the given PubNub keys. With empty
// keys it returns a disabled notifier whose publishes are no-ops.
func NewNotifier(publishKey, subscribeKey, secretKey string) *Notifier {
	if publishKey == "" || subscribeKey == "" {
		return &Notifier{}
	}

	cfg := pubnub.NewConfig()
	cfg.PublishKey = publishKey
	cfg.SubscribeKey = subscribeKey
	cfg.SecretKey = secretKey

	return &Notifier{pubnub: pubnub.NewPubNub(cfg)}
}

// EventChanged announces a single event mutation (created, updated, deleted).
func (n *Notifier) EventChanged(change, eventID string) {
	n.publish(map[string]any{
		"type":     change,
		"event_id": eventID,
	})
}

// EventsReset announces that the whole catalog was replaced.
func (n *Notifier) EventsReset() {
	n.publish(map[string]any{
		"type": "events_reset",
	})
}

func (n *Notifier) publish(message map[string]any) {
	if n.pubnub == nil {
		return
	}

	_, _, err := n.pubnub.Publish().
		Channel(eventsChannel).
		Message(message).
		Execute()
	if err != nil {
		// Notifications are best effort; the catalog is already persisted.
		slog.Error("publish event notification", "error", err)
	}
}
