package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	errMissingTarget = errors.New("event missing target subject")
	errMissingKind   = errors.New("event missing kind")
)

// Publisher emits notification events onto the fixed broker channel.
// Services use it wherever a domain action should reach a connected
// client (grade posted, payment posted, announcement).
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher builds a publisher for the given channel.
func NewPublisher(client *redis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

// Publish wraps the payload in an Event envelope and publishes it.
// Delivery is best-effort: a publish error is the caller's to log, and
// subjects with no live connection simply never see the event.
func (p *Publisher) Publish(ctx context.Context, targetSubjectID int, kind string, payload any) error {
	if targetSubjectID <= 0 {
		return errMissingTarget
	}
	if kind == "" {
		return errMissingKind
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := Event{
		ID:              uuid.NewString(),
		TargetSubjectID: targetSubjectID,
		Kind:            kind,
		Payload:         raw,
		ProducedAt:      time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}
