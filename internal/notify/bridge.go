package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const initialBackoff = time.Second

// Bridge is the long-lived subscriber on the fixed notification channel.
// It runs for the lifetime of the process, independent of any client
// connection, and hands every decoded event to the dispatcher. Broker
// failures are retried with capped backoff and are never fatal.
type Bridge struct {
	client     *redis.Client
	channel    string
	dispatcher *Dispatcher
	logger     *zap.Logger
	maxBackoff time.Duration
}

// NewBridge builds the subscriber for the given channel.
func NewBridge(client *redis.Client, channel string, dispatcher *Dispatcher, logger *zap.Logger, maxBackoff time.Duration) *Bridge {
	if maxBackoff <= 0 {
		maxBackoff = 30 * time.Second
	}
	return &Bridge{
		client:     client,
		channel:    channel,
		dispatcher: dispatcher,
		logger:     logger,
		maxBackoff: maxBackoff,
	}
}

// Run subscribes and consumes until the context is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	backoff := initialBackoff
	for ctx.Err() == nil {
		pubsub := b.client.Subscribe(ctx, b.channel)
		if _, err := pubsub.Receive(ctx); err != nil {
			_ = pubsub.Close()
			if ctx.Err() != nil {
				return
			}
			b.logger.Warn("notification subscribe failed",
				zap.String("channel", b.channel),
				zap.Duration("retry_in", backoff),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > b.maxBackoff {
				backoff = b.maxBackoff
			}
			continue
		}

		backoff = initialBackoff
		b.logger.Info("subscribed to notification channel", zap.String("channel", b.channel))
		b.consume(ctx, pubsub.Channel())
		_ = pubsub.Close()
	}
}

// consume drains messages until the channel closes or the context ends.
// A malformed message is logged and dropped; it never stops the loop.
func (b *Bridge) consume(ctx context.Context, msgs <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			event, err := decodeEvent([]byte(msg.Payload))
			if err != nil {
				b.logger.Warn("dropping undecodable notification",
					zap.String("channel", msg.Channel),
					zap.Error(err))
				continue
			}
			b.dispatcher.Dispatch(event)
		}
	}
}

// decodeEvent parses and validates one raw broker payload.
func decodeEvent(raw []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return Event{}, err
	}
	if event.TargetSubjectID <= 0 {
		return Event{}, errMissingTarget
	}
	if event.Kind == "" {
		return Event{}, errMissingKind
	}
	return event, nil
}
