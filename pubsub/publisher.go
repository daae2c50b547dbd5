package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Publisher broadcasts payloads to currently-connected subscribers. Delivery
// is best-effort: publishing with no subscriber connected succeeds and the
// message is simply lost. Scanners rely on re-scanning, not redelivery.
type Publisher interface {
	Publish(ctx context.Context, channel Channel, payload any) error
}

// RedisPublisher is the broker-backed Publisher used in production.
type RedisPublisher struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisPublisher(client *redis.Client, log zerolog.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, log: log}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel Channel, payload any) error {
	if !channel.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
	env, err := NewEnvelope(payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	if err := p.client.Publish(ctx, channel.String(), data).Err(); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", channel, err)
	}
	p.log.Debug().Str("channel", channel.String()).Msg("published event")
	return nil
}
