package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"sero/model"
)

const (
	initialBackoff = 250 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

type rawHandler func(ctx context.Context, data json.RawMessage) error

// Subscriber consumes events for a fixed set of channels. Handlers are
// registered before Start and never change afterwards, so the dispatch loop
// reads the handler map without locking. On a broken connection it backs off
// exponentially (capped at maxBackoff) and resubscribes every registered
// channel; messages published during the outage are not recovered.
type Subscriber struct {
	client *redis.Client
	log    zerolog.Logger

	handlers map[Channel]rawHandler

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSubscriber(client *redis.Client, log zerolog.Logger) *Subscriber {
	return &Subscriber{
		client:   client,
		log:      log,
		handlers: make(map[Channel]rawHandler),
	}
}

// OnGrantExpired registers a handler for role-grant-expired or ban-expired.
func (s *Subscriber) OnGrantExpired(channel Channel, h func(ctx context.Context, ev model.GrantExpired) error) {
	s.register(channel, func(ctx context.Context, data json.RawMessage) error {
		var ev model.GrantExpired
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
		return h(ctx, ev)
	})
}

// OnBirthdayDue registers the birthday-due handler.
func (s *Subscriber) OnBirthdayDue(h func(ctx context.Context, ev model.BirthdayDue) error) {
	s.register(ChannelBirthdayDue, func(ctx context.Context, data json.RawMessage) error {
		var ev model.BirthdayDue
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
		return h(ctx, ev)
	})
}

// OnRewardDrop registers the reward-drop-due handler.
func (s *Subscriber) OnRewardDrop(h func(ctx context.Context, ev model.RewardDrop) error) {
	s.register(ChannelRewardDropDue, func(ctx context.Context, data json.RawMessage) error {
		var ev model.RewardDrop
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
		return h(ctx, ev)
	})
}

// OnLevelChanged registers the level-changed handler.
func (s *Subscriber) OnLevelChanged(h func(ctx context.Context, ev model.LevelChanged) error) {
	s.register(ChannelLevelChanged, func(ctx context.Context, data json.RawMessage) error {
		var ev model.LevelChanged
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
		return h(ctx, ev)
	})
}

func (s *Subscriber) register(channel Channel, h rawHandler) {
	if !channel.Valid() {
		panic(fmt.Sprintf("pubsub: subscribing to unknown channel %q", channel))
	}
	s.handlers[channel] = h
}

func (s *Subscriber) channelNames() []string {
	names := make([]string, 0, len(s.handlers))
	for ch := range s.handlers {
		names = append(names, ch.String())
	}
	return names
}

// Start launches the receive loop. Registration must be complete.
func (s *Subscriber) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(ctx)
}

// Close stops the receive loop and waits for it to exit. Events already
// handed to a handler run to completion.
func (s *Subscriber) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Subscriber) run(ctx context.Context) {
	defer s.wg.Done()
	backoff := initialBackoff

	for ctx.Err() == nil {
		ps := s.client.Subscribe(ctx, s.channelNames()...)
		s.log.Info().Strs("channels", s.channelNames()).Msg("subscribed to broker")

		for {
			msg, err := ps.ReceiveMessage(ctx)
			if err != nil {
				_ = ps.Close()
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				s.log.Warn().Err(err).Dur("backoff", backoff).Msg("broker connection lost, reconnecting")
				select {
				case <-time.After(backoff):
				case <-ctx.Done():
					return
				}
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
				break
			}
			backoff = initialBackoff
			s.dispatch(ctx, msg.Channel, []byte(msg.Payload))
		}
	}
}

func (s *Subscriber) dispatch(ctx context.Context, name string, payload []byte) {
	handler, ok := s.handlers[Channel(name)]
	if !ok {
		s.log.Debug().Str("channel", name).Msg("no handler for channel, dropping")
		return
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		s.log.Warn().Err(err).Str("channel", name).Msg("dropping malformed envelope")
		return
	}

	if err := handler(ctx, env.Data); err != nil {
		if errors.Is(err, ErrMalformedEnvelope) {
			s.log.Warn().Err(err).Str("channel", name).Msg("dropping malformed payload")
			return
		}
		s.log.Warn().Err(err).Str("channel", name).Msg("event handler failed")
	}
}
