package bus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBus is the cross-process Bus. It holds two connections per process:
// one client for the publish role and one for the subscribe role. Redis
// dedicates the subscriber connection to SUBSCRIBE traffic, so the two
// roles can never share; a single relay goroutine multiplexes that one
// upstream subscription to all local consumers.
type RedisBus struct {
	publisher  *redis.Client
	subscriber *redis.Client
	pubsub     *redis.PubSub
	local      *fanout
	logger     *slog.Logger

	subMu     sync.Mutex // serializes upstream (un)subscribe against attach/detach races
	closeOnce sync.Once
}

// NewRedisBus connects both roles and starts the relay. buffer is the
// per-subscriber buffer (floor DefaultSubscriberBuffer).
func NewRedisBus(ctx context.Context, url string, buffer int, logger *slog.Logger) (*RedisBus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pubOpt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	subOpt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	publisher := redis.NewClient(pubOpt)
	if err := publisher.Ping(ctx).Err(); err != nil {
		_ = publisher.Close()
		return nil, err
	}
	subscriber := redis.NewClient(subOpt)

	b := &RedisBus{
		publisher:  publisher,
		subscriber: subscriber,
		pubsub:     subscriber.Subscribe(ctx), // no channels yet
		local:      newFanout(buffer),
		logger:     logger,
	}
	b.local.onEmpty = b.dropUpstream
	go b.relay()
	return b, nil
}

// Publish delivers payload to every subscriber of channel on any process.
// The returned count is the number of subscriber connections Redis reached;
// a process multiplexing N local consumers counts once.
func (b *RedisBus) Publish(ctx context.Context, channel string, payload []byte) (int64, error) {
	return b.publisher.Publish(ctx, channel, payload).Result()
}

func (b *RedisBus) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	s, first, err := b.local.attach(channel)
	if err != nil {
		return nil, err
	}
	if first {
		b.subMu.Lock()
		err = b.pubsub.Subscribe(ctx, channel)
		b.subMu.Unlock()
		if err != nil {
			b.local.detach(s)
			s.finish(err)
			return nil, err
		}
	}
	return s, nil
}

// Close tears down both connections; the relay exits and every live
// subscription terminates with ErrClosed.
func (b *RedisBus) Close() error {
	var err error
	b.closeOnce.Do(func() {
		err = b.pubsub.Close()
		if cerr := b.subscriber.Close(); err == nil {
			err = cerr
		}
		if cerr := b.publisher.Close(); err == nil {
			err = cerr
		}
	})
	return err
}

func (b *RedisBus) relay() {
	for msg := range b.pubsub.Channel(redis.WithChannelSize(256)) {
		b.local.dispatch(msg.Channel, []byte(msg.Payload))
	}
	// Upstream gone; nothing more will be delivered.
	b.local.shutdown(ErrClosed)
}

func (b *RedisBus) dropUpstream(channel string) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	if err := b.pubsub.Unsubscribe(context.Background(), channel); err != nil {
		b.logger.Warn("bus: unsubscribe failed", "channel", channel, "error", err)
	}
}
