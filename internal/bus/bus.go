// Package bus provides best-effort, at-most-once pub/sub over named string
// channels. Messages published while no subscriber is attached are dropped;
// there is no persistence and no replay.
package bus

import (
	"context"
	"errors"
)

// Bus is the behavior producers and consumers depend on.
type Bus interface {
	// Publish delivers payload to every subscriber currently attached to
	// channel and returns the number of receivers at dispatch time.
	Publish(ctx context.Context, channel string, payload []byte) (int64, error)
	// Subscribe attaches a new subscriber to channel. Each subscriber
	// receives every message published after it attached.
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

// Subscription is one attached consumer. Events() is closed when the
// subscription ends for any reason; Err() reports why (nil after Close).
type Subscription interface {
	Events() <-chan []byte
	Err() error
	Close() error
}

var (
	// ErrSlowSubscriber terminates a subscriber whose buffer overflowed.
	// Other subscribers on the same channel are unaffected.
	ErrSlowSubscriber = errors.New("bus: subscriber buffer overflow")
	// ErrClosed terminates all subscribers when the bus shuts down.
	ErrClosed = errors.New("bus: closed")
)

// DefaultSubscriberBuffer is the per-subscriber buffer floor.
const DefaultSubscriberBuffer = 64
