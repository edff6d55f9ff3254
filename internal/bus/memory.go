package bus

import (
	"context"
)

// MemoryBus is a single-process Bus. Tests and single-node deployments use
// it in place of the Redis bus; semantics are identical apart from
// cross-process delivery.
type MemoryBus struct {
	local *fanout
}

// NewMemoryBus creates a MemoryBus with the given per-subscriber buffer.
// Buffers below DefaultSubscriberBuffer are raised to it.
func NewMemoryBus(buffer int) *MemoryBus {
	return &MemoryBus{local: newFanout(buffer)}
}

func (b *MemoryBus) Publish(_ context.Context, channel string, payload []byte) (int64, error) {
	return b.local.dispatch(channel, payload), nil
}

func (b *MemoryBus) Subscribe(_ context.Context, channel string) (Subscription, error) {
	s, _, err := b.local.attach(channel)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Close terminates every subscription with ErrClosed.
func (b *MemoryBus) Close() error {
	b.local.shutdown(ErrClosed)
	return nil
}
