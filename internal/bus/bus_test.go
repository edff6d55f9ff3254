package bus

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishWithoutSubscribersDrops(t *testing.T) {
	b := NewMemoryBus(0)
	defer b.Close()

	n, err := b.Publish(context.Background(), "doc:none:progress", []byte(`{"x":1}`))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestFanOutDeliversToEverySubscriberInOrder(t *testing.T) {
	b := NewMemoryBus(0)
	defer b.Close()
	ctx := context.Background()

	const subscribers = 3
	const messages = 10

	subs := make([]Subscription, 0, subscribers)
	for i := 0; i < subscribers; i++ {
		sub, err := b.Subscribe(ctx, "doc:abc:progress")
		require.NoError(t, err)
		subs = append(subs, sub)
	}

	for i := 0; i < messages; i++ {
		n, err := b.Publish(ctx, "doc:abc:progress", []byte(fmt.Sprintf("msg-%d", i)))
		require.NoError(t, err)
		assert.Equal(t, int64(subscribers), n)
	}

	for _, sub := range subs {
		for i := 0; i < messages; i++ {
			payload := <-sub.Events()
			assert.Equal(t, fmt.Sprintf("msg-%d", i), string(payload))
		}
		require.NoError(t, sub.Close())
	}
}

func TestChannelsAreIsolated(t *testing.T) {
	b := NewMemoryBus(0)
	defer b.Close()
	ctx := context.Background()

	subA, err := b.Subscribe(ctx, "doc:a:progress")
	require.NoError(t, err)
	defer subA.Close()
	subB, err := b.Subscribe(ctx, "doc:b:progress")
	require.NoError(t, err)
	defer subB.Close()

	n, err := b.Publish(ctx, "doc:a:progress", []byte("only-a"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, "only-a", string(<-subA.Events()))
	select {
	case payload := <-subB.Events():
		t.Fatalf("subscriber of doc:b received %q", payload)
	default:
	}
}

func TestSlowSubscriberIsDetachedOthersSurvive(t *testing.T) {
	b := NewMemoryBus(DefaultSubscriberBuffer)
	defer b.Close()
	ctx := context.Background()

	slow, err := b.Subscribe(ctx, "doc:x:progress")
	require.NoError(t, err)
	fast, err := b.Subscribe(ctx, "doc:x:progress")
	require.NoError(t, err)
	defer fast.Close()

	// Fill the slow subscriber's buffer, draining fast as we go.
	for i := 0; i < DefaultSubscriberBuffer; i++ {
		_, err := b.Publish(ctx, "doc:x:progress", []byte("fill"))
		require.NoError(t, err)
		<-fast.Events()
	}

	// This one overflows slow and detaches it.
	n, err := b.Publish(ctx, "doc:x:progress", []byte("overflow"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "overflow", string(<-fast.Events()))

	// Drain what slow buffered, then observe the terminated channel.
	received := 0
	for range slow.Events() {
		received++
	}
	assert.Equal(t, DefaultSubscriberBuffer, received)
	assert.ErrorIs(t, slow.Err(), ErrSlowSubscriber)

	// The channel keeps working for the survivor.
	n, err = b.Publish(ctx, "doc:x:progress", []byte("after"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, "after", string(<-fast.Events()))
}

func TestCloseTerminatesSubscriptionsWithErrClosed(t *testing.T) {
	b := NewMemoryBus(0)
	sub, err := b.Subscribe(context.Background(), "doc:y:progress")
	require.NoError(t, err)

	require.NoError(t, b.Close())

	_, open := <-sub.Events()
	assert.False(t, open)
	assert.ErrorIs(t, sub.Err(), ErrClosed)

	_, err = b.Subscribe(context.Background(), "doc:y:progress")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCloseIsNilErrAfterExplicitUnsubscribe(t *testing.T) {
	b := NewMemoryBus(0)
	defer b.Close()

	sub, err := b.Subscribe(context.Background(), "doc:z:progress")
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	_, open := <-sub.Events()
	assert.False(t, open)
	assert.NoError(t, sub.Err())

	// A publish after the last detach reaches nobody.
	n, err := b.Publish(context.Background(), "doc:z:progress", []byte("late"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
