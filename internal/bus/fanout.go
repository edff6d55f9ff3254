package bus

import (
	"sync"
)

// fanout multiplexes one upstream feed to N local subscribers per channel.
// Both bus implementations share it so buffering and overflow semantics
// stay identical in-process and cross-process.
type fanout struct {
	mu       sync.Mutex
	channels map[string]map[*localSub]struct{}
	buffer   int
	closed   bool

	// onEmpty, when set, is invoked (outside the lock) after the last
	// subscriber of a channel detaches. The Redis bus uses it to drop the
	// upstream subscription.
	onEmpty func(channel string)
}

func newFanout(buffer int) *fanout {
	if buffer < DefaultSubscriberBuffer {
		buffer = DefaultSubscriberBuffer
	}
	return &fanout{
		channels: make(map[string]map[*localSub]struct{}),
		buffer:   buffer,
	}
}

// attach registers a new subscriber and reports whether it is the first
// one on that channel.
func (f *fanout) attach(channel string) (*localSub, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, false, ErrClosed
	}
	s := &localSub{
		owner:   f,
		channel: channel,
		ch:      make(chan []byte, f.buffer),
	}
	subs, ok := f.channels[channel]
	if !ok {
		subs = make(map[*localSub]struct{})
		f.channels[channel] = subs
	}
	subs[s] = struct{}{}
	return s, !ok, nil
}

// detach removes s from the registry. Reports whether s was still attached.
func (f *fanout) detach(s *localSub) bool {
	f.mu.Lock()
	subs, ok := f.channels[s.channel]
	if !ok {
		f.mu.Unlock()
		return false
	}
	if _, ok := subs[s]; !ok {
		f.mu.Unlock()
		return false
	}
	delete(subs, s)
	empty := len(subs) == 0
	if empty {
		delete(f.channels, s.channel)
	}
	cb := f.onEmpty
	f.mu.Unlock()

	if empty && cb != nil {
		cb(s.channel)
	}
	return true
}

// dispatch fans payload out to every subscriber of channel. A subscriber
// with a full buffer is detached and terminated with ErrSlowSubscriber;
// the rest keep receiving. Returns the receiver count at dispatch time.
func (f *fanout) dispatch(channel string, payload []byte) int64 {
	f.mu.Lock()
	subs := f.channels[channel]
	n := int64(len(subs))
	var overflowed []*localSub
	for s := range subs {
		select {
		case s.ch <- payload:
		default:
			delete(subs, s)
			overflowed = append(overflowed, s)
		}
	}
	empty := n > 0 && len(subs) == 0
	if empty {
		delete(f.channels, channel)
	}
	cb := f.onEmpty
	f.mu.Unlock()

	for _, s := range overflowed {
		s.finish(ErrSlowSubscriber)
	}
	if empty && cb != nil {
		cb(channel)
	}
	return n
}

// shutdown terminates every subscriber with cause and rejects new attaches.
func (f *fanout) shutdown(cause error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	var all []*localSub
	for _, subs := range f.channels {
		for s := range subs {
			all = append(all, s)
		}
	}
	f.channels = make(map[string]map[*localSub]struct{})
	f.mu.Unlock()

	for _, s := range all {
		s.finish(cause)
	}
}

// localSub is a Subscription backed by a fanout registry.
type localSub struct {
	owner   *fanout
	channel string
	ch      chan []byte

	mu   sync.Mutex
	done bool
	err  error
}

func (s *localSub) Events() <-chan []byte { return s.ch }

func (s *localSub) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *localSub) Close() error {
	s.owner.detach(s)
	s.finish(nil)
	return nil
}

// finish closes the event channel exactly once. Callers must have already
// detached s from the registry, so no dispatch can race the close.
func (s *localSub) finish(err error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.err = err
	s.mu.Unlock()
	close(s.ch)
}
