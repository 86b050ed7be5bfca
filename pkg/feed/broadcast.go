// Package feed fans settled rounds out to live listeners (the
// websocket round stream). Slow listeners drop updates rather than
// back-pressuring settlement.
package feed

import (
	"context"
	"sync"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/game"
)

// Broadcaster is a minimal pub/sub for settled rounds.
type Broadcaster struct {
	mu        sync.Mutex
	listeners map[chan game.RoundRecord]struct{}
	buffer    int
}

// NewBroadcaster creates a broadcaster whose listener channels hold
// buffer records each.
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broadcaster{
		listeners: make(map[chan game.RoundRecord]struct{}),
		buffer:    buffer,
	}
}

// Publish delivers a settled round to every listener, dropping it for
// any listener whose buffer is full.
func (b *Broadcaster) Publish(record game.RoundRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.listeners {
		select {
		case ch <- record:
		default:
			// listener is behind; skip this record for it
		}
	}
}

// Listen registers a listener. The returned channel closes when the
// context is done or the returned cancel is called.
func (b *Broadcaster) Listen(ctx context.Context) (<-chan game.RoundRecord, context.CancelFunc) {
	ch := make(chan game.RoundRecord, b.buffer)

	b.mu.Lock()
	b.listeners[ch] = struct{}{}
	b.mu.Unlock()

	listenerCtx, cancel := context.WithCancel(ctx)
	go func() {
		<-listenerCtx.Done()
		b.mu.Lock()
		delete(b.listeners, ch)
		b.mu.Unlock()
		close(ch)
	}()

	return ch, cancel
}

// ListenerCount returns the number of attached listeners.
func (b *Broadcaster) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
