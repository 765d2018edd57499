package events

import (
	"sync"

	"go.uber.org/zap"
)

// Bus fans domain events out to subscribers over buffered channels.
// Publishing never blocks the engine: a subscriber that falls behind has
// events dropped and counted rather than stalling settlement.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan *Event
	bufferSize  int
	closed      bool
	logger      *zap.Logger
}

// Config holds bus configuration.
type Config struct {
	BufferSize int
	Logger     *zap.Logger
}

// NewBus creates a bus with the given per-subscriber buffer size.
func NewBus(cfg *Config) *Bus {
	size := cfg.BufferSize
	if size <= 0 {
		size = 1024
	}
	return &Bus{
		bufferSize: size,
		logger:     cfg.Logger,
	}
}

// Subscribe registers a new subscriber and returns its channel. The channel
// is closed when the bus closes.
func (b *Bus) Subscribe() <-chan *Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan *Event, b.bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.subscribers = append(b.subscribers, ch)
	SubscribersGauge.Set(float64(len(b.subscribers)))
	return ch
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call
// for a channel the bus already closed.
func (b *Bus) Unsubscribe(ch <-chan *Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(sub)
			SubscribersGauge.Set(float64(len(b.subscribers)))
			return
		}
	}
}

// Publish delivers ev to every subscriber without blocking.
func (b *Bus) Publish(ev *Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	EmittedTotal.WithLabelValues(ev.Type).Inc()

	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			DroppedTotal.Inc()
			b.logger.Warn("event-dropped-subscriber-full",
				zap.String("type", ev.Type),
				zap.Int("buffer-size", b.bufferSize))
		}
	}
}

// Close closes all subscriber channels. Publish becomes a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
	SubscribersGauge.Set(0)
}
