package events

import (
	"context"
	"fmt"
	"sync"
)

// MemoryPublisher buffers events in-process. Used in development and as
// the default backend; tests read back what was published.
type MemoryPublisher struct {
	channels map[string]chan []byte
	mu       sync.RWMutex
}

// NewMemoryPublisher creates an in-memory publisher
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{
		channels: make(map[string]chan []byte),
	}
}

func (p *MemoryPublisher) getOrCreateChannel(subject string) chan []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ch, exists := p.channels[subject]; exists {
		return ch
	}

	ch := make(chan []byte, 10000)
	p.channels[subject] = ch
	return ch
}

// Publish buffers a copy of the payload on the subject's channel
func (p *MemoryPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	ch := p.getOrCreateChannel(subject)

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	select {
	case ch <- dataCopy:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("channel full for subject: %s", subject)
	}
}

// Next pops the oldest buffered payload for a subject, or nil when empty
func (p *MemoryPublisher) Next(subject string) []byte {
	p.mu.RLock()
	ch, exists := p.channels[subject]
	p.mu.RUnlock()
	if !exists {
		return nil
	}

	select {
	case data := <-ch:
		return data
	default:
		return nil
	}
}

// Pending returns the number of buffered payloads for a subject
func (p *MemoryPublisher) Pending(subject string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if ch, exists := p.channels[subject]; exists {
		return len(ch)
	}
	return 0
}

// Close drops all buffered events
func (p *MemoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for subject, ch := range p.channels {
		close(ch)
		delete(p.channels, subject)
	}
	return nil
}
