package events

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes events through NATS JetStream
type NATSPublisher struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	streams map[string]bool
	mu      sync.Mutex
}

// NewNATSPublisher connects to NATS and enables JetStream
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &NATSPublisher{
		conn:    conn,
		js:      js,
		streams: make(map[string]bool),
	}, nil
}

// sanitizeStreamName maps a subject to a valid stream name.
// Stream names can only contain A-Z, a-z, 0-9, dash and underscore.
func sanitizeStreamName(subject string) string {
	return strings.NewReplacer(".", "-", "*", "all", ">", "all").Replace(subject)
}

// ensureStream creates the subject's backing stream on first use
func (p *NATSPublisher) ensureStream(subject string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streams[subject] {
		return nil
	}

	streamName := "lingobridge-" + sanitizeStreamName(subject)
	if _, err := p.js.StreamInfo(streamName); err != nil {
		_, err = p.js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
			Storage:  nats.FileStorage,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream for subject %s: %w", subject, err)
		}
	}

	p.streams[subject] = true
	return nil
}

// Publish publishes asynchronously through JetStream
func (p *NATSPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := p.ensureStream(subject); err != nil {
		return err
	}

	if _, err := p.js.PublishAsync(subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}
	return nil
}

// Close drains pending publishes and closes the connection
func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}
