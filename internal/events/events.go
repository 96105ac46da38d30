// Package events publishes translation lifecycle notifications to a
// pluggable broker. Publishing is fire-and-forget from the caller's
// perspective: a broker failure never fails the translation.
package events

import "context"

// SubjectTranslationCompleted carries the stored history record as JSON
const SubjectTranslationCompleted = "lingobridge.translation.completed"

// Publisher publishes event payloads to a subject/topic
type Publisher interface {
	// Publish publishes a message to a subject/topic
	Publish(ctx context.Context, subject string, data []byte) error

	// Close closes the connection
	Close() error
}
