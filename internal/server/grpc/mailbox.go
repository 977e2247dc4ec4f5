package grpc

import (
	"context"
	"errors"
	"sync"
)

// ErrMailboxFull is returned by Notify when the recipient has not collected
// earlier messages.
var ErrMailboxFull = errors.New("mailbox full")

// Mailbox queues notifications per identity until the identity's client
// collects them through the Notifications call.
type Mailbox struct {
	mu    sync.Mutex
	limit int
	boxes map[string][]string
}

func NewMailbox(limit int) *Mailbox {
	if limit <= 0 {
		limit = 16
	}
	return &Mailbox{limit: limit, boxes: make(map[string][]string)}
}

// Notify implements services.Notifier.
func (m *Mailbox) Notify(_ context.Context, identityKey, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.boxes[identityKey]) >= m.limit {
		return ErrMailboxFull
	}
	m.boxes[identityKey] = append(m.boxes[identityKey], message)
	return nil
}

// Drain returns and clears the queued messages of identityKey.
func (m *Mailbox) Drain(identityKey string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := m.boxes[identityKey]
	delete(m.boxes, identityKey)
	return msgs
}
