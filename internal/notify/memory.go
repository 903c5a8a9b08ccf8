package notify

import (
	"context"
	"sync"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/logger"
)

// SentMessage is one delivered notification, kept for inspection.
type SentMessage struct {
	Email   string
	Message string
}

// InMemoryNotifier records notifications instead of delivering them. Used by
// the memory-store server mode and by tests.
type InMemoryNotifier struct {
	mu   sync.Mutex
	sent []SentMessage
}

func NewInMemoryNotifier() *InMemoryNotifier {
	return &InMemoryNotifier{}
}

func (n *InMemoryNotifier) Send(ctx context.Context, customer *domain.Customer, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, SentMessage{Email: customer.Email, Message: message})
	logger.Debug("Notification recorded", "to", customer.Email, "message", message)
	return nil
}

// Sent returns a copy of everything delivered so far.
func (n *InMemoryNotifier) Sent() []SentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]SentMessage, len(n.sent))
	copy(out, n.sent)
	return out
}

// Clear drops the recorded messages.
func (n *InMemoryNotifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}
