package memory

import (
	"context"
	"sync"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
)

// Notifier records emitted notifications in memory. Intended for tests and
// local runs without a delivery channel.
type Notifier struct {
	mu       sync.Mutex
	recorded []fulfillmenttypes.Notification
}

// NewNotifier builds an empty recorder.
func NewNotifier() *Notifier {
	return &Notifier{}
}

var _ ports.Notifier = (*Notifier)(nil)

func (n *Notifier) Notify(_ context.Context, notification fulfillmenttypes.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recorded = append(n.recorded, notification)
}

// Recorded returns a copy of everything notified so far.
func (n *Notifier) Recorded() []fulfillmenttypes.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]fulfillmenttypes.Notification, len(n.recorded))
	copy(out, n.recorded)
	return out
}

// Reset clears the recording.
func (n *Notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recorded = nil
}
