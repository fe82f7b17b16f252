package notify

import (
	"context"
	"log/slog"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
)

// SlogNotifier emits workflow notifications as structured log records. It is
// the default delivery channel when no push transport is configured.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier wires the notifier over the given logger, defaulting to
// the process logger.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger}
}

var _ ports.Notifier = (*SlogNotifier)(nil)

func (n *SlogNotifier) Notify(ctx context.Context, notification fulfillmenttypes.Notification) {
	attrs := []any{
		slog.String("kind", string(notification.Kind)),
		slog.String("title", notification.Title),
	}
	switch notification.Kind {
	case fulfillmenttypes.NotifyError:
		n.logger.ErrorContext(ctx, notification.Message, attrs...)
	case fulfillmenttypes.NotifyWarning:
		n.logger.WarnContext(ctx, notification.Message, attrs...)
	default:
		n.logger.InfoContext(ctx, notification.Message, attrs...)
	}
}
