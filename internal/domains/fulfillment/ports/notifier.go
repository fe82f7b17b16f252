package ports

import (
	"context"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
)

// Notifier delivers user-visible workflow signals. Implementations must
// not block the workflow on delivery.
type Notifier interface {
	Notify(ctx context.Context, notification fulfillmenttypes.Notification)
}
