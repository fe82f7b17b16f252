package ports

import (
	"context"

	"github.com/CeDev0224/inventree/internal/domains/fulfillment/domain"
)

// LineCache holds the last fetched open-line snapshot per order. The
// collection is read-mostly: invalidated after every successful mutation
// and refilled from the backend on the next read. There is deliberately no
// merge of local deltas; the backend stays authoritative.
type LineCache interface {
	Get(ctx context.Context, orderID int64) ([]domain.LineItem, bool)
	Put(ctx context.Context, orderID int64, lines []domain.LineItem)
	Invalidate(ctx context.Context, orderID int64)
}
