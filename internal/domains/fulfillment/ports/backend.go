package ports

import (
	"context"
	"errors"

	"github.com/CeDev0224/inventree/internal/domains/fulfillment/domain"
)

// Error taxonomy for backend calls. Adapters map transport-level failures
// onto these sentinels so the application layer never inspects HTTP codes.
var (
	// ErrTransport covers network failures, timeouts, and 5xx responses.
	ErrTransport = errors.New("backend transport failure")
	// ErrNotFound covers unrecognized barcodes, empty search results, and
	// missing resources.
	ErrNotFound = errors.New("not found")
	// ErrValidation covers updates the backend rejected, including
	// invariant violations such as overshipping a line.
	ErrValidation = errors.New("backend rejected update")
)

// LineFilter scopes a line-item listing.
type LineFilter struct {
	OrderID int64
	// OutstandingOnly restricts the listing to lines with remaining
	// quantity, matching the backend's "outstanding" query parameter.
	OutstandingOnly bool
}

// LineUpdate is a partial update to one line item. Nil fields are left
// untouched by the backend. The idempotency key is generated fresh per
// call, so repeated triggers remain independent requests.
type LineUpdate struct {
	LineID         int64
	Shipped        *float64
	Part           *int64
	Notes          *string
	IdempotencyKey string
}

// Backend is the outbound port over the inventory backend's REST API.
// The backend owns all business validation and persistence; this port only
// carries the contract the fulfillment workflow consumes.
type Backend interface {
	// ResolveBarcode decodes scanned text into a catalog part.
	// Unrecognized barcodes yield ErrNotFound.
	ResolveBarcode(ctx context.Context, barcode string) (*domain.Part, error)
	// SearchParts runs a free-text product search capped at limit results.
	SearchParts(ctx context.Context, query string, limit int) ([]domain.Part, error)
	// GetOrder loads an order header including the customer summary.
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	// ListOpenOrders returns orders in open statuses with outstanding lines.
	ListOpenOrders(ctx context.Context) ([]domain.Order, error)
	// ListLines returns the line items matching the filter.
	ListLines(ctx context.Context, filter LineFilter) ([]domain.LineItem, error)
	// UpdateLine submits a partial line update and returns the updated record.
	UpdateLine(ctx context.Context, update LineUpdate) (*domain.LineItem, error)
}
