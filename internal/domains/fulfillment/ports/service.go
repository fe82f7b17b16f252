package ports

import (
	"context"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
)

// Service defines the fulfillment use cases exposed to adapters
// (inbound/driving port).
type Service interface {
	// ScanBarcode runs one barcode-driven fulfillment cycle: resolve,
	// match, and either fulfill, propose a substitution, or notify.
	ScanBarcode(ctx context.Context, input fulfillmenttypes.ScanInput) (*fulfillmenttypes.CycleOutcome, error)
	// SearchSKU runs the same cycle from a free-text SKU query.
	SearchSKU(ctx context.Context, input fulfillmenttypes.SearchInput) (*fulfillmenttypes.CycleOutcome, error)
	// Fulfill increments a line's shipped quantity, optionally reassigning
	// its product reference when a substitution was confirmed.
	Fulfill(ctx context.Context, input fulfillmenttypes.FulfillInput) (*fulfillmenttypes.FulfillmentResult, error)
	// ConfirmSubstitution applies a previously proposed substitution pair.
	ConfirmSubstitution(ctx context.Context, input fulfillmenttypes.SubstitutionInput) (*fulfillmenttypes.FulfillmentResult, error)
	// MarkUnavailable flags a line the picker cannot fulfill, appending the
	// reason to the line's notes when one is given.
	MarkUnavailable(ctx context.Context, input fulfillmenttypes.UnavailableInput) error
	// Progress recomputes the derived fulfillment progress for an order.
	Progress(ctx context.Context, ref fulfillmenttypes.OrderRef) (*fulfillmenttypes.OrderView, error)
	// OrderDetail loads the order header, lines, and progress in one view.
	OrderDetail(ctx context.Context, ref fulfillmenttypes.OrderRef) (*fulfillmenttypes.OrderView, error)
	// ListOpenOrders returns the orders needing fulfillment with their
	// derived priorities.
	ListOpenOrders(ctx context.Context) ([]fulfillmenttypes.OrderSummary, error)
}
