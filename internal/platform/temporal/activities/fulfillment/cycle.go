package fulfillment

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	fulfillmentports "github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
)

const (
	// RunScanCycleActivityName resolves a barcode and applies the matched action.
	RunScanCycleActivityName = "fulfillment.activities.RunScanCycle"
	// RunSearchCycleActivityName resolves a SKU query and applies the matched action.
	RunSearchCycleActivityName = "fulfillment.activities.RunSearchCycle"
)

// Activities groups activities that operate on the fulfillment bounded context.
type Activities struct {
	service fulfillmentports.Service
}

// NewActivities wires the fulfillment service into the Temporal activities bundle.
func NewActivities(service fulfillmentports.Service) *Activities {
	return &Activities{service: service}
}

// RunScanCycle executes one barcode-driven fulfillment cycle.
func (a *Activities) RunScanCycle(ctx context.Context, input fulfillmenttypes.ScanInput) (*fulfillmenttypes.CycleOutcome, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("scan cycle activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("scan cycle activity not initialized")
	}
	logger.Info("RunScanCycle activity started", "orderId", input.OrderID)
	outcome, err := a.service.ScanBarcode(ctx, input)
	if err != nil {
		logger.Error("RunScanCycle activity failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	if outcome != nil {
		logger.Info("RunScanCycle activity completed", "orderId", input.OrderID, "outcome", string(outcome.Kind))
	}
	return outcome, nil
}

// RunSearchCycle executes one search-driven fulfillment cycle.
func (a *Activities) RunSearchCycle(ctx context.Context, input fulfillmenttypes.SearchInput) (*fulfillmenttypes.CycleOutcome, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("search cycle activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("search cycle activity not initialized")
	}
	logger.Info("RunSearchCycle activity started", "orderId", input.OrderID)
	outcome, err := a.service.SearchSKU(ctx, input)
	if err != nil {
		logger.Error("RunSearchCycle activity failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	if outcome != nil {
		logger.Info("RunSearchCycle activity completed", "orderId", input.OrderID, "outcome", string(outcome.Kind))
	}
	return outcome, nil
}
