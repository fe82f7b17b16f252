package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	fulfillmentactivities "github.com/CeDev0224/inventree/internal/platform/temporal/activities/fulfillment"
)

// cycleActivityOptions run each cycle as a single attempt. The workflow must
// never retry mutations on its own; failed scans come back to the picker as
// an error notification and a new trigger is a new cycle.
func cycleActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
}

// RunScanCycleSequence executes the single activity backing a scan cycle.
func RunScanCycleSequence(ctx workflow.Context, input fulfillmenttypes.ScanInput) (*fulfillmenttypes.CycleOutcome, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("scan cycle sequence started", "orderId", input.OrderID)
	ctx = workflow.WithActivityOptions(ctx, cycleActivityOptions())

	var outcome fulfillmenttypes.CycleOutcome
	err := workflow.ExecuteActivity(ctx, fulfillmentactivities.RunScanCycleActivityName, input).Get(ctx, &outcome)
	if err != nil {
		logger.Error("scan cycle sequence failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("scan cycle sequence completed", "orderId", input.OrderID, "outcome", string(outcome.Kind))
	return &outcome, nil
}

// RunSearchCycleSequence executes the single activity backing a search cycle.
func RunSearchCycleSequence(ctx workflow.Context, input fulfillmenttypes.SearchInput) (*fulfillmenttypes.CycleOutcome, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("search cycle sequence started", "orderId", input.OrderID)
	ctx = workflow.WithActivityOptions(ctx, cycleActivityOptions())

	var outcome fulfillmenttypes.CycleOutcome
	err := workflow.ExecuteActivity(ctx, fulfillmentactivities.RunSearchCycleActivityName, input).Get(ctx, &outcome)
	if err != nil {
		logger.Error("search cycle sequence failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("search cycle sequence completed", "orderId", input.OrderID, "outcome", string(outcome.Kind))
	return &outcome, nil
}
