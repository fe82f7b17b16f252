package fulfillment

import (
	"go.temporal.io/sdk/workflow"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	"github.com/CeDev0224/inventree/internal/durable/temporal/sequences"
)

const (
	// ScanCycleWorkflowName is the public identifier for registering the scan workflow.
	ScanCycleWorkflowName = "fulfillment.workflows.ScanCycle"
	// SearchCycleWorkflowName is the public identifier for registering the search workflow.
	SearchCycleWorkflowName = "fulfillment.workflows.SearchCycle"
	// CycleTaskQueue is the queue consumed by the worker processing fulfillment cycles.
	CycleTaskQueue = "FULFILLMENT_CYCLE"
)

// ScanCycleWorkflowInput captures the payload of one barcode-driven cycle.
type ScanCycleWorkflowInput struct {
	Command fulfillmenttypes.ScanInput
	TraceID string
}

// SearchCycleWorkflowInput captures the payload of one search-driven cycle.
type SearchCycleWorkflowInput struct {
	Command fulfillmenttypes.SearchInput
	TraceID string
}

// ScanCycleWorkflow orchestrates one barcode-driven fulfillment cycle.
func ScanCycleWorkflow(ctx workflow.Context, input ScanCycleWorkflowInput) (*fulfillmenttypes.CycleOutcome, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ScanCycleWorkflow started", withTraceID(input.TraceID, "orderId", input.Command.OrderID)...)
	outcome, err := sequences.RunScanCycleSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ScanCycleWorkflow failed", withTraceID(input.TraceID, "orderId", input.Command.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("ScanCycleWorkflow completed", withTraceID(input.TraceID, "orderId", input.Command.OrderID)...)
	return outcome, nil
}

// SearchCycleWorkflow orchestrates one search-driven fulfillment cycle.
func SearchCycleWorkflow(ctx workflow.Context, input SearchCycleWorkflowInput) (*fulfillmenttypes.CycleOutcome, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("SearchCycleWorkflow started", withTraceID(input.TraceID, "orderId", input.Command.OrderID)...)
	outcome, err := sequences.RunSearchCycleSequence(ctx, input.Command)
	if err != nil {
		logger.Error("SearchCycleWorkflow failed", withTraceID(input.TraceID, "orderId", input.Command.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("SearchCycleWorkflow completed", withTraceID(input.TraceID, "orderId", input.Command.OrderID)...)
	return outcome, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
