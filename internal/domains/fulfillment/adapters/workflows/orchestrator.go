package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
	cycleworkflows "github.com/CeDev0224/inventree/internal/durable/temporal/workflows/fulfillment"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalFulfillmentWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineFulfillmentWorkflows)(nil)
)

// TemporalFulfillmentWorkflows starts fulfillment cycles on a Temporal cluster.
type TemporalFulfillmentWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalFulfillmentWorkflows wires a Temporal client into the orchestrator.
func NewTemporalFulfillmentWorkflows(c client.Client) *TemporalFulfillmentWorkflows {
	return &TemporalFulfillmentWorkflows{client: c, taskQueue: cycleworkflows.CycleTaskQueue}
}

// RunScanCycle starts the workflow backing one barcode-driven cycle and
// waits for its outcome. Workflow IDs embed the trace so concurrent scans on
// the same order stay independent executions.
func (o *TemporalFulfillmentWorkflows) RunScanCycle(ctx context.Context, input fulfillmenttypes.ScanInput) (*fulfillmenttypes.CycleOutcome, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal fulfillment workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("fulfillment-scan-%d-%s", input.OrderID, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		cycleworkflows.ScanCycleWorkflowName,
		cycleworkflows.ScanCycleWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		return nil, err
	}
	var outcome fulfillmenttypes.CycleOutcome
	if err := run.Get(ctx, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// RunSearchCycle starts the workflow backing one search-driven cycle and
// waits for its outcome.
func (o *TemporalFulfillmentWorkflows) RunSearchCycle(ctx context.Context, input fulfillmenttypes.SearchInput) (*fulfillmenttypes.CycleOutcome, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal fulfillment workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("fulfillment-search-%d-%s", input.OrderID, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		cycleworkflows.SearchCycleWorkflowName,
		cycleworkflows.SearchCycleWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		return nil, err
	}
	var outcome fulfillmenttypes.CycleOutcome
	if err := run.Get(ctx, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// InlineFulfillmentWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks.
type InlineFulfillmentWorkflows struct {
	service ports.Service
}

// NewInlineFulfillmentWorkflows wraps the fulfillment service for synchronous execution.
func NewInlineFulfillmentWorkflows(service ports.Service) *InlineFulfillmentWorkflows {
	return &InlineFulfillmentWorkflows{service: service}
}

// RunScanCycle delegates to the application service without durable orchestration.
func (o *InlineFulfillmentWorkflows) RunScanCycle(ctx context.Context, input fulfillmenttypes.ScanInput) (*fulfillmenttypes.CycleOutcome, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline fulfillment workflows not configured")
	}
	return o.service.ScanBarcode(ctx, input)
}

// RunSearchCycle delegates to the application service without durable orchestration.
func (o *InlineFulfillmentWorkflows) RunSearchCycle(ctx context.Context, input fulfillmenttypes.SearchInput) (*fulfillmenttypes.CycleOutcome, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline fulfillment workflows not configured")
	}
	return o.service.SearchSKU(ctx, input)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
