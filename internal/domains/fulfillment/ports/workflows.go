package ports

import (
	"context"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
)

// WorkflowOrchestrator starts scan/search cycles, either inline or on a
// durable workflow engine. Each invocation is an independent cycle; the
// orchestrator enforces no mutual exclusion between concurrent triggers.
type WorkflowOrchestrator interface {
	RunScanCycle(ctx context.Context, input fulfillmenttypes.ScanInput) (*fulfillmenttypes.CycleOutcome, error)
	RunSearchCycle(ctx context.Context, input fulfillmenttypes.SearchInput) (*fulfillmenttypes.CycleOutcome, error)
}
