package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/CeDev0224/inventree/internal/app/api"
	inventreeclient "github.com/CeDev0224/inventree/internal/clients/http/inventree"
	fulfillmentbackend "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/backend"
	fulfillmentmemory "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/memory"
	fulfillmentnotify "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/notify"
	fulfillmentobs "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/observability"
	fulfillmentapp "github.com/CeDev0224/inventree/internal/domains/fulfillment/application"
	cycleworkflows "github.com/CeDev0224/inventree/internal/durable/temporal/workflows/fulfillment"
	platformobservability "github.com/CeDev0224/inventree/internal/platform/observability"
	fulfillmentactivities "github.com/CeDev0224/inventree/internal/platform/temporal/activities/fulfillment"
)

func main() {
	ctx := context.Background()
	const serviceName = "fulfillment-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	backendClient, err := inventreeclient.NewClient(cfg.BackendBaseURL, &http.Client{Timeout: cfg.BackendTimeout})
	if err != nil {
		logger.Error("failed to build backend client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	backend, err := fulfillmentbackend.NewAdapter(backendClient)
	if err != nil {
		logger.Error("failed to build backend adapter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	coreService := fulfillmentapp.NewService(
		backend,
		fulfillmentmemory.NewLineCache(),
		fulfillmentnotify.NewSlogNotifier(logger),
	)
	service := fulfillmentobs.New(
		coreService,
		fulfillmentobs.WithLogger(logger),
		fulfillmentobs.WithTracer(instruments.Tracer("internal.fulfillment.application")),
		fulfillmentobs.WithMeter(instruments.Meter("internal.fulfillment.application")),
	)
	activities := fulfillmentactivities.NewActivities(service)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, cycleworkflows.CycleTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(cycleworkflows.ScanCycleWorkflow, workflow.RegisterOptions{Name: cycleworkflows.ScanCycleWorkflowName})
	w.RegisterWorkflowWithOptions(cycleworkflows.SearchCycleWorkflow, workflow.RegisterOptions{Name: cycleworkflows.SearchCycleWorkflowName})
	w.RegisterActivityWithOptions(activities.RunScanCycle, activity.RegisterOptions{Name: fulfillmentactivities.RunScanCycleActivityName})
	w.RegisterActivityWithOptions(activities.RunSearchCycle, activity.RegisterOptions{Name: fulfillmentactivities.RunSearchCycleActivityName})

	logger.Info("worker listening", slog.String("taskQueue", cycleworkflows.CycleTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
