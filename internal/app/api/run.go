package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	inventreeclient "github.com/CeDev0224/inventree/internal/clients/http/inventree"
	fulfillmentbackend "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/backend"
	fulfillmenthttp "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/http"
	fulfillmentmemory "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/memory"
	fulfillmentnotify "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/notify"
	fulfillmentobs "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/observability"
	fulfillmentworkflows "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/workflows"
	fulfillmentapp "github.com/CeDev0224/inventree/internal/domains/fulfillment/application"
	fulfillmentports "github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
	platformobservability "github.com/CeDev0224/inventree/internal/platform/observability"
)

// Run boots the fulfillment HTTP API with observability, the backend client,
// and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "fulfillment-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
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
		return fmt.Errorf("failed to build backend client: %w", err)
	}
	backend, err := fulfillmentbackend.NewAdapter(backendClient)
	if err != nil {
		return fmt.Errorf("failed to build backend adapter: %w", err)
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

	var orchestrator fulfillmentports.WorkflowOrchestrator = fulfillmentworkflows.NewInlineFulfillmentWorkflows(service)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running cycles inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = fulfillmentworkflows.NewTemporalFulfillmentWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := fulfillmenthttp.NewHandlers(service, orchestrator)
	router := fulfillmenthttp.NewRouter(serviceName, handlers)

	addr := ":" + cfg.Port
	logger.Info("Fulfillment API listening", slog.String("addr", addr), slog.String("backend", cfg.BackendBaseURL))
	if err := router.Run(addr); err != nil {
		logger.Error("Fulfillment API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
