package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
)

const tracerName = "github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/observability/service"

// Service decorates the fulfillment application port with tracing, logging,
// and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// ScanBarcode instruments one barcode-driven cycle.
func (s *Service) ScanBarcode(ctx context.Context, input fulfillmenttypes.ScanInput) (*fulfillmenttypes.CycleOutcome, error) {
	ctx, span := s.startSpan(ctx, "Service.ScanBarcode", attribute.Int64("order.id", input.OrderID))
	defer span.End()

	s.logInfo(ctx, "processing barcode scan", slog.Int64("order.id", input.OrderID))
	outcome, err := s.inner.ScanBarcode(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to process barcode scan", slog.Int64("order.id", input.OrderID))
	}
	if outcome != nil {
		s.recordOutcome(ctx, span, "scan", outcome)
	}
	return outcome, nil
}

// SearchSKU instruments one search-driven cycle.
func (s *Service) SearchSKU(ctx context.Context, input fulfillmenttypes.SearchInput) (*fulfillmenttypes.CycleOutcome, error) {
	ctx, span := s.startSpan(ctx, "Service.SearchSKU", attribute.Int64("order.id", input.OrderID))
	defer span.End()

	s.logInfo(ctx, "processing SKU search", slog.Int64("order.id", input.OrderID))
	outcome, err := s.inner.SearchSKU(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to process SKU search", slog.Int64("order.id", input.OrderID))
	}
	if outcome != nil {
		s.recordOutcome(ctx, span, "search", outcome)
	}
	return outcome, nil
}

// Fulfill instruments a direct line fulfillment.
func (s *Service) Fulfill(ctx context.Context, input fulfillmenttypes.FulfillInput) (*fulfillmenttypes.FulfillmentResult, error) {
	ctx, span := s.startSpan(ctx, "Service.Fulfill",
		attribute.Int64("order.id", input.OrderID),
		attribute.Int64("line.id", input.LineID),
		attribute.Float64("line.quantity", input.Quantity),
	)
	defer span.End()

	s.logInfo(ctx, "fulfilling line", slog.Int64("order.id", input.OrderID), slog.Int64("line.id", input.LineID))
	result, err := s.inner.Fulfill(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to fulfill line", slog.Int64("line.id", input.LineID))
	}
	if result != nil {
		s.metrics.recordFulfilled(ctx, result.Substituted)
		s.logInfo(ctx, "line fulfilled", slog.Int64("line.id", result.Line.ID), slog.Float64("line.shipped", result.NewShipped))
	}
	return result, nil
}

// ConfirmSubstitution instruments a confirmed substitution fulfillment.
func (s *Service) ConfirmSubstitution(ctx context.Context, input fulfillmenttypes.SubstitutionInput) (*fulfillmenttypes.FulfillmentResult, error) {
	ctx, span := s.startSpan(ctx, "Service.ConfirmSubstitution",
		attribute.Int64("order.id", input.OrderID),
		attribute.Int64("line.id", input.LineID),
		attribute.Int64("part.id", input.PartID),
	)
	defer span.End()

	s.logInfo(ctx, "confirming substitution", slog.Int64("line.id", input.LineID), slog.Int64("part.id", input.PartID))
	result, err := s.inner.ConfirmSubstitution(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm substitution", slog.Int64("line.id", input.LineID))
	}
	if result != nil {
		s.metrics.recordFulfilled(ctx, true)
		s.logInfo(ctx, "substitution fulfilled", slog.Int64("line.id", result.Line.ID))
	}
	return result, nil
}

// MarkUnavailable instruments flagging a line as unavailable.
func (s *Service) MarkUnavailable(ctx context.Context, input fulfillmenttypes.UnavailableInput) error {
	ctx, span := s.startSpan(ctx, "Service.MarkUnavailable",
		attribute.Int64("order.id", input.OrderID),
		attribute.Int64("line.id", input.LineID),
	)
	defer span.End()

	s.logInfo(ctx, "marking line unavailable", slog.Int64("line.id", input.LineID))
	if err := s.inner.MarkUnavailable(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to mark line unavailable", slog.Int64("line.id", input.LineID))
	}
	s.metrics.recordUnavailable(ctx)
	s.logInfo(ctx, "line marked unavailable", slog.Int64("line.id", input.LineID))
	return nil
}

// Progress instruments the derived progress computation.
func (s *Service) Progress(ctx context.Context, ref fulfillmenttypes.OrderRef) (*fulfillmenttypes.OrderView, error) {
	ctx, span := s.startSpan(ctx, "Service.Progress", attribute.Int64("order.id", ref.OrderID))
	defer span.End()

	view, err := s.inner.Progress(ctx, ref)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute progress", slog.Int64("order.id", ref.OrderID))
	}
	if view != nil {
		span.SetAttributes(
			attribute.Float64("order.progress.completed", view.Progress.Completed),
			attribute.Float64("order.progress.total", view.Progress.Total),
		)
	}
	return view, nil
}

// OrderDetail instruments loading the order view.
func (s *Service) OrderDetail(ctx context.Context, ref fulfillmenttypes.OrderRef) (*fulfillmenttypes.OrderView, error) {
	ctx, span := s.startSpan(ctx, "Service.OrderDetail", attribute.Int64("order.id", ref.OrderID))
	defer span.End()

	s.logInfo(ctx, "loading order detail", slog.Int64("order.id", ref.OrderID))
	view, err := s.inner.OrderDetail(ctx, ref)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order detail", slog.Int64("order.id", ref.OrderID))
	}
	if view != nil {
		span.SetAttributes(attribute.Int("order.lines", len(view.Lines)))
	}
	return view, nil
}

// ListOpenOrders instruments the open-order listing.
func (s *Service) ListOpenOrders(ctx context.Context) ([]fulfillmenttypes.OrderSummary, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOpenOrders")
	defer span.End()

	s.logInfo(ctx, "listing open orders")
	summaries, err := s.inner.ListOpenOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list open orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(summaries)))
	s.logInfo(ctx, "listed open orders", slog.Int("count", len(summaries)))
	return summaries, nil
}

func (s *Service) recordOutcome(ctx context.Context, span trace.Span, trigger string, outcome *fulfillmenttypes.CycleOutcome) {
	span.SetAttributes(attribute.String("cycle.outcome", string(outcome.Kind)))
	s.metrics.recordCycle(ctx, trigger, outcome.Kind)
	s.logInfo(ctx, "cycle completed",
		slog.String("trigger", trigger),
		slog.String("outcome", string(outcome.Kind)),
	)
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	cycles      metric.Int64Counter
	fulfilled   metric.Int64Counter
	unavailable metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	cycles, _ := m.Int64Counter("fulfillment.service.cycles", metric.WithDescription("Number of scan/search cycles by outcome"))
	fulfilled, _ := m.Int64Counter("fulfillment.service.lines_fulfilled", metric.WithDescription("Number of line fulfillments"))
	unavailable, _ := m.Int64Counter("fulfillment.service.lines_unavailable", metric.WithDescription("Number of lines marked unavailable"))
	return serviceMetrics{
		cycles:      cycles,
		fulfilled:   fulfilled,
		unavailable: unavailable,
	}
}

func (m serviceMetrics) recordCycle(ctx context.Context, trigger string, kind fulfillmenttypes.OutcomeKind) {
	addCounter(ctx, m.cycles, 1,
		attribute.String("cycle.trigger", trigger),
		attribute.String("cycle.outcome", string(kind)),
	)
}

func (m serviceMetrics) recordFulfilled(ctx context.Context, substituted bool) {
	addCounter(ctx, m.fulfilled, 1, attribute.Bool("line.substituted", substituted))
}

func (m serviceMetrics) recordUnavailable(ctx context.Context) {
	addCounter(ctx, m.unavailable, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
