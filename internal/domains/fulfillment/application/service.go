package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/domain"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
)

// Service orchestrates the fulfillment workflow over the backend port.
// It deliberately carries no in-flight guard: concurrent scans or fulfill
// clicks each start an independent chain, matching the permissive behavior
// of the original workflow (two racing fulfillments can read the same
// stale snapshot and compute the same shipped value).
type Service struct {
	backend  ports.Backend
	lines    ports.LineCache
	notifier ports.Notifier
	now      func() time.Time
	newKey   func() string
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithKeyGenerator overrides idempotency key generation for tests.
func WithKeyGenerator(newKey func() string) Option {
	return func(s *Service) {
		if newKey != nil {
			s.newKey = newKey
		}
	}
}

// NewService wires the fulfillment service with its dependencies.
func NewService(backend ports.Backend, lines ports.LineCache, notifier ports.Notifier, opts ...Option) *Service {
	s := &Service{
		backend:  backend,
		lines:    lines,
		notifier: notifier,
		now:      time.Now,
		newKey:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ScanBarcode resolves scanned text against the backend's barcode decoder
// and applies the match outcome. Resolver failures terminate the cycle
// with a notification; they never propagate as errors.
func (s *Service) ScanBarcode(ctx context.Context, input fulfillmenttypes.ScanInput) (*fulfillmenttypes.CycleOutcome, error) {
	if input.OrderID <= 0 {
		return nil, domain.ErrInvalidOrderID
	}
	part, err := s.backend.ResolveBarcode(ctx, input.Barcode)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return s.scanFailed(ctx, notifyInvalidBarcode()), nil
		}
		return s.scanFailed(ctx, notifyScanError()), nil
	}
	return s.applyMatch(ctx, input.OrderID, *part)
}

// SearchSKU resolves a free-text query through product search, keeping
// only the first result, and applies the match outcome.
func (s *Service) SearchSKU(ctx context.Context, input fulfillmenttypes.SearchInput) (*fulfillmenttypes.CycleOutcome, error) {
	if input.OrderID <= 0 {
		return nil, domain.ErrInvalidOrderID
	}
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is empty", ports.ErrValidation)
	}
	parts, err := s.backend.SearchParts(ctx, query, 1)
	if err != nil {
		return s.scanFailed(ctx, notifySearchError()), nil
	}
	if len(parts) == 0 {
		return s.scanFailed(ctx, notifyProductNotFound()), nil
	}
	return s.applyMatch(ctx, input.OrderID, parts[0])
}

// applyMatch runs the pure matcher over the open-line snapshot and acts on
// the result: exact matches fulfill immediately, substitution candidates
// are handed back for a user decision, and a fully shipped order yields an
// informational notice only.
func (s *Service) applyMatch(ctx context.Context, orderID int64, part domain.Part) (*fulfillmenttypes.CycleOutcome, error) {
	lines, err := s.openLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load open lines for order %d: %w", orderID, err)
	}
	match := domain.Match(part, lines)
	switch match.Kind {
	case domain.MatchExact:
		result, err := s.Fulfill(ctx, fulfillmenttypes.FulfillInput{
			OrderID:  orderID,
			LineID:   match.Line.ID,
			Quantity: 1,
		})
		if err != nil {
			return &fulfillmenttypes.CycleOutcome{
				Kind:         fulfillmenttypes.OutcomeFulfillmentFailed,
				Line:         match.Line,
				Notification: notifyFulfillFailed(),
			}, nil
		}
		return &fulfillmenttypes.CycleOutcome{
			Kind:         fulfillmenttypes.OutcomeFulfilled,
			Line:         match.Line,
			Result:       result,
			Notification: notifyItemFulfilled(),
		}, nil
	case domain.MatchSubstitution:
		// No mutation yet; the candidate pair travels back to the caller,
		// who confirms or discards it.
		return &fulfillmenttypes.CycleOutcome{
			Kind: fulfillmenttypes.OutcomeSubstitutionProposed,
			Line: match.Line,
			Part: match.Part,
		}, nil
	default:
		notification := notifyNoItemsToFulfill()
		s.notify(ctx, notification)
		return &fulfillmenttypes.CycleOutcome{
			Kind:         fulfillmenttypes.OutcomeNoOpenLines,
			Notification: notification,
		}, nil
	}
}

// Fulfill is the mutator: it reads the current shipped value from the
// latest known snapshot, submits shipped+quantity (and the substitute
// product, when given), then invalidates and refreshes local state from
// the backend. The shipped <= quantity invariant is never checked here;
// the backend is the authority and a rejection reads as a generic failure.
func (s *Service) Fulfill(ctx context.Context, input fulfillmenttypes.FulfillInput) (*fulfillmenttypes.FulfillmentResult, error) {
	if input.LineID <= 0 {
		return nil, domain.ErrInvalidLineID
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	line, err := s.snapshotLine(ctx, input.OrderID, input.LineID)
	if err != nil {
		s.notify(ctx, notifyFulfillFailed())
		return nil, err
	}
	newShipped := line.Shipped + quantity
	update := ports.LineUpdate{
		LineID:         input.LineID,
		Shipped:        &newShipped,
		Part:           input.SubstitutePartID,
		IdempotencyKey: s.newKey(),
	}
	updated, err := s.backend.UpdateLine(ctx, update)
	if err != nil {
		s.notify(ctx, notifyFulfillFailed())
		return nil, fmt.Errorf("fulfill line %d: %w", input.LineID, err)
	}
	s.refresh(ctx, input.OrderID)
	s.notify(ctx, notifyItemFulfilled())
	return &fulfillmenttypes.FulfillmentResult{
		Line:        *updated,
		NewShipped:  newShipped,
		Substituted: input.SubstitutePartID != nil,
	}, nil
}

// ConfirmSubstitution applies a proposed substitution: one unit shipped
// against the expected line, with the product reference reassigned to the
// scanned part in the same update.
func (s *Service) ConfirmSubstitution(ctx context.Context, input fulfillmenttypes.SubstitutionInput) (*fulfillmenttypes.FulfillmentResult, error) {
	if input.PartID <= 0 {
		return nil, fmt.Errorf("%w: substitute part id is required", ports.ErrValidation)
	}
	partID := input.PartID
	return s.Fulfill(ctx, fulfillmenttypes.FulfillInput{
		OrderID:          input.OrderID,
		LineID:           input.LineID,
		Quantity:         1,
		SubstitutePartID: &partID,
	})
}

// MarkUnavailable records that the picker cannot fulfill a line. The
// warning is always emitted; when notes are given they are appended to the
// line's notes through the backend so the shortage survives the session.
func (s *Service) MarkUnavailable(ctx context.Context, input fulfillmenttypes.UnavailableInput) error {
	if input.LineID <= 0 {
		return domain.ErrInvalidLineID
	}
	notes := strings.TrimSpace(input.Notes)
	if notes != "" {
		line, err := s.snapshotLine(ctx, input.OrderID, input.LineID)
		if err != nil {
			return err
		}
		annotated := "UNAVAILABLE: " + notes
		if line.Notes != "" {
			annotated = line.Notes + "\n" + annotated
		}
		update := ports.LineUpdate{
			LineID:         input.LineID,
			Notes:          &annotated,
			IdempotencyKey: s.newKey(),
		}
		if _, err := s.backend.UpdateLine(ctx, update); err != nil {
			return fmt.Errorf("mark line %d unavailable: %w", input.LineID, err)
		}
		s.refresh(ctx, input.OrderID)
	}
	s.notify(ctx, notifyMarkedUnavailable())
	return nil
}

// Progress recomputes derived fulfillment progress from the full line
// collection, fetched fresh so completed lines still count.
func (s *Service) Progress(ctx context.Context, ref fulfillmenttypes.OrderRef) (*fulfillmenttypes.OrderView, error) {
	if ref.OrderID <= 0 {
		return nil, domain.ErrInvalidOrderID
	}
	lines, err := s.backend.ListLines(ctx, ports.LineFilter{OrderID: ref.OrderID})
	if err != nil {
		return nil, fmt.Errorf("load lines for order %d: %w", ref.OrderID, err)
	}
	return &fulfillmenttypes.OrderView{
		Lines:    lines,
		Progress: domain.ComputeProgress(lines),
	}, nil
}

// OrderDetail loads the order header, full line collection, and progress.
func (s *Service) OrderDetail(ctx context.Context, ref fulfillmenttypes.OrderRef) (*fulfillmenttypes.OrderView, error) {
	if ref.OrderID <= 0 {
		return nil, domain.ErrInvalidOrderID
	}
	order, err := s.backend.GetOrder(ctx, ref.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", ref.OrderID, err)
	}
	lines, err := s.backend.ListLines(ctx, ports.LineFilter{OrderID: ref.OrderID})
	if err != nil {
		return nil, fmt.Errorf("load lines for order %d: %w", ref.OrderID, err)
	}
	return &fulfillmenttypes.OrderView{
		Order:    *order,
		Lines:    lines,
		Progress: domain.ComputeProgress(lines),
	}, nil
}

// ListOpenOrders returns the orders needing fulfillment, most urgent
// first, each with its derived priority.
func (s *Service) ListOpenOrders(ctx context.Context) ([]fulfillmenttypes.OrderSummary, error) {
	orders, err := s.backend.ListOpenOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open orders: %w", err)
	}
	now := s.now()
	summaries := make([]fulfillmenttypes.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, fulfillmenttypes.OrderSummary{
			Order:    order,
			Priority: order.FulfillmentPriority(now),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return priorityRank(summaries[i].Priority) < priorityRank(summaries[j].Priority)
	})
	return summaries, nil
}

func priorityRank(p domain.Priority) int {
	switch p {
	case domain.PriorityOverdue:
		return 0
	case domain.PriorityUrgent:
		return 1
	default:
		return 2
	}
}

// openLines returns the cached open-line snapshot for the order, fetching
// it from the backend on a miss.
func (s *Service) openLines(ctx context.Context, orderID int64) ([]domain.LineItem, error) {
	if cached, ok := s.lines.Get(ctx, orderID); ok {
		return cached, nil
	}
	lines, err := s.backend.ListLines(ctx, ports.LineFilter{OrderID: orderID, OutstandingOnly: true})
	if err != nil {
		return nil, err
	}
	s.lines.Put(ctx, orderID, lines)
	return lines, nil
}

// snapshotLine finds a line in the latest known snapshot, refetching once
// when the snapshot does not contain it.
func (s *Service) snapshotLine(ctx context.Context, orderID, lineID int64) (*domain.LineItem, error) {
	lines, err := s.openLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if line := findLine(lines, lineID); line != nil {
		return line, nil
	}
	s.lines.Invalidate(ctx, orderID)
	lines, err = s.openLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if line := findLine(lines, lineID); line != nil {
		return line, nil
	}
	return nil, fmt.Errorf("%w: line %d on order %d", ports.ErrNotFound, lineID, orderID)
}

func findLine(lines []domain.LineItem, lineID int64) *domain.LineItem {
	for i := range lines {
		if lines[i].ID == lineID {
			line := lines[i]
			return &line
		}
	}
	return nil
}

// refresh drops the local snapshot and re-reads authoritative state.
// Refetch failures are swallowed: the next read repopulates the cache.
func (s *Service) refresh(ctx context.Context, orderID int64) {
	s.lines.Invalidate(ctx, orderID)
	if lines, err := s.backend.ListLines(ctx, ports.LineFilter{OrderID: orderID, OutstandingOnly: true}); err == nil {
		s.lines.Put(ctx, orderID, lines)
	}
	// Re-read the header too so derived status transitions land.
	_, _ = s.backend.GetOrder(ctx, orderID)
}

func (s *Service) scanFailed(ctx context.Context, notification fulfillmenttypes.Notification) *fulfillmenttypes.CycleOutcome {
	s.notify(ctx, notification)
	return &fulfillmenttypes.CycleOutcome{
		Kind:         fulfillmenttypes.OutcomeNotFound,
		Notification: notification,
	}
}

func (s *Service) notify(ctx context.Context, notification fulfillmenttypes.Notification) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, notification)
}

var _ ports.Service = (*Service)(nil)
