package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/memory"
	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/domain"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
)

type fakeBackend struct {
	resolveBarcode func(ctx context.Context, barcode string) (*domain.Part, error)
	searchParts    func(ctx context.Context, query string, limit int) ([]domain.Part, error)
	getOrder       func(ctx context.Context, orderID int64) (*domain.Order, error)
	listOpenOrders func(ctx context.Context) ([]domain.Order, error)
	listLines      func(ctx context.Context, filter ports.LineFilter) ([]domain.LineItem, error)
	updateLine     func(ctx context.Context, update ports.LineUpdate) (*domain.LineItem, error)

	updates []ports.LineUpdate
}

func (f *fakeBackend) ResolveBarcode(ctx context.Context, barcode string) (*domain.Part, error) {
	if f.resolveBarcode == nil {
		return nil, fmt.Errorf("%w: barcode", ports.ErrNotFound)
	}
	return f.resolveBarcode(ctx, barcode)
}

func (f *fakeBackend) SearchParts(ctx context.Context, query string, limit int) ([]domain.Part, error) {
	if f.searchParts == nil {
		return nil, nil
	}
	return f.searchParts(ctx, query, limit)
}

func (f *fakeBackend) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	if f.getOrder == nil {
		return &domain.Order{ID: orderID}, nil
	}
	return f.getOrder(ctx, orderID)
}

func (f *fakeBackend) ListOpenOrders(ctx context.Context) ([]domain.Order, error) {
	if f.listOpenOrders == nil {
		return nil, nil
	}
	return f.listOpenOrders(ctx)
}

func (f *fakeBackend) ListLines(ctx context.Context, filter ports.LineFilter) ([]domain.LineItem, error) {
	if f.listLines == nil {
		return nil, nil
	}
	return f.listLines(ctx, filter)
}

func (f *fakeBackend) UpdateLine(ctx context.Context, update ports.LineUpdate) (*domain.LineItem, error) {
	f.updates = append(f.updates, update)
	if f.updateLine == nil {
		return &domain.LineItem{ID: update.LineID}, nil
	}
	return f.updateLine(ctx, update)
}

func newTestService(backend *fakeBackend) (*Service, *memory.Notifier) {
	notifier := memory.NewNotifier()
	service := NewService(backend, memory.NewLineCache(), notifier)
	return service, notifier
}

func openLine(id, part int64, quantity, shipped float64) domain.LineItem {
	return domain.LineItem{ID: id, OrderID: 7, Part: part, Quantity: quantity, Shipped: shipped}
}

func TestScanBarcodeExactMatchFulfillsOneUnit(t *testing.T) {
	backend := &fakeBackend{
		resolveBarcode: func(_ context.Context, barcode string) (*domain.Part, error) {
			require.Equal(t, "INV-0100", barcode)
			return &domain.Part{ID: 100, Name: "Widget"}, nil
		},
		listLines: func(_ context.Context, filter ports.LineFilter) ([]domain.LineItem, error) {
			return []domain.LineItem{openLine(11, 100, 2, 0)}, nil
		},
		updateLine: func(_ context.Context, update ports.LineUpdate) (*domain.LineItem, error) {
			line := openLine(11, 100, 2, *update.Shipped)
			return &line, nil
		},
	}
	service, notifier := newTestService(backend)

	outcome, err := service.ScanBarcode(context.Background(), fulfillmenttypes.ScanInput{OrderID: 7, Barcode: "INV-0100"})
	require.NoError(t, err)
	require.Equal(t, fulfillmenttypes.OutcomeFulfilled, outcome.Kind)
	require.NotNil(t, outcome.Result)
	require.Equal(t, 1.0, outcome.Result.NewShipped)
	require.False(t, outcome.Result.Substituted)

	require.Len(t, backend.updates, 1)
	require.Equal(t, int64(11), backend.updates[0].LineID)
	require.Equal(t, 1.0, *backend.updates[0].Shipped)
	require.Nil(t, backend.updates[0].Part)
	require.NotEmpty(t, backend.updates[0].IdempotencyKey)

	recorded := notifier.Recorded()
	require.Len(t, recorded, 1)
	require.Equal(t, "Item Fulfilled", recorded[0].Title)
	require.Equal(t, "Item has been successfully fulfilled", recorded[0].Message)
	require.Equal(t, fulfillmenttypes.NotifySuccess, recorded[0].Kind)
}

func TestScanBarcodeUnrecognizedEmitsInvalidBarcode(t *testing.T) {
	backend := &fakeBackend{
		resolveBarcode: func(context.Context, string) (*domain.Part, error) {
			return nil, fmt.Errorf("resolve barcode: %w", ports.ErrNotFound)
		},
	}
	service, notifier := newTestService(backend)

	outcome, err := service.ScanBarcode(context.Background(), fulfillmenttypes.ScanInput{OrderID: 7, Barcode: "garbage"})
	require.NoError(t, err)
	require.Equal(t, fulfillmenttypes.OutcomeNotFound, outcome.Kind)
	require.Empty(t, backend.updates)

	recorded := notifier.Recorded()
	require.Len(t, recorded, 1)
	require.Equal(t, "Invalid Barcode", recorded[0].Title)
	require.Equal(t, "Could not identify product from barcode", recorded[0].Message)
	require.Equal(t, fulfillmenttypes.NotifyError, recorded[0].Kind)
}

func TestScanBarcodeTransportFailureEmitsScanError(t *testing.T) {
	backend := &fakeBackend{
		resolveBarcode: func(context.Context, string) (*domain.Part, error) {
			return nil, fmt.Errorf("resolve barcode: %w: connection refused", ports.ErrTransport)
		},
	}
	service, notifier := newTestService(backend)

	outcome, err := service.ScanBarcode(context.Background(), fulfillmenttypes.ScanInput{OrderID: 7, Barcode: "INV-0100"})
	require.NoError(t, err)
	require.Equal(t, fulfillmenttypes.OutcomeNotFound, outcome.Kind)

	recorded := notifier.Recorded()
	require.Len(t, recorded, 1)
	require.Equal(t, "Scan Error", recorded[0].Title)
	require.Equal(t, "Failed to process barcode scan", recorded[0].Message)
}

func TestSearchSKUEmptyResultsEmitsProductNotFound(t *testing.T) {
	backend := &fakeBackend{
		searchParts: func(_ context.Context, query string, limit int) ([]domain.Part, error) {
			require.Equal(t, "WID-404", query)
			require.Equal(t, 1, limit)
			return nil, nil
		},
	}
	service, notifier := newTestService(backend)

	outcome, err := service.SearchSKU(context.Background(), fulfillmenttypes.SearchInput{OrderID: 7, Query: "WID-404"})
	require.NoError(t, err)
	require.Equal(t, fulfillmenttypes.OutcomeNotFound, outcome.Kind)
	require.Empty(t, backend.updates)

	recorded := notifier.Recorded()
	require.Len(t, recorded, 1)
	require.Equal(t, "Product Not Found", recorded[0].Title)
	require.Equal(t, "No product found matching the entered SKU", recorded[0].Message)
}

func TestSearchSKUTransportFailureEmitsSearchError(t *testing.T) {
	backend := &fakeBackend{
		searchParts: func(context.Context, string, int) ([]domain.Part, error) {
			return nil, fmt.Errorf("search parts: %w", ports.ErrTransport)
		},
	}
	service, notifier := newTestService(backend)

	outcome, err := service.SearchSKU(context.Background(), fulfillmenttypes.SearchInput{OrderID: 7, Query: "WID-001"})
	require.NoError(t, err)
	require.Equal(t, fulfillmenttypes.OutcomeNotFound, outcome.Kind)

	recorded := notifier.Recorded()
	require.Len(t, recorded, 1)
	require.Equal(t, "Search Error", recorded[0].Title)
}

func TestSearchSKURejectsEmptyQuery(t *testing.T) {
	service, notifier := newTestService(&fakeBackend{})

	_, err := service.SearchSKU(context.Background(), fulfillmenttypes.SearchInput{OrderID: 7, Query: "   "})
	require.ErrorIs(t, err, ports.ErrValidation)
	require.Empty(t, notifier.Recorded())
}

func TestScanBarcodeProposesSubstitutionWithoutMutating(t *testing.T) {
	backend := &fakeBackend{
		resolveBarcode: func(context.Context, string) (*domain.Part, error) {
			return &domain.Part{ID: 300, Name: "Widget C"}, nil
		},
		listLines: func(context.Context, ports.LineFilter) ([]domain.LineItem, error) {
			return []domain.LineItem{
				openLine(11, 100, 1, 1),
				openLine(12, 200, 1, 0),
			}, nil
		},
	}
	service, notifier := newTestService(backend)

	outcome, err := service.ScanBarcode(context.Background(), fulfillmenttypes.ScanInput{OrderID: 7, Barcode: "INV-0300"})
	require.NoError(t, err)
	require.Equal(t, fulfillmenttypes.OutcomeSubstitutionProposed, outcome.Kind)
	require.Equal(t, int64(12), outcome.Line.ID)
	require.Equal(t, int64(300), outcome.Part.ID)

	// Nothing mutated, nothing notified; the decision belongs to the user.
	require.Empty(t, backend.updates)
	require.Empty(t, notifier.Recorded())
}

func TestScanBarcodeNoOpenLinesNotifiesInfo(t *testing.T) {
	backend := &fakeBackend{
		resolveBarcode: func(context.Context, string) (*domain.Part, error) {
			return &domain.Part{ID: 100}, nil
		},
		listLines: func(context.Context, ports.LineFilter) ([]domain.LineItem, error) {
			return nil, nil
		},
	}
	service, notifier := newTestService(backend)

	outcome, err := service.ScanBarcode(context.Background(), fulfillmenttypes.ScanInput{OrderID: 7, Barcode: "INV-0100"})
	require.NoError(t, err)
	require.Equal(t, fulfillmenttypes.OutcomeNoOpenLines, outcome.Kind)
	require.Empty(t, backend.updates)

	recorded := notifier.Recorded()
	require.Len(t, recorded, 1)
	require.Equal(t, "No Items to Fulfill", recorded[0].Title)
	require.Equal(t, "All items in this order have been fulfilled", recorded[0].Message)
	require.Equal(t, fulfillmenttypes.NotifyInfo, recorded[0].Kind)
}

func TestScanBarcodeBackendRejectionEmitsFulfillFailed(t *testing.T) {
	backend := &fakeBackend{
		resolveBarcode: func(context.Context, string) (*domain.Part, error) {
			return &domain.Part{ID: 100}, nil
		},
		listLines: func(context.Context, ports.LineFilter) ([]domain.LineItem, error) {
			return []domain.LineItem{openLine(11, 100, 1, 0)}, nil
		},
		updateLine: func(context.Context, ports.LineUpdate) (*domain.LineItem, error) {
			return nil, fmt.Errorf("update line: %w: overshipped", ports.ErrValidation)
		},
	}
	service, notifier := newTestService(backend)

	outcome, err := service.ScanBarcode(context.Background(), fulfillmenttypes.ScanInput{OrderID: 7, Barcode: "INV-0100"})
	require.NoError(t, err)
	require.Equal(t, fulfillmenttypes.OutcomeFulfillmentFailed, outcome.Kind)

	recorded := notifier.Recorded()
	require.Len(t, recorded, 1)
	require.Equal(t, "Failed to fulfill item", recorded[0].Title)
	require.Equal(t, fulfillmenttypes.NotifyError, recorded[0].Kind)
	// Shipped state is unchanged locally; the next cycle refetches.
	require.Len(t, backend.updates, 1)
}

func TestDuplicateFulfillmentsReadSameStaleSnapshot(t *testing.T) {
	// Two racing triggers over the same stale server state compute the same
	// shipped value. There is deliberately no local guard against this.
	backend := &fakeBackend{
		listLines: func(context.Context, ports.LineFilter) ([]domain.LineItem, error) {
			return []domain.LineItem{openLine(11, 100, 3, 0)}, nil
		},
		updateLine: func(_ context.Context, update ports.LineUpdate) (*domain.LineItem, error) {
			line := openLine(11, 100, 3, *update.Shipped)
			return &line, nil
		},
	}
	service, _ := newTestService(backend)

	_, err := service.Fulfill(context.Background(), fulfillmenttypes.FulfillInput{OrderID: 7, LineID: 11, Quantity: 1})
	require.NoError(t, err)
	_, err = service.Fulfill(context.Background(), fulfillmenttypes.FulfillInput{OrderID: 7, LineID: 11, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, backend.updates, 2)
	require.Equal(t, 1.0, *backend.updates[0].Shipped)
	require.Equal(t, 1.0, *backend.updates[1].Shipped)
	require.NotEqual(t, backend.updates[0].IdempotencyKey, backend.updates[1].IdempotencyKey)
}

func TestConfirmSubstitutionShipsAndReassignsProduct(t *testing.T) {
	backend := &fakeBackend{
		listLines: func(context.Context, ports.LineFilter) ([]domain.LineItem, error) {
			return []domain.LineItem{openLine(11, 100, 2, 1)}, nil
		},
		updateLine: func(_ context.Context, update ports.LineUpdate) (*domain.LineItem, error) {
			line := openLine(11, *update.Part, 2, *update.Shipped)
			return &line, nil
		},
	}
	service, notifier := newTestService(backend)

	result, err := service.ConfirmSubstitution(context.Background(), fulfillmenttypes.SubstitutionInput{
		OrderID: 7, LineID: 11, PartID: 300,
	})
	require.NoError(t, err)
	require.True(t, result.Substituted)
	require.Equal(t, 2.0, result.NewShipped)

	require.Len(t, backend.updates, 1)
	require.Equal(t, 2.0, *backend.updates[0].Shipped)
	require.NotNil(t, backend.updates[0].Part)
	require.Equal(t, int64(300), *backend.updates[0].Part)

	recorded := notifier.Recorded()
	require.Len(t, recorded, 1)
	require.Equal(t, "Item Fulfilled", recorded[0].Title)
}

func TestConfirmSubstitutionRequiresPart(t *testing.T) {
	service, _ := newTestService(&fakeBackend{})
	_, err := service.ConfirmSubstitution(context.Background(), fulfillmenttypes.SubstitutionInput{OrderID: 7, LineID: 11})
	require.ErrorIs(t, err, ports.ErrValidation)
}

func TestMarkUnavailableAppendsNotes(t *testing.T) {
	line := openLine(11, 100, 2, 0)
	line.Notes = "fragile"
	backend := &fakeBackend{
		listLines: func(context.Context, ports.LineFilter) ([]domain.LineItem, error) {
			return []domain.LineItem{line}, nil
		},
	}
	service, notifier := newTestService(backend)

	err := service.MarkUnavailable(context.Background(), fulfillmenttypes.UnavailableInput{
		OrderID: 7, LineID: 11, Notes: "out of stock",
	})
	require.NoError(t, err)

	require.Len(t, backend.updates, 1)
	require.Nil(t, backend.updates[0].Shipped)
	require.NotNil(t, backend.updates[0].Notes)
	require.Equal(t, "fragile\nUNAVAILABLE: out of stock", *backend.updates[0].Notes)

	recorded := notifier.Recorded()
	require.Len(t, recorded, 1)
	require.Equal(t, "Item Marked Unavailable", recorded[0].Title)
	require.Equal(t, fulfillmenttypes.NotifyWarning, recorded[0].Kind)
}

func TestMarkUnavailableWithoutNotesOnlyNotifies(t *testing.T) {
	backend := &fakeBackend{}
	service, notifier := newTestService(backend)

	err := service.MarkUnavailable(context.Background(), fulfillmenttypes.UnavailableInput{OrderID: 7, LineID: 11})
	require.NoError(t, err)
	require.Empty(t, backend.updates)
	require.Len(t, notifier.Recorded(), 1)
}

func TestProgressUsesFullLineCollection(t *testing.T) {
	var seenFilters []ports.LineFilter
	backend := &fakeBackend{
		listLines: func(_ context.Context, filter ports.LineFilter) ([]domain.LineItem, error) {
			seenFilters = append(seenFilters, filter)
			return []domain.LineItem{
				openLine(11, 100, 2, 2),
				openLine(12, 200, 3, 1),
			}, nil
		},
	}
	service, _ := newTestService(backend)

	view, err := service.Progress(context.Background(), fulfillmenttypes.OrderRef{OrderID: 7})
	require.NoError(t, err)
	require.Equal(t, 5.0, view.Progress.Total)
	require.Equal(t, 3.0, view.Progress.Completed)
	require.False(t, view.Progress.Complete())

	// Completed lines must count toward progress, so the fetch is unfiltered.
	require.Len(t, seenFilters, 1)
	require.False(t, seenFilters[0].OutstandingOnly)
}

func TestOrderDetailCombinesHeaderLinesAndProgress(t *testing.T) {
	backend := &fakeBackend{
		getOrder: func(_ context.Context, orderID int64) (*domain.Order, error) {
			return &domain.Order{ID: orderID, Reference: "SO-0007", Customer: &domain.Customer{ID: 2, Name: "Acme"}}, nil
		},
		listLines: func(context.Context, ports.LineFilter) ([]domain.LineItem, error) {
			return []domain.LineItem{openLine(11, 100, 1, 1)}, nil
		},
	}
	service, _ := newTestService(backend)

	view, err := service.OrderDetail(context.Background(), fulfillmenttypes.OrderRef{OrderID: 7})
	require.NoError(t, err)
	require.Equal(t, "SO-0007", view.Order.Reference)
	require.Equal(t, "Acme", view.Order.Customer.Name)
	require.True(t, view.Progress.Complete())
}

func TestListOpenOrdersSortsByPriority(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	backend := &fakeBackend{
		listOpenOrders: func(context.Context) ([]domain.Order, error) {
			return []domain.Order{
				{ID: 1, TargetDate: now.Add(72 * time.Hour)},
				{ID: 2, TargetDate: now.Add(-24 * time.Hour)},
				{ID: 3, TargetDate: now.Add(6 * time.Hour)},
			}, nil
		},
	}
	notifier := memory.NewNotifier()
	service := NewService(backend, memory.NewLineCache(), notifier, WithClock(func() time.Time { return now }))

	summaries, err := service.ListOpenOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	require.Equal(t, int64(2), summaries[0].Order.ID)
	require.Equal(t, domain.PriorityOverdue, summaries[0].Priority)
	require.Equal(t, int64(3), summaries[1].Order.ID)
	require.Equal(t, domain.PriorityUrgent, summaries[1].Priority)
	require.Equal(t, int64(1), summaries[2].Order.ID)
	require.Equal(t, domain.PriorityNormal, summaries[2].Priority)
}

func TestFulfillUsesInjectedKeyGenerator(t *testing.T) {
	backend := &fakeBackend{
		listLines: func(context.Context, ports.LineFilter) ([]domain.LineItem, error) {
			return []domain.LineItem{openLine(11, 100, 2, 0)}, nil
		},
	}
	notifier := memory.NewNotifier()
	keys := 0
	service := NewService(backend, memory.NewLineCache(), notifier, WithKeyGenerator(func() string {
		keys++
		return fmt.Sprintf("key-%d", keys)
	}))

	_, err := service.Fulfill(context.Background(), fulfillmenttypes.FulfillInput{OrderID: 7, LineID: 11})
	require.NoError(t, err)
	require.Equal(t, "key-1", backend.updates[0].IdempotencyKey)
}

func TestFulfillUnknownLineReturnsNotFound(t *testing.T) {
	backend := &fakeBackend{
		listLines: func(context.Context, ports.LineFilter) ([]domain.LineItem, error) {
			return []domain.LineItem{openLine(11, 100, 2, 0)}, nil
		},
	}
	service, _ := newTestService(backend)

	_, err := service.Fulfill(context.Background(), fulfillmenttypes.FulfillInput{OrderID: 7, LineID: 99})
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.Empty(t, backend.updates)
}
