package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/CeDev0224/inventree/internal/clients/http/inventree"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/domain"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
)

// dateLayout is the backend's date wire format.
const dateLayout = "2006-01-02"

// openStatuses are the order status codes eligible for fulfillment work.
var openStatuses = []int{int(domain.StatusInProgress), int(domain.StatusShipped)}

// Adapter implements ports.Backend over the inventory backend REST client,
// translating wire records into domain types and HTTP failures into the
// port's error taxonomy.
type Adapter struct {
	client *inventree.Client
}

// NewAdapter wires the adapter over a configured client.
func NewAdapter(client *inventree.Client) (*Adapter, error) {
	if client == nil {
		return nil, errors.New("backend client is required")
	}
	return &Adapter{client: client}, nil
}

var _ ports.Backend = (*Adapter)(nil)

// ResolveBarcode decodes scanned text into a catalog part. The backend
// answers unrecognized barcodes with a 4xx, which maps to ErrNotFound.
func (a *Adapter) ResolveBarcode(ctx context.Context, barcode string) (*domain.Part, error) {
	record, err := a.client.DecodeBarcode(ctx, barcode)
	if err != nil {
		var statusErr *inventree.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError {
			return nil, fmt.Errorf("resolve barcode: %w", ports.ErrNotFound)
		}
		return nil, fmt.Errorf("resolve barcode: %w: %w", ports.ErrTransport, err)
	}
	part := mapPart(*record)
	return &part, nil
}

func (a *Adapter) SearchParts(ctx context.Context, query string, limit int) ([]domain.Part, error) {
	records, err := a.client.SearchParts(ctx, query, limit)
	if err != nil {
		return nil, mapError("search parts", err)
	}
	parts := make([]domain.Part, len(records))
	for i, record := range records {
		parts[i] = mapPart(record)
	}
	return parts, nil
}

func (a *Adapter) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	record, err := a.client.GetOrder(ctx, orderID)
	if err != nil {
		return nil, mapError("get order", err)
	}
	order := mapOrder(*record)
	return &order, nil
}

func (a *Adapter) ListOpenOrders(ctx context.Context) ([]domain.Order, error) {
	records, err := a.client.ListOpenOrders(ctx, openStatuses)
	if err != nil {
		return nil, mapError("list open orders", err)
	}
	orders := make([]domain.Order, len(records))
	for i, record := range records {
		orders[i] = mapOrder(record)
	}
	return orders, nil
}

func (a *Adapter) ListLines(ctx context.Context, filter ports.LineFilter) ([]domain.LineItem, error) {
	records, err := a.client.ListLines(ctx, filter.OrderID, filter.OutstandingOnly)
	if err != nil {
		return nil, mapError("list lines", err)
	}
	lines := make([]domain.LineItem, len(records))
	for i, record := range records {
		lines[i] = mapLine(record)
	}
	return lines, nil
}

func (a *Adapter) UpdateLine(ctx context.Context, update ports.LineUpdate) (*domain.LineItem, error) {
	payload := inventree.LineUpdatePayload{
		Shipped: update.Shipped,
		Part:    update.Part,
		Notes:   update.Notes,
	}
	record, err := a.client.PatchLine(ctx, update.LineID, payload, update.IdempotencyKey)
	if err != nil {
		return nil, mapError("update line", err)
	}
	line := mapLine(*record)
	return &line, nil
}

// mapError folds a client failure into the port taxonomy: 404 means the
// resource is gone, other 4xx mean the backend rejected the request, and
// everything else is a transport fault.
func mapError(op string, err error) error {
	var statusErr *inventree.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, ports.ErrNotFound)
		case statusErr.StatusCode < http.StatusInternalServerError:
			return fmt.Errorf("%s: %w: %s", op, ports.ErrValidation, statusErr.Detail)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, ports.ErrTransport, err)
}

func mapPart(record inventree.PartRecord) domain.Part {
	return domain.Part{
		ID:          record.PK,
		Name:        record.Name,
		Description: record.Description,
		IPN:         record.IPN,
	}
}

func mapOrder(record inventree.OrderRecord) domain.Order {
	order := domain.Order{
		ID:             record.PK,
		Reference:      record.Reference,
		Description:    record.Description,
		Status:         domain.Status(record.Status),
		TargetDate:     parseDate(record.TargetDate),
		CreationDate:   parseDate(record.CreationDate),
		LineItemCount:  record.LineItems,
		CompletedLines: record.CompletedLines,
	}
	if record.CustomerDetail != nil {
		order.Customer = &domain.Customer{
			ID:   record.CustomerDetail.PK,
			Name: record.CustomerDetail.Name,
		}
	}
	return order
}

func mapLine(record inventree.LineRecord) domain.LineItem {
	line := domain.LineItem{
		ID:                record.PK,
		OrderID:           record.Order,
		Part:              record.Part,
		Quantity:          float64(record.Quantity),
		Shipped:           float64(record.Shipped),
		SalePrice:         record.SalePrice,
		SalePriceCurrency: record.SalePriceCurrency,
		Reference:         record.Reference,
		Notes:             record.Notes,
	}
	if record.PartDetail != nil {
		line.PartName = record.PartDetail.Name
	}
	return line
}

// parseDate tolerates blank or malformed dates; the zero time means the
// backend supplied none.
func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
