package mapper

import (
	"time"

	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/domain"
)

const dateLayout = "2006-01-02"

// ScanRequest triggers a barcode-driven fulfillment cycle.
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// SearchRequest triggers a manual SKU search cycle.
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// SubstituteRequest confirms a previously proposed substitution pair.
type SubstituteRequest struct {
	Line int64 `json:"line" binding:"required"`
	Part int64 `json:"part" binding:"required"`
}

// UnavailableRequest flags a line the picker cannot fulfill.
type UnavailableRequest struct {
	Line  int64  `json:"line" binding:"required"`
	Notes string `json:"notes,omitempty"`
}

// Customer is the HTTP representation of the ordering party.
type Customer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Order is the HTTP representation of a sales order header.
type Order struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	Description    string    `json:"description,omitempty"`
	Customer       *Customer `json:"customer,omitempty"`
	Status         int       `json:"status"`
	TargetDate     string    `json:"targetDate,omitempty"`
	CreationDate   string    `json:"creationDate,omitempty"`
	LineItemCount  int       `json:"lineItemCount"`
	CompletedLines int       `json:"completedLines"`
}

// OrderSummary is one row of the open-order listing.
type OrderSummary struct {
	Order
	Priority string `json:"priority"`
}

// Line is the HTTP representation of an order line.
type Line struct {
	ID                int64   `json:"id"`
	Part              int64   `json:"part"`
	PartName          string  `json:"partName,omitempty"`
	Quantity          float64 `json:"quantity"`
	Shipped           float64 `json:"shipped"`
	Remaining         float64 `json:"remaining"`
	Complete          bool    `json:"complete"`
	SalePrice         string  `json:"salePrice,omitempty"`
	SalePriceCurrency string  `json:"salePriceCurrency,omitempty"`
	Reference         string  `json:"reference,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// Part is the HTTP representation of a resolved catalog item.
type Part struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IPN         string `json:"ipn,omitempty"`
}

// Progress is the derived fulfillment progress of an order.
type Progress struct {
	Completed float64 `json:"completed"`
	Total     float64 `json:"total"`
	Complete  bool    `json:"complete"`
}

// Notification echoes the user-visible signal a cycle emitted.
type Notification struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// FulfillmentResult reports a successful line update.
type FulfillmentResult struct {
	Line        Line    `json:"line"`
	NewShipped  float64 `json:"newShipped"`
	Substituted bool    `json:"substituted"`
}

// CycleOutcome is the response body of scan and search cycles.
type CycleOutcome struct {
	Outcome      string             `json:"outcome"`
	Line         *Line              `json:"line,omitempty"`
	Part         *Part              `json:"part,omitempty"`
	Result       *FulfillmentResult `json:"result,omitempty"`
	Notification Notification       `json:"notification"`
}

// OrderView combines the order header with its lines and progress.
type OrderView struct {
	Order    Order    `json:"order"`
	Lines    []Line   `json:"lines"`
	Progress Progress `json:"progress"`
}

// FromOrder maps a domain order header to its HTTP shape.
func FromOrder(order domain.Order) Order {
	out := Order{
		ID:             order.ID,
		Reference:      order.Reference,
		Description:    order.Description,
		Status:         int(order.Status),
		TargetDate:     formatDate(order.TargetDate),
		CreationDate:   formatDate(order.CreationDate),
		LineItemCount:  order.LineItemCount,
		CompletedLines: order.CompletedLines,
	}
	if order.Customer != nil {
		out.Customer = &Customer{ID: order.Customer.ID, Name: order.Customer.Name}
	}
	return out
}

// FromOrderSummaries maps the open-order listing.
func FromOrderSummaries(summaries []fulfillmenttypes.OrderSummary) []OrderSummary {
	out := make([]OrderSummary, len(summaries))
	for i, summary := range summaries {
		out[i] = OrderSummary{
			Order:    FromOrder(summary.Order),
			Priority: string(summary.Priority),
		}
	}
	return out
}

// FromLine maps a domain line to its HTTP shape.
func FromLine(line domain.LineItem) Line {
	out := Line{
		ID:                line.ID,
		Part:              line.Part,
		PartName:          line.PartName,
		Quantity:          line.Quantity,
		Shipped:           line.Shipped,
		Remaining:         line.Remaining(),
		Complete:          line.Complete(),
		SalePriceCurrency: line.SalePriceCurrency,
		Reference:         line.Reference,
		Notes:             line.Notes,
	}
	if !line.SalePrice.IsZero() {
		out.SalePrice = line.SalePrice.String()
	}
	return out
}

// FromPart maps a resolved catalog item.
func FromPart(part domain.Part) Part {
	return Part{
		ID:          part.ID,
		Name:        part.Name,
		Description: part.Description,
		IPN:         part.IPN,
	}
}

// FromOrderView maps the combined order view.
func FromOrderView(view fulfillmenttypes.OrderView) OrderView {
	lines := make([]Line, len(view.Lines))
	for i, line := range view.Lines {
		lines[i] = FromLine(line)
	}
	return OrderView{
		Order: FromOrder(view.Order),
		Lines: lines,
		Progress: Progress{
			Completed: view.Progress.Completed,
			Total:     view.Progress.Total,
			Complete:  view.Progress.Complete(),
		},
	}
}

// FromCycleOutcome maps a scan/search cycle result.
func FromCycleOutcome(outcome fulfillmenttypes.CycleOutcome) CycleOutcome {
	out := CycleOutcome{
		Outcome: string(outcome.Kind),
		Notification: Notification{
			Kind:    string(outcome.Notification.Kind),
			Title:   outcome.Notification.Title,
			Message: outcome.Notification.Message,
		},
	}
	if outcome.Line != nil {
		line := FromLine(*outcome.Line)
		out.Line = &line
	}
	if outcome.Part != nil {
		part := FromPart(*outcome.Part)
		out.Part = &part
	}
	if outcome.Result != nil {
		result := FromFulfillmentResult(*outcome.Result)
		out.Result = &result
	}
	return out
}

// FromFulfillmentResult maps a successful line update.
func FromFulfillmentResult(result fulfillmenttypes.FulfillmentResult) FulfillmentResult {
	return FulfillmentResult{
		Line:        FromLine(result.Line),
		NewShipped:  result.NewShipped,
		Substituted: result.Substituted,
	}
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(dateLayout)
}
