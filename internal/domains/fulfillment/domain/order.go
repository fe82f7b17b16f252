package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status mirrors the backend's sales order status codes.
type Status int

const (
	StatusPending    Status = 10
	StatusInProgress Status = 15
	StatusShipped    Status = 20
	StatusComplete   Status = 30
	StatusCancelled  Status = 40
)

// Priority classifies how urgently an order needs fulfillment.
// It is derived from the target date and never persisted.
type Priority string

const (
	PriorityOverdue Priority = "overdue"
	PriorityUrgent  Priority = "urgent"
	PriorityNormal  Priority = "normal"
)

// urgentWindow is the lead time under which an open order counts as urgent.
const urgentWindow = 24 * time.Hour

var (
	ErrInvalidOrderID = errors.New("order id must be greater than zero")
	ErrInvalidLineID  = errors.New("line item id must be greater than zero")
)

// Customer is the owning party summary nested in an order header.
type Customer struct {
	ID   int64
	Name string
}

// Order is the sales transaction header as served by the backend.
// It is read-only in the fulfillment workflow; status transitions are
// derived server-side when lines complete.
type Order struct {
	ID             int64
	Reference      string
	Description    string
	Customer       *Customer
	Status         Status
	TargetDate     time.Time
	CreationDate   time.Time
	LineItemCount  int
	CompletedLines int
}

// Overdue reports whether the order's target date has passed.
func (o Order) Overdue(now time.Time) bool {
	return !o.TargetDate.IsZero() && o.TargetDate.Before(now)
}

// FulfillmentPriority classifies the order relative to the current time.
func (o Order) FulfillmentPriority(now time.Time) Priority {
	switch {
	case o.Overdue(now):
		return PriorityOverdue
	case !o.TargetDate.IsZero() && !o.TargetDate.After(now.Add(urgentWindow)):
		return PriorityUrgent
	default:
		return PriorityNormal
	}
}

// LineItem is one requested product within an order. Shipped is mutated
// exclusively through the fulfillment mutator and only ever increases here;
// the backend owns the shipped <= quantity invariant.
type LineItem struct {
	ID                int64
	OrderID           int64
	Part              int64
	PartName          string
	Quantity          float64
	Shipped           float64
	SalePrice         decimal.Decimal
	SalePriceCurrency string
	Reference         string
	Notes             string
}

// Remaining returns the outstanding quantity on the line.
func (l LineItem) Remaining() float64 {
	return l.Quantity - l.Shipped
}

// Complete reports whether the line has been fully shipped.
func (l LineItem) Complete() bool {
	return l.Remaining() <= 0
}

// Part is the transient projection of a catalog product returned by a
// barcode decode or product search. It lives only for the duration of one
// scan cycle and the optional substitution decision.
type Part struct {
	ID          int64
	Name        string
	Description string
	IPN         string
}
