package types

import (
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/domain"
)

// NotificationKind maps onto the colors the warehouse UI renders.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
	NotifyWarning NotificationKind = "warning"
)

// Notification is a user-visible signal emitted by the workflow.
type Notification struct {
	Kind    NotificationKind
	Title   string
	Message string
}

// OutcomeKind enumerates the terminal branches of one scan/search cycle.
type OutcomeKind string

const (
	// OutcomeFulfilled means an exact match was found and shipped.
	OutcomeFulfilled OutcomeKind = "fulfilled"
	// OutcomeFulfillmentFailed means an exact match was found but the
	// backend rejected the update.
	OutcomeFulfillmentFailed OutcomeKind = "fulfillment_failed"
	// OutcomeSubstitutionProposed holds the candidate pair awaiting a
	// user decision; no mutation has happened yet.
	OutcomeSubstitutionProposed OutcomeKind = "substitution_proposed"
	// OutcomeNoOpenLines means every line on the order is fully shipped.
	OutcomeNoOpenLines OutcomeKind = "no_open_lines"
	// OutcomeNotFound means the scan or search did not resolve to a part.
	OutcomeNotFound OutcomeKind = "not_found"
)

// CycleOutcome is the result of one scan or search cycle. Line and Part
// are set for substitution proposals; Result is set when an exact match
// was fulfilled. Notification echoes the signal shown to the user, so
// remote callers can render it without a second channel.
type CycleOutcome struct {
	Kind         OutcomeKind
	Line         *domain.LineItem
	Part         *domain.Part
	Result       *FulfillmentResult
	Notification Notification
}

// FulfillmentResult reports a successful line update.
type FulfillmentResult struct {
	Line        domain.LineItem
	NewShipped  float64
	Substituted bool
}

// OrderView combines the order header with its lines and derived progress.
type OrderView struct {
	Order    domain.Order
	Lines    []domain.LineItem
	Progress domain.Progress
}

// OrderSummary is one row of the open-order listing.
type OrderSummary struct {
	Order    domain.Order
	Priority domain.Priority
}
