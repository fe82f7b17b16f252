package types

// ScanInput triggers a barcode-driven fulfillment cycle for one order.
type ScanInput struct {
	OrderID int64
	Barcode string
}

// SearchInput triggers a manual-SKU fulfillment cycle for one order.
type SearchInput struct {
	OrderID int64
	Query   string
}

// FulfillInput applies a fulfillment decision to a single line item.
// Quantity defaults to one unit when zero. SubstitutePartID, when set,
// reassigns the line's product reference as part of the same update.
type FulfillInput struct {
	OrderID          int64
	LineID           int64
	Quantity         float64
	SubstitutePartID *int64
}

// SubstitutionInput confirms a previously proposed substitution pair.
type SubstitutionInput struct {
	OrderID int64
	LineID  int64
	PartID  int64
}

// UnavailableInput marks a line as unavailable, optionally recording why.
type UnavailableInput struct {
	OrderID int64
	LineID  int64
	Notes   string
}

// OrderRef identifies an order for read operations.
type OrderRef struct {
	OrderID int64
}
