package domain

// Progress is the derived fulfillment state of an order: completed is the
// sum of shipped quantities, total the sum of requested quantities.
// Never stored; recomputed whenever the line collection changes.
type Progress struct {
	Completed float64
	Total     float64
}

// ComputeProgress aggregates shipped and requested quantities over the
// given lines. Holds 0 <= Completed <= Total for any collection the
// backend can legally serve.
func ComputeProgress(lines []LineItem) Progress {
	var p Progress
	for i := range lines {
		p.Total += lines[i].Quantity
		p.Completed += lines[i].Shipped
	}
	return p
}

// Complete reports whether every requested unit has been shipped.
// An empty order is never complete.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Completed >= p.Total
}
