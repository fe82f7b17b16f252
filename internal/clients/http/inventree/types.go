package inventree

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"
)

// Quantity decodes backend quantity fields, which arrive either as JSON
// numbers or as decimal strings like "1.0000" depending on the endpoint.
type Quantity float64

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}
	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*q = Quantity(value)
	return nil
}

// PartRecord is the catalog product shape nested in barcode and search
// responses.
type PartRecord struct {
	PK          int64  `json:"pk"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IPN         string `json:"IPN,omitempty"`
}

// CustomerRecord is the customer summary nested in an order header.
type CustomerRecord struct {
	PK   int64  `json:"pk"`
	Name string `json:"name"`
}

// OrderRecord is the sales order header shape. Dates are backend-formatted
// strings (YYYY-MM-DD); callers parse them.
type OrderRecord struct {
	PK             int64           `json:"pk"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description,omitempty"`
	CustomerDetail *CustomerRecord `json:"customer_detail,omitempty"`
	Status         int             `json:"status"`
	TargetDate     string          `json:"target_date,omitempty"`
	CreationDate   string          `json:"creation_date,omitempty"`
	LineItems      int             `json:"line_items"`
	CompletedLines int             `json:"completed_lines"`
}

// LineRecord is the sales order line shape.
type LineRecord struct {
	PK                int64           `json:"pk"`
	Order             int64           `json:"order"`
	Part              int64           `json:"part"`
	PartDetail        *PartRecord     `json:"part_detail,omitempty"`
	Quantity          Quantity        `json:"quantity"`
	Shipped           Quantity        `json:"shipped"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	SalePriceCurrency string          `json:"sale_price_currency,omitempty"`
	Reference         string          `json:"reference,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// LineUpdatePayload is the partial PATCH body for a line. Nil fields stay
// untouched server-side.
type LineUpdatePayload struct {
	Shipped *float64 `json:"shipped,omitempty"`
	Part    *int64   `json:"part,omitempty"`
	Notes   *string  `json:"notes,omitempty"`
}

type barcodeRequest struct {
	Barcode string `json:"barcode"`
}

type barcodeResponse struct {
	Part *PartRecord `json:"part,omitempty"`
}

type page[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

type errorBody struct {
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}
