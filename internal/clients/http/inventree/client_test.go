package inventree

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeBarcodeResolvesPart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/barcode/", r.URL.Path)
		var body barcodeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "INV-0042", body.Barcode)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"part": {"pk": 42, "name": "Widget", "IPN": "WID-001"}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	part, err := client.DecodeBarcode(context.Background(), "INV-0042")
	require.NoError(t, err)
	require.Equal(t, int64(42), part.PK)
	require.Equal(t, "Widget", part.Name)
}

func TestDecodeBarcodeUnrecognized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "No match found for barcode data"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = client.DecodeBarcode(context.Background(), "garbage")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	require.Equal(t, "No match found for barcode data", statusErr.Detail)
}

func TestDecodeBarcodeMissingPart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = client.DecodeBarcode(context.Background(), "STK-1")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestListLinesDecodesStringQuantities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/order/so-line/", r.URL.Path)
		require.Equal(t, "7", r.URL.Query().Get("order"))
		require.Equal(t, "true", r.URL.Query().Get("part_detail"))
		require.Equal(t, "true", r.URL.Query().Get("outstanding"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 1, "results": [
			{"pk": 11, "order": 7, "part": 42, "quantity": "3.0000", "shipped": 1,
			 "sale_price": "19.99", "sale_price_currency": "USD",
			 "part_detail": {"pk": 42, "name": "Widget"}}
		]}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	lines, err := client.ListLines(context.Background(), 7, true)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, Quantity(3), lines[0].Quantity)
	require.Equal(t, Quantity(1), lines[0].Shipped)
	require.Equal(t, "19.99", lines[0].SalePrice.String())
	require.Equal(t, "Widget", lines[0].PartDetail.Name)
}

func TestPatchLineSendsIdempotencyKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/order/so-line/11/", r.URL.Path)
		require.Equal(t, "key-123", r.Header.Get("Idempotency-Key"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, 2.0, body["shipped"])
		require.NotContains(t, body, "part")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pk": 11, "order": 7, "part": 42, "quantity": 3, "shipped": 2, "sale_price": "0"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	shipped := 2.0
	line, err := client.PatchLine(context.Background(), 11, LineUpdatePayload{Shipped: &shipped}, "key-123")
	require.NoError(t, err)
	require.Equal(t, Quantity(2), line.Shipped)
}

func TestPatchLineValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "shipped quantity exceeds ordered quantity"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	shipped := 99.0
	_, err = client.PatchLine(context.Background(), 11, LineUpdatePayload{Shipped: &shipped}, "")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	require.Equal(t, "shipped quantity exceeds ordered quantity", statusErr.Detail)
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("   ", nil)
	require.Error(t, err)
}

func TestGetOrderRequestsCustomerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/order/so/7/", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("customer_detail"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pk": 7, "reference": "SO-0007", "status": 15,
			"target_date": "2026-09-05", "line_items": 3, "completed_lines": 1,
			"customer_detail": {"pk": 2, "name": "Acme"}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	order, err := client.GetOrder(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "SO-0007", order.Reference)
	require.Equal(t, "Acme", order.CustomerDetail.Name)
	require.Equal(t, 15, order.Status)
}
