//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "inventree-backend"
	ConsumerName = "fulfillment-gateway"

	StateCatalogBaseline = "catalog baseline"
	StatePartExists      = "part with id 100 exists and barcode INV-0100 maps to it"
	StateBarcodeUnknown  = "no part matches barcode UNKNOWN-1"
	StateOrderOpen       = "sales order 7 is open with outstanding lines"
	StateLineOpen        = "line 11 on order 7 has outstanding quantity"
)

const (
	ExistingPartID int64 = 100
	ExistingOrder  int64 = 7
	ExistingLine   int64 = 11

	ExistingBarcode = "INV-0100"
	UnknownBarcode  = "UNKNOWN-1"
	ExistingSKU     = "WID-001"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the gateway consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePartPayload provides stable test data for part interactions.
func ExamplePartPayload() map[string]any {
	return map[string]any{
		"pk":          ExistingPartID,
		"name":        "Widget",
		"description": "A standard widget",
		"IPN":         ExistingSKU,
	}
}

// ExampleLinePayload provides stable test data for line interactions.
func ExampleLinePayload() map[string]any {
	return map[string]any{
		"pk":                  ExistingLine,
		"order":               ExistingOrder,
		"part":                ExistingPartID,
		"quantity":            "3.0000",
		"shipped":             "1.0000",
		"sale_price":          "19.99",
		"sale_price_currency": "USD",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
