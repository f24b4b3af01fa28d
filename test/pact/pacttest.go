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
	ProviderName = "cell-tech-api"
	ConsumerName = "cell-tech-dashboard"

	StateSellerExists      = "seller pact.seller@celltech.io exists"
	StateSalesRecorded     = "a sale of 2 units worth 1998.00 was recorded today"
	StateProductLowOnStock = "product Pact Phone has 1 unit in stock"
	StateProductMissing    = "no product with the missing id"
)

const (
	SellerName     = "Pact Seller"
	SellerEmail    = "pact.seller@celltech.io"
	SellerPassword = "pact-pass"

	ProductID        = "01890a5d-ac96-774b-bcce-b302099a8057"
	MissingProductID = "01890a5d-ac96-774b-bcce-b302099a8058"
	ProductName      = "Pact Phone"

	// ExampleToken is what the consumer sends; the provider swaps in a real token.
	ExampleToken = "Bearer eyJhbGciOiJIUzI1NiJ9.pact.token"
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

// PactFile returns the canonical pact file path for the dashboard consumer.
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

// ExampleLoginPayload is the credential body used by the dashboard.
func ExampleLoginPayload() map[string]any {
	return map[string]any{"email": SellerEmail, "password": SellerPassword}
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
