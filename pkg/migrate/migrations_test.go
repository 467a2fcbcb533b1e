package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vuminhhai/seaquote-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestOrdersMigrationEnforcesOneOrderPerQuotation(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_orders_and_rates.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no orders migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE UNIQUE INDEX idx_orders_quotation_id ON orders (quotation_id)",
		"payment_status text NOT NULL DEFAULT 'UNPAID'",
		"rate numeric(12,6) NOT NULL",
		"DROP TABLE IF EXISTS orders",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestQuotationMigrationKeepsAuditColumns(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_quotations.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no quotations migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"original_calculated_price numeric(12,2)",
		"rate_applied numeric(12,6)",
		"step_order integer NOT NULL",
		"ON DELETE CASCADE",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
