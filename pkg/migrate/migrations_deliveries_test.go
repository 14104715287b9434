package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDeliveriesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_deliveries_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no deliveries migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS deliveries",
		"CHECK (status IN ('pending', 'assigned', 'in_progress', 'delivered'))",
		"CHECK (driver_rating BETWEEN 1 AND 5)",
		"version BIGINT NOT NULL DEFAULT 0",
		"CREATE TABLE IF NOT EXISTS delivery_items",
		"FOREIGN KEY (delivery_id) REFERENCES deliveries(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS deliveries",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
