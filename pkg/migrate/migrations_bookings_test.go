package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestBookingsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_bookings.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS bookings",
		"CHECK (end_date >= start_date)",
		"FOREIGN KEY (scooter_id) REFERENCES scooters(id) ON DELETE CASCADE",
		"EXCLUDE USING gist",
		"daterange(start_date, end_date, '[]') WITH &&",
		"WHERE (status IN ('PENDING', 'CONFIRMED'))",
		"DROP TABLE IF EXISTS bookings",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestScootersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_scooters.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS scooters",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_scooters_number_plate",
		"CHECK (price_per_day >= 0)",
		"DROP TABLE IF EXISTS scooters",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
