package postgresql

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/punch-analytics/internal/pkg/database"
)

// TestDatabaseSetup holds the connection to the test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL, skipping the test when unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	return &TestDatabaseSetup{DB: db}
}

// TruncateAllTables removes all rows from the blob tables
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{"punch_blobs", "punch_blob_revisions"}
	for _, table := range tables {
		if _, err := s.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}
