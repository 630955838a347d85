package testutil

import (
	"path/filepath"
	"testing"

	"github.com/Elysium-Labs-EU/graphctl/internal/database"
)

func SetupTestDB(t *testing.T) (*database.DB, string) {
	t.Helper()
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, database.FileName)

	db, _, err := database.NewTestDB(t.Context(), dbPath)
	if err != nil {
		t.Fatalf("Unable to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.CloseDBConnection(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})
	return db, tempDir
}

const AccountsSDL = `extend type Query { me: User }
type User @key(fields: "id") { id: ID! username: String }`

const ReviewsSDL = `type Review { body: String author: User }
extend type User @key(fields: "id") { id: ID! @external reviews: [Review] }`
