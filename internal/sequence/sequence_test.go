package sequence

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestNextIsSequentialPerOwner(t *testing.T) {
	db := setupSequenceTestDB(t)
	gen := NewGenerator(db)
	ctx := context.Background()

	for _, want := range []string{"INV-000001", "INV-000002", "INV-000003"} {
		got, err := gen.Next(ctx, 1)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if got != want {
			t.Fatalf("number = %q, want %q", got, want)
		}
	}

	got, err := gen.Next(ctx, 2)
	if err != nil {
		t.Fatalf("next for second owner: %v", err)
	}
	if got != "INV-000001" {
		t.Fatalf("second owner number = %q, want INV-000001", got)
	}
}

func setupSequenceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:sequence_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS invoice_sequences (
			owner_id BIGINT PRIMARY KEY,
			last_value BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	).Error; err != nil {
		t.Fatalf("create invoice_sequences: %v", err)
	}
	return db
}
