package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/ownercontext"
	suggestiondomain "github.com/billfold/billfold/internal/suggestion/domain"
)

func TestTopItemNamesOrdersByUsage(t *testing.T) {
	db := setupSuggestionTestDB(t, "suggestion_top")
	svc := NewService(ServiceParam{DB: db, Log: zap.NewNop()})
	ctx := ownercontext.WithOwnerID(context.Background(), 1)

	insertItem(t, db, 1, 1, "Hosting", 2000, time.Now().UTC())
	insertItem(t, db, 2, 1, "Hosting", 2100, time.Now().UTC())
	insertItem(t, db, 3, 1, "Design", 5000, time.Now().UTC())
	insertItem(t, db, 4, 2, "Other Tenant", 999, time.Now().UTC())

	results, err := svc.TopItemNames(ctx, 10)
	if err != nil {
		t.Fatalf("top item names: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Name != "Hosting" || results[0].UsageCount != 2 {
		t.Fatalf("first = %+v, want Hosting x2", results[0])
	}
	if results[1].Name != "Design" {
		t.Fatalf("second = %+v, want Design", results[1])
	}
}

func TestTopItemNamesRejectsBadLimit(t *testing.T) {
	db := setupSuggestionTestDB(t, "suggestion_limit")
	svc := NewService(ServiceParam{DB: db, Log: zap.NewNop()})
	ctx := ownercontext.WithOwnerID(context.Background(), 1)

	for _, limit := range []int{0, -1, 51} {
		if _, err := svc.TopItemNames(ctx, limit); !errors.Is(err, suggestiondomain.ErrInvalidLimit) {
			t.Fatalf("limit %d err = %v, want %v", limit, err, suggestiondomain.ErrInvalidLimit)
		}
	}
}

func TestRecentUnitCostPicksLatest(t *testing.T) {
	db := setupSuggestionTestDB(t, "suggestion_recent")
	svc := NewService(ServiceParam{DB: db, Log: zap.NewNop()})
	ctx := ownercontext.WithOwnerID(context.Background(), 1)

	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	insertItem(t, db, 1, 1, "Hosting", 2000, base)
	insertItem(t, db, 2, 1, "Hosting", 2500, base.Add(48*time.Hour))

	unitCost, found, err := svc.RecentUnitCost(ctx, "Hosting")
	if err != nil {
		t.Fatalf("recent unit cost: %v", err)
	}
	if !found {
		t.Fatalf("expected a match for Hosting")
	}
	if unitCost != 2500 {
		t.Fatalf("unit cost = %d, want 2500 (most recent)", unitCost)
	}

	_, found, err = svc.RecentUnitCost(ctx, "Unknown")
	if err != nil {
		t.Fatalf("unknown name: %v", err)
	}
	if found {
		t.Fatalf("expected no match for unknown name")
	}
}

func insertItem(t *testing.T, db *gorm.DB, id, ownerID int64, name string, unitCost int64, createdAt time.Time) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO invoice_items (id, invoice_id, owner_id, position, name, quantity, unit_cost, line_total, created_at, updated_at)
		 VALUES (?, 1, ?, 0, ?, 1, ?, ?, ?, ?)`,
		id, ownerID, name, unitCost, unitCost, createdAt, createdAt,
	).Error; err != nil {
		t.Fatalf("insert item: %v", err)
	}
}

func setupSuggestionTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS invoice_items (
			id BIGINT PRIMARY KEY,
			invoice_id BIGINT NOT NULL,
			owner_id BIGINT NOT NULL,
			position INT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			quantity REAL NOT NULL DEFAULT 0,
			unit_cost BIGINT NOT NULL DEFAULT 0,
			line_total BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	).Error; err != nil {
		t.Fatalf("create invoice_items: %v", err)
	}
	return db
}
