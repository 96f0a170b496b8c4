package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	companydomain "github.com/billfold/billfold/internal/company/domain"
	"github.com/billfold/billfold/internal/ownercontext"
	"github.com/billfold/billfold/internal/party"
)

func newCompanyService(t *testing.T, db *gorm.DB) companydomain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
}

func TestGetProfileBeforeUpsert(t *testing.T) {
	db := setupCompanyTestDB(t, "company_missing")
	svc := newCompanyService(t, db)
	ctx := ownercontext.WithOwnerID(context.Background(), 1)

	if _, err := svc.Get(ctx); !errors.Is(err, companydomain.ErrNotFound) {
		t.Fatalf("err = %v, want %v", err, companydomain.ErrNotFound)
	}
}

func TestUpsertCreatesThenReplaces(t *testing.T) {
	db := setupCompanyTestDB(t, "company_upsert")
	svc := newCompanyService(t, db)
	ctx := ownercontext.WithOwnerID(context.Background(), 1)

	created, err := svc.Upsert(ctx, companydomain.UpsertProfileRequest{
		DisplayName: "Billfold Studio",
		Email:       "studio@example.com",
		Address:     party.Address{Street1: "9 Harbor Rd", City: "Portland"},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	updated, err := svc.Upsert(ctx, companydomain.UpsertProfileRequest{
		DisplayName: "Billfold Studio LLC",
		Email:       "studio@example.com",
		Address:     party.Address{Street1: "10 Harbor Rd", City: "Portland"},
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("upsert created a second profile: %v vs %v", updated.ID, created.ID)
	}

	got, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DisplayName != "Billfold Studio LLC" || got.Address.Street1 != "10 Harbor Rd" {
		t.Fatalf("profile after upsert = %+v", got)
	}
}

func TestUpsertScopedPerOwner(t *testing.T) {
	db := setupCompanyTestDB(t, "company_scoped")
	svc := newCompanyService(t, db)
	first := ownercontext.WithOwnerID(context.Background(), 1)
	second := ownercontext.WithOwnerID(context.Background(), 2)

	if _, err := svc.Upsert(first, companydomain.UpsertProfileRequest{
		DisplayName: "First Owner",
		Email:       "first@example.com",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := svc.Get(second); !errors.Is(err, companydomain.ErrNotFound) {
		t.Fatalf("second owner err = %v, want %v", err, companydomain.ErrNotFound)
	}
}

func setupCompanyTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS company_profiles (
			id BIGINT PRIMARY KEY,
			owner_id BIGINT NOT NULL UNIQUE,
			display_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			address_street1 TEXT NOT NULL DEFAULT '',
			address_street2 TEXT,
			address_city TEXT NOT NULL DEFAULT '',
			address_state TEXT NOT NULL DEFAULT '',
			address_country TEXT NOT NULL DEFAULT '',
			address_zip TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	).Error; err != nil {
		t.Fatalf("create company_profiles: %v", err)
	}
	return db
}
