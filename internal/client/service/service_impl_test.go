package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	clientdomain "github.com/billfold/billfold/internal/client/domain"
	"github.com/billfold/billfold/internal/ownercontext"
	"github.com/billfold/billfold/internal/party"
	"github.com/billfold/billfold/pkg/db/pagination"
)

func newClientService(t *testing.T, db *gorm.DB) clientdomain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
}

func TestCreateAndGetClient(t *testing.T) {
	db := setupClientTestDB(t, "client_create")
	svc := newClientService(t, db)
	ctx := ownercontext.WithOwnerID(context.Background(), 1)

	created, err := svc.Create(ctx, clientdomain.CreateClientRequest{
		DisplayName: "Acme & Sons, Inc.",
		Email:       "billing@acme.test",
		Address:     party.Address{Street1: "1 Main St", City: "Springfield", Country: "US"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DisplayName != "Acme & Sons, Inc." {
		t.Fatalf("display name = %q", got.DisplayName)
	}
	if got.Address.City != "Springfield" {
		t.Fatalf("address city = %q", got.Address.City)
	}
}

func TestCreateClientValidation(t *testing.T) {
	db := setupClientTestDB(t, "client_validation")
	svc := newClientService(t, db)
	ctx := ownercontext.WithOwnerID(context.Background(), 1)

	if _, err := svc.Create(ctx, clientdomain.CreateClientRequest{Email: "a@b.test"}); !errors.Is(err, clientdomain.ErrInvalidName) {
		t.Fatalf("missing name err = %v, want %v", err, clientdomain.ErrInvalidName)
	}
	if _, err := svc.Create(ctx, clientdomain.CreateClientRequest{DisplayName: "A", Email: "not-an-email"}); !errors.Is(err, clientdomain.ErrInvalidEmail) {
		t.Fatalf("bad email err = %v, want %v", err, clientdomain.ErrInvalidEmail)
	}
	if _, err := svc.Create(context.Background(), clientdomain.CreateClientRequest{DisplayName: "A", Email: "a@b.test"}); !errors.Is(err, clientdomain.ErrInvalidOwner) {
		t.Fatalf("missing owner err = %v, want %v", err, clientdomain.ErrInvalidOwner)
	}
}

func TestClientOwnerScoping(t *testing.T) {
	db := setupClientTestDB(t, "client_scoping")
	svc := newClientService(t, db)
	owner := ownercontext.WithOwnerID(context.Background(), 1)
	stranger := ownercontext.WithOwnerID(context.Background(), 2)

	created, err := svc.Create(owner, clientdomain.CreateClientRequest{
		DisplayName: "Best Co",
		Email:       "accounts@bestco.test",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetByID(stranger, created.ID.String()); !errors.Is(err, clientdomain.ErrNotFound) {
		t.Fatalf("cross-owner get err = %v, want %v", err, clientdomain.ErrNotFound)
	}
	if err := svc.Delete(stranger, created.ID.String()); !errors.Is(err, clientdomain.ErrNotFound) {
		t.Fatalf("cross-owner delete err = %v, want %v", err, clientdomain.ErrNotFound)
	}
}

func TestListClientsPagesAndFilters(t *testing.T) {
	db := setupClientTestDB(t, "client_list")
	svc := newClientService(t, db)
	ctx := ownercontext.WithOwnerID(context.Background(), 1)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, clientdomain.CreateClientRequest{
			DisplayName: fmt.Sprintf("Client %02d", i),
			Email:       fmt.Sprintf("c%02d@example.test", i),
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	resp, err := svc.List(ctx, clientdomain.ListClientRequest{
		Pagination: pagination.Pagination{PageSize: 2},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Clients) != 2 {
		t.Fatalf("page size = %d, want 2", len(resp.Clients))
	}
	if !resp.HasMore || resp.NextPageToken == "" {
		t.Fatalf("expected more pages, got %+v", resp.PageInfo)
	}

	resp, err = svc.List(ctx, clientdomain.ListClientRequest{
		Pagination: pagination.Pagination{PageToken: resp.NextPageToken, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(resp.Clients) != 2 {
		t.Fatalf("second page size = %d, want 2", len(resp.Clients))
	}

	filtered, err := svc.List(ctx, clientdomain.ListClientRequest{Name: "Client 03"})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered.Clients) != 1 || filtered.Clients[0].DisplayName != "Client 03" {
		t.Fatalf("filtered = %+v", filtered.Clients)
	}
}

func setupClientTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS clients (
			id BIGINT PRIMARY KEY,
			owner_id BIGINT NOT NULL,
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
		t.Fatalf("create clients: %v", err)
	}
	return db
}
