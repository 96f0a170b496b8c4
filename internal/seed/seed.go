// Package seed bootstraps demo data for local development.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	clientdomain "github.com/billfold/billfold/internal/client/domain"
	companydomain "github.com/billfold/billfold/internal/company/domain"
	"github.com/billfold/billfold/internal/party"
)

// DemoOwnerID is the owner used by local development tooling. Production
// deployments never call EnsureDemoData.
const DemoOwnerID int64 = 1

// EnsureDemoData seeds a sender profile and a couple of clients for the demo
// owner so a fresh checkout renders something. Idempotent.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureDemoProfileTx(ctx, tx, node); err != nil {
			return err
		}
		return ensureDemoClientsTx(ctx, tx, node)
	})
}

func ensureDemoProfileTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var profile companydomain.Profile
	err := tx.WithContext(ctx).Where("owner_id = ?", DemoOwnerID).First(&profile).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	profile = companydomain.Profile{
		ID:          node.Generate(),
		OwnerID:     snowflake.ID(DemoOwnerID),
		DisplayName: "Billfold Demo Studio",
		Email:       "hello@billfold.local",
		Address: party.Address{
			Street1: "100 Demo Way",
			City:    "Springfield",
			State:   "IL",
			Country: "US",
			Zip:     "62701",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&profile).Error
}

func ensureDemoClientsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&clientdomain.Client{}).
		Where("owner_id = ?", DemoOwnerID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	clients := []clientdomain.Client{
		{
			ID:          node.Generate(),
			OwnerID:     snowflake.ID(DemoOwnerID),
			DisplayName: "Acme & Sons, Inc.",
			Email:       "billing@acme.test",
			Address: party.Address{
				Street1: "1 Coyote Canyon",
				City:    "Phoenix",
				State:   "AZ",
				Country: "US",
				Zip:     "85001",
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          node.Generate(),
			OwnerID:     snowflake.ID(DemoOwnerID),
			DisplayName: "Best Co",
			Email:       "accounts@bestco.test",
			Address: party.Address{
				Street1: "42 Market St",
				City:    "Portland",
				State:   "OR",
				Country: "US",
				Zip:     "97201",
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	return tx.WithContext(ctx).Create(&clients).Error
}
