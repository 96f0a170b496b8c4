// Package sequence allocates per-owner invoice numbers.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceSequence tracks the last allocated invoice number per owner.
type InvoiceSequence struct {
	OwnerID   snowflake.ID `gorm:"primaryKey"`
	LastValue int64        `gorm:"not null;default:0"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (InvoiceSequence) TableName() string { return "invoice_sequences" }

// Generator hands out gapless, owner-scoped invoice numbers.
type Generator struct {
	db *gorm.DB
}

func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{db: db}
}

// Next allocates the owner's next invoice number, e.g. "INV-000042". The
// row is locked for the duration of the transaction on dialects that
// support it, so concurrent allocations never collide.
func (g *Generator) Next(ctx context.Context, ownerID snowflake.ID) (string, error) {
	var number string
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var seq InvoiceSequence
		err := query.Where("owner_id = ?", ownerID).First(&seq).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = InvoiceSequence{OwnerID: ownerID}
		} else if err != nil {
			return err
		}

		seq.LastValue++
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}
		number = fmt.Sprintf("INV-%06d", seq.LastValue)
		return nil
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

var Module = fx.Module("sequence",
	fx.Provide(NewGenerator),
)
