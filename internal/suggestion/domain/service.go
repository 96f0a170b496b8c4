// Package domain exposes the composition-time lookups the invoice editor
// uses while line items are being typed: frequently used item names and the
// most recent unit cost charged for a name. These feed line-item input; they
// play no part in rendering.
package domain

import (
	"context"
	"errors"
)

// ItemNameCount is one entry of the top-used-item-names aggregate.
type ItemNameCount struct {
	Name       string `json:"name"`
	UsageCount int64  `json:"usage_count"`
}

type Service interface {
	// TopItemNames returns the owner's most frequently used item names,
	// most used first, name as tie-break.
	TopItemNames(ctx context.Context, limit int) ([]ItemNameCount, error)

	// RecentUnitCost returns the unit cost most recently charged for the
	// exact item name; ok is false when the owner never billed that name.
	RecentUnitCost(ctx context.Context, itemName string) (cost int64, ok bool, err error)
}

var (
	ErrInvalidOwner = errors.New("invalid_owner")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidLimit = errors.New("invalid_limit")
)
