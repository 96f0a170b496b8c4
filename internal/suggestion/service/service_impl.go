package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/cache"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
	"github.com/billfold/billfold/internal/ownercontext"
	suggestiondomain "github.com/billfold/billfold/internal/suggestion/domain"
)

const (
	maxTopNames = 50
	topNamesTTL = 30 * time.Second
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	topCache *cache.TTLCache[string, []suggestiondomain.ItemNameCount]
}

func NewService(p ServiceParam) suggestiondomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("suggestion.service"),
		topCache: cache.NewTTLCache[string, []suggestiondomain.ItemNameCount](),
	}
}

func (s *Service) TopItemNames(ctx context.Context, limit int) ([]suggestiondomain.ItemNameCount, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxTopNames {
		return nil, suggestiondomain.ErrInvalidLimit
	}

	cacheKey := fmt.Sprintf("%s:%d", ownerID.String(), limit)
	if cached, ok := s.topCache.Get(cacheKey); ok {
		return cached, nil
	}

	var results []suggestiondomain.ItemNameCount
	err = s.db.WithContext(ctx).
		Model(&invoicedomain.InvoiceItem{}).
		Select("name, COUNT(*) AS usage_count").
		Where("owner_id = ? AND name <> ''", ownerID).
		Group("name").
		Order("usage_count DESC, name ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	s.topCache.Set(cacheKey, results, topNamesTTL)
	return results, nil
}

func (s *Service) RecentUnitCost(ctx context.Context, itemName string) (int64, bool, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return 0, false, err
	}
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return 0, false, suggestiondomain.ErrInvalidName
	}

	var record invoicedomain.InvoiceItem
	err = s.db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", ownerID, itemName).
		Order("created_at DESC, id DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return record.UnitCost, true, nil
}

func ownerFromContext(ctx context.Context) (snowflake.ID, error) {
	ownerID, ok := ownercontext.OwnerIDFromContext(ctx)
	if !ok {
		return 0, suggestiondomain.ErrInvalidOwner
	}
	return snowflake.ID(ownerID), nil
}
