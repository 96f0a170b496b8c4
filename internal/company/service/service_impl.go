package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	companydomain "github.com/billfold/billfold/internal/company/domain"
	"github.com/billfold/billfold/internal/ownercontext"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p ServiceParam) companydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
	}
}

func (s *Service) Get(ctx context.Context) (*companydomain.Profile, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var record companydomain.Profile
	err = s.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, companydomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) Upsert(ctx context.Context, req companydomain.UpsertProfileRequest) (*companydomain.Profile, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, companydomain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, companydomain.ErrInvalidEmail
	}

	record, err := s.Get(ctx)
	if errors.Is(err, companydomain.ErrNotFound) {
		record = &companydomain.Profile{
			ID:      s.genID.Generate(),
			OwnerID: ownerID,
		}
	} else if err != nil {
		return nil, err
	}

	record.DisplayName = name
	record.Email = email
	record.Phone = strings.TrimSpace(req.Phone)
	record.Address = req.Address

	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func ownerFromContext(ctx context.Context) (snowflake.ID, error) {
	ownerID, ok := ownercontext.OwnerIDFromContext(ctx)
	if !ok {
		return 0, companydomain.ErrInvalidOwner
	}
	return snowflake.ID(ownerID), nil
}
