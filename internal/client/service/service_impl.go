package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/billfold/billfold/internal/client/domain"
	"github.com/billfold/billfold/internal/ownercontext"
	"github.com/billfold/billfold/pkg/db/pagination"
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

func NewService(p ServiceParam) clientdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req clientdomain.CreateClientRequest) (*clientdomain.Client, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, clientdomain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, clientdomain.ErrInvalidEmail
	}

	record := &clientdomain.Client{
		ID:          s.genID.Generate(),
		OwnerID:     ownerID,
		DisplayName: name,
		Email:       email,
		Phone:       strings.TrimSpace(req.Phone),
		Address:     req.Address,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req clientdomain.ListClientRequest) (clientdomain.ListClientResponse, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return clientdomain.ListClientResponse{}, err
	}

	page := req.Pagination.Normalize()
	offset := page.Offset()

	query := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("display_name ASC")
	if name := strings.TrimSpace(req.Name); name != "" {
		query = query.Where("display_name LIKE ?", name+"%")
	}

	var records []clientdomain.Client
	if err := query.Offset(offset).Limit(page.PageSize + 1).Find(&records).Error; err != nil {
		return clientdomain.ListClientResponse{}, err
	}

	resp := clientdomain.ListClientResponse{
		PageInfo: pagination.BuildPageInfo(len(records), page.PageSize, offset),
	}
	if len(records) > page.PageSize {
		records = records[:page.PageSize]
	}
	resp.Clients = records
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*clientdomain.Client, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	clientID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var record clientdomain.Client
	err = s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, clientID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, clientdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) Update(ctx context.Context, req clientdomain.UpdateClientRequest) (*clientdomain.Client, error) {
	record, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, clientdomain.ErrInvalidName
		}
		record.DisplayName = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, clientdomain.ErrInvalidEmail
		}
		record.Email = email
	}
	if req.Phone != nil {
		record.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		record.Address = *req.Address
	}

	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return err
	}
	clientID, err := parseID(id)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, clientID).
		Delete(&clientdomain.Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return clientdomain.ErrNotFound
	}
	return nil
}

func ownerFromContext(ctx context.Context) (snowflake.ID, error) {
	ownerID, ok := ownercontext.OwnerIDFromContext(ctx)
	if !ok {
		return 0, clientdomain.ErrInvalidOwner
	}
	return snowflake.ID(ownerID), nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, clientdomain.ErrInvalidID
	}
	return id, nil
}
