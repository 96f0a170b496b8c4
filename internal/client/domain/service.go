package domain

import (
	"context"
	"errors"

	"github.com/billfold/billfold/internal/party"
	"github.com/billfold/billfold/pkg/db/pagination"
)

type CreateClientRequest struct {
	DisplayName string        `json:"display_name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Address     party.Address `json:"address"`
}

type UpdateClientRequest struct {
	ID          string         `json:"id"`
	DisplayName *string        `json:"display_name"`
	Email       *string        `json:"email"`
	Phone       *string        `json:"phone"`
	Address     *party.Address `json:"address"`
}

type ListClientRequest struct {
	pagination.Pagination
	Name string
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (*Client, error)
	List(ctx context.Context, req ListClientRequest) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, req UpdateClientRequest) (*Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidOwner = errors.New("invalid_owner")
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrNotFound     = errors.New("client_not_found")
)
