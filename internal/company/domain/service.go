package domain

import (
	"context"
	"errors"

	"github.com/billfold/billfold/internal/party"
)

type UpsertProfileRequest struct {
	DisplayName string        `json:"display_name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Address     party.Address `json:"address"`
}

type Service interface {
	// Get returns the owner's sender profile, or ErrNotFound when the
	// owner has not completed one yet.
	Get(ctx context.Context) (*Profile, error)
	Upsert(ctx context.Context, req UpsertProfileRequest) (*Profile, error)
}

var (
	ErrInvalidOwner = errors.New("invalid_owner")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrNotFound     = errors.New("profile_not_found")
)
