// Package domain contains the sender profile rendered at the top of every
// invoice. Each owner has at most one profile.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/billfold/billfold/internal/party"
)

// Profile is the invoice sender's identity and address.
type Profile struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID snowflake.ID `gorm:"not null;uniqueIndex" json:"owner_id"`

	DisplayName string        `gorm:"type:text;not null" json:"display_name"`
	Email       string        `gorm:"type:text;not null" json:"email"`
	Phone       string        `gorm:"type:text" json:"phone,omitempty"`
	Address     party.Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "company_profiles" }
