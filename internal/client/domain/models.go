// Package domain contains the recipient (client) records invoices bill to.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/billfold/billfold/internal/party"
)

// Client is a billable recipient owned by one tenant.
type Client struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID snowflake.ID `gorm:"not null;index" json:"owner_id"`

	DisplayName string        `gorm:"type:text;not null" json:"display_name"`
	Email       string        `gorm:"type:text;not null" json:"email"`
	Phone       string        `gorm:"type:text" json:"phone,omitempty"`
	Address     party.Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
