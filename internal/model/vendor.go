package model

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is a purchase counterparty (supplier).
type Vendor struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name    string    `gorm:"index;not null" json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
	Active  bool      `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides GORM's default pluralization (vendors, not vendor).
func (Vendor) TableName() string { return "vendors" }
