package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Barcode is assigned once at creation and shared
// by every stock unit of the product; it never changes afterwards.
// Quantity is the aggregate on-hand count — it equals the number of
// not-yet-sold ProductItem rows and must never go negative.
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"index;not null" json:"name"`
	Category string    `gorm:"not null" json:"category"`
	Barcode  string    `gorm:"uniqueIndex;not null" json:"barcode"`
	Quantity int       `gorm:"not null;default:0" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
