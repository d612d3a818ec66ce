package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Combo is a bundled product sold as one unit: fixed quantities of
// constituent catalog products. Every constituent must reference an
// existing Product at creation time.
type Combo struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"index;not null" json:"name"`
	Barcode      string          `gorm:"uniqueIndex;not null" json:"barcode"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"selling_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []ComboItem `gorm:"foreignKey:ComboID" json:"items"`
}

// ComboItem links a combo to one constituent product and the quantity of that
// product packed into a single combo unit.
type ComboItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ComboID   uuid.UUID `gorm:"type:uuid;not null;index" json:"combo_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
