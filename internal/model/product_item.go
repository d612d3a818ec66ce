package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductItem statuses.
const (
	ItemStatusInStock = "in_stock"
	ItemStatusSold    = "sold"
)

// ProductItem is one individually tracked physical stock unit. Exactly one row
// is created per unit of quantity in a purchase line, inside the purchase
// transaction. Barcode is a point-in-time snapshot of the product barcode at
// materialization, not a live reference.
type ProductItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	PurchaseID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	Barcode       string          `gorm:"not null;index" json:"barcode"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"purchase_price"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"selling_price"`
	Status        string          `gorm:"not null;default:'in_stock';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
