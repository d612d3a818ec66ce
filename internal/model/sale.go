package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses. "rpu" and "returned" lines count as losses in profit reports.
const (
	SaleStatusCompleted = "completed"
	SaleStatusDelivered = "delivered"
	SaleStatusReturned  = "returned"
	SaleStatusRPU       = "rpu"
)

// SaleItem type tags.
const (
	SaleItemTypeProduct = "product"
	SaleItemTypeCombo   = "combo"
)

// Sale is an append-only record of a completed sale. Status may transition to
// returned/rpu; nothing else changes after creation.
type Sale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SaleDate    time.Time       `gorm:"not null;index" json:"sale_date"`
	Status      string          `gorm:"not null;default:'completed';index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem is one line of a sale, referencing either a product or a combo
// depending on ItemType.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ItemType  string          `gorm:"not null" json:"item_type"` // "product" | "combo"
	ProductID *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ComboID   *uuid.UUID      `gorm:"type:uuid;index" json:"combo_id,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"line_total"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Combo   *Combo   `gorm:"foreignKey:ComboID" json:"combo,omitempty"`
}
