package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase statuses.
const (
	PurchaseStatusCompleted = "completed"
	PurchaseStatusCancelled = "cancelled"
)

// Purchase is an immutable record of a vendor purchase. It is created once by
// the purchase service inside a single transaction together with its items and
// the per-unit stock ledger rows; only Status may change afterwards.
type Purchase struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VendorID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"vendor_id"`
	PurchaseDate time.Time       `gorm:"not null;index" json:"purchase_date"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	Status       string          `gorm:"not null;default:'completed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Vendor *Vendor        `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Items  []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items"`
}

// PurchaseItem is one line of a purchase. LineTotal = Quantity × UnitCost,
// computed by the service, never by the caller.
type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	LineTotal  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
