package model

import (
	"time"

	"github.com/google/uuid"
)

// Return categories. RTO = return to origin (bounced before delivery),
// RPU = return pickup (returned by the customer after delivery).
const (
	ReturnCategoryRTO = "rto"
	ReturnCategoryRPU = "rpu"
)

// ReturnEntry is one row of the returns ledger. ProductID is always a
// canonical uuid — incoming string identifiers are normalized at the store
// boundary, so no mixed-type matching happens at read time.
type ReturnEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Category   string    `gorm:"not null;index" json:"category"` // "rto" | "rpu"
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	CourierRef string    `json:"courier_ref"`
	Reason     string    `json:"reason"`
	ReturnDate time.Time `gorm:"not null;index" json:"return_date"`

	CreatedAt time.Time `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName keeps the ledger name explicit (return_entries reads as a ledger).
func (ReturnEntry) TableName() string { return "return_entries" }
