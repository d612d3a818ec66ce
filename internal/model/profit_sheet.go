package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitSheet is one ingested spreadsheet of externally produced order/return
// data. It lives beside — not inside — the live sale/purchase ledgers and is
// reconciled manually. TotalRecords, SuccessRecords, ErrorRecords and the
// profit summary are pure functions of the current row set: every row mutation
// recomputes them in full, they are never patched incrementally.
type ProfitSheet struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FileName   string    `gorm:"not null" json:"file_name"`
	UploadedAt time.Time `gorm:"not null" json:"uploaded_at"`
	Status     string    `gorm:"not null;default:'processed'" json:"status"`

	TotalRecords   int `gorm:"not null;default:0" json:"total_records"`
	SuccessRecords int `gorm:"not null;default:0" json:"success_records"`
	ErrorRecords   int `gorm:"not null;default:0" json:"error_records"`

	TotalProfit     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_profit"`
	DeliveredProfit decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"delivered_profit"`
	RPUProfit       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"rpu_profit"`
	NetProfit       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"net_profit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Rows []ProfitSheetRow `gorm:"foreignKey:SheetID" json:"rows,omitempty"`
}

// ProfitSheetRow is one normalized spreadsheet row. Every field is stored as
// text to tolerate heterogeneous source formatting; arithmetic reinterprets
// Profit at summary time. Position preserves the original sheet order.
type ProfitSheetRow struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SheetID  uuid.UUID `gorm:"type:uuid;not null;index" json:"sheet_id"`
	Position int       `gorm:"not null" json:"position"`

	Month         string `json:"month"`
	SerialNo      string `json:"serial_no"`
	OrderDate     string `json:"order_date"`
	OrderID       string `json:"order_id"`
	SKU           string `json:"sku"`
	Quantity      string `json:"quantity"`
	Status        string `json:"status"`
	PaymentMode   string `json:"payment_mode"`
	PaymentAmount string `json:"payment_amount"`
	PurchasePrice string `json:"purchase_price"`
	Profit        string `json:"profit"`
	ReturnClaim   string `json:"return_claim"`
	ClaimStatus   string `json:"claim_status"`
	Remarks       string `json:"remarks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName groups sheet rows under their parent naming.
func (ProfitSheetRow) TableName() string { return "profit_sheet_rows" }
