package dto

import "github.com/shopspring/decimal"

// PurchaseLineRequest is one (product, quantity, unit cost) line of a purchase.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"min=0"`
}

// RecordPurchaseRequest creates a purchase. PurchaseDate is optional
// (YYYY-MM-DD); it defaults to now.
type RecordPurchaseRequest struct {
	VendorID     string                `json:"vendor_id" validate:"required"`
	PurchaseDate string                `json:"purchase_date"`
	Items        []PurchaseLineRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Barcode     string          `json:"barcode"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type PurchaseResponse struct {
	ID           string                 `json:"id"`
	VendorID     string                 `json:"vendor_id"`
	VendorName   string                 `json:"vendor_name"`
	PurchaseDate string                 `json:"purchase_date"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	Status       string                 `json:"status"`
	Items        []PurchaseItemResponse `json:"items"`
	UnitsCreated int                    `json:"units_created"`
}

type PurchaseFilter struct {
	VendorID  string `form:"vendor_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type PurchaseListResponse struct {
	Data  []PurchaseResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// UnitBarcode is one stock unit's barcode rendered as a PNG.
type UnitBarcode struct {
	ItemID  string `json:"item_id"`
	Barcode string `json:"barcode"`
	PNG     []byte `json:"png"` // base64-encoded in JSON
}
