package dto

import "github.com/shopspring/decimal"

// SaleLineRequest references either a product or a combo via ItemType.
type SaleLineRequest struct {
	ItemType  string          `json:"item_type" validate:"required,oneof=product combo"`
	ItemID    string          `json:"item_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
}

type RecordSaleRequest struct {
	SaleDate string            `json:"sale_date"` // optional YYYY-MM-DD, defaults to now
	Status   string            `json:"status" validate:"omitempty,oneof=completed delivered"`
	Items    []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed delivered returned rpu"`
}

type SaleItemResponse struct {
	ItemType  string          `json:"item_type"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type SaleResponse struct {
	ID          string             `json:"id"`
	SaleDate    string             `json:"sale_date"`
	Status      string             `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Items       []SaleItemResponse `json:"items"`
}

type SaleFilter struct {
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
