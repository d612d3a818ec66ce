package dto

import "github.com/shopspring/decimal"

// SheetRowPatch carries the editable fields of one sheet row. Pointer fields:
// nil = leave unchanged, set = overwrite (including with "").
type SheetRowPatch struct {
	Month         *string `json:"month"`
	SerialNo      *string `json:"serial_no"`
	OrderDate     *string `json:"order_date"`
	OrderID       *string `json:"order_id"`
	SKU           *string `json:"sku"`
	Quantity      *string `json:"quantity"`
	Status        *string `json:"status"`
	PaymentMode   *string `json:"payment_mode"`
	PaymentAmount *string `json:"payment_amount"`
	PurchasePrice *string `json:"purchase_price"`
	Profit        *string `json:"profit"`
	ReturnClaim   *string `json:"return_claim"`
	ClaimStatus   *string `json:"claim_status"`
	Remarks       *string `json:"remarks"`
}

type SheetRowResponse struct {
	ID            string `json:"id"`
	Position      int    `json:"position"`
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
}

type SheetProfitSummary struct {
	TotalProfit     decimal.Decimal `json:"total_profit"`
	DeliveredProfit decimal.Decimal `json:"delivered_profit"`
	RPUProfit       decimal.Decimal `json:"rpu_profit"`
	NetProfit       decimal.Decimal `json:"net_profit"`
}

type SheetResponse struct {
	ID             string             `json:"id"`
	FileName       string             `json:"file_name"`
	UploadedAt     string             `json:"uploaded_at"`
	Status         string             `json:"status"`
	TotalRecords   int                `json:"total_records"`
	SuccessRecords int                `json:"success_records"`
	ErrorRecords   int                `json:"error_records"`
	ProfitSummary  SheetProfitSummary `json:"profit_summary"`
	Rows           []SheetRowResponse `json:"rows,omitempty"`
}

type SheetFilter struct {
	FileName string `form:"file_name"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type SheetListResponse struct {
	Data  []SheetResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// IngestSheetRequest ingests pre-extracted rows (the JSON path; .xlsx uploads
// go through the multipart endpoint instead).
type IngestSheetRequest struct {
	FileName string           `json:"file_name" validate:"required"`
	Rows     []map[string]any `json:"rows" validate:"required"`
}
