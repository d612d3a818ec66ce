package dto

import "github.com/shopspring/decimal"

// ── Products ─────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	// Barcode is optional: when empty the service assigns one. Once assigned
	// it is immutable.
	Barcode string `json:"barcode"`
}

type UpdateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type ProductResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Barcode   string `json:"barcode"`
	Quantity  int    `json:"quantity"`
	// UnitsInStock is the live unit-ledger count; only populated on the
	// detail endpoint to keep list queries cheap.
	UnitsInStock *int64 `json:"units_in_stock,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Barcode  string `form:"barcode"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ── Combos ───────────────────────────────────────────────────────────────────

type ComboItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CreateComboRequest struct {
	Name         string             `json:"name" validate:"required"`
	SellingPrice decimal.Decimal    `json:"selling_price" validate:"min=0"`
	Items        []ComboItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ComboItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type ComboResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Barcode      string              `json:"barcode"`
	SellingPrice decimal.Decimal     `json:"selling_price"`
	Items        []ComboItemResponse `json:"items"`
}

// ── Vendors ──────────────────────────────────────────────────────────────────

type CreateVendorRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type VendorResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Active  bool   `json:"active"`
}
