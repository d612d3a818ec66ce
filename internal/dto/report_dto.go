package dto

import "github.com/shopspring/decimal"

// DateRangeFilter bounds a report query. Both ends optional; start must not be
// after end. End is inclusive through end-of-day.
type DateRangeFilter struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD
}

// ProfitRecord is the per-sale-line attribution result.
type ProfitRecord struct {
	SaleID        string          `json:"sale_id"`
	SaleDate      string          `json:"sale_date"`
	ItemType      string          `json:"item_type"`
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Status        string          `json:"status"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	ProfitPerUnit decimal.Decimal `json:"profit_per_unit"`
	ProfitTotal   decimal.Decimal `json:"profit_total"`
}

// MonthlyProfit is one YYYY-MM bucket of the rollup.
type MonthlyProfit struct {
	Month           string          `json:"month"` // YYYY-MM, UTC
	DeliveredProfit decimal.Decimal `json:"delivered_profit"`
	RPUProfit       decimal.Decimal `json:"rpu_profit"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
}

type ProfitSummary struct {
	TotalProfit     decimal.Decimal `json:"total_profit"`
	DeliveredProfit decimal.Decimal `json:"delivered_profit"`
	RPUProfit       decimal.Decimal `json:"rpu_profit"`
}

type ProfitLossResponse struct {
	Records []ProfitRecord  `json:"records"`
	Monthly []MonthlyProfit `json:"monthly"`
	Summary ProfitSummary   `json:"summary"`
}

// DailyFlow is one day of the outer-joined purchase/sales series. A side with
// no activity that day is zero, not omitted.
type DailyFlow struct {
	Date           string          `json:"date"` // YYYY-MM-DD
	PurchaseAmount decimal.Decimal `json:"purchase_amount"`
	PurchaseCount  int             `json:"purchase_count"`
	SalesAmount    decimal.Decimal `json:"sales_amount"`
	SalesCount     int             `json:"sales_count"`
}

type PurchaseSalesSeriesResponse struct {
	Series        []DailyFlow     `json:"series"`
	TotalPurchase decimal.Decimal `json:"total_purchase"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	Profit        decimal.Decimal `json:"profit"` // totalSales − totalPurchase
}

// ProductStatusHistogram classifies unit outcomes for one product.
type ProductStatusHistogram struct {
	ProductID string `json:"product_id"`
	Delivered int    `json:"delivered"`
	RTO       int    `json:"rto"`
	RPU       int    `json:"rpu"`
	Total     int    `json:"total"`
}
