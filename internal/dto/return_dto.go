package dto

// CreateReturnRequest records one returned shipment. ProductID accepts either
// the catalog uuid or the product barcode; the service resolves it to the
// canonical uuid before the entry is stored.
type CreateReturnRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	Category   string `json:"category" validate:"required,oneof=rto rpu"`
	Quantity   int    `json:"quantity" validate:"omitempty,gt=0"`
	CourierRef string `json:"courier_ref"`
	Reason     string `json:"reason"`
	ReturnDate string `json:"return_date"` // optional YYYY-MM-DD, defaults to now
}

type ReturnResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Category   string `json:"category"`
	Quantity   int    `json:"quantity"`
	CourierRef string `json:"courier_ref"`
	Reason     string `json:"reason"`
	ReturnDate string `json:"return_date"`
}

// ReturnTotals is the per-product rollup used by the status histogram.
type ReturnTotals struct {
	ProductID string `json:"product_id"`
	RTOUnits  int64  `json:"rto_units"`
	RPUUnits  int64  `json:"rpu_units"`
}
