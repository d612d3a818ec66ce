package repository

import (
	"context"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReturnRepository is the data access contract for the returns ledger.
// All product references are canonical uuids; callers normalize any string
// identifiers before reaching this layer.
type ReturnRepository interface {
	Create(ctx context.Context, e *model.ReturnEntry) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ReturnEntry, error)
	// SumQuantity totals returned units of a product for one category
	// ("rto" | "rpu").
	SumQuantity(ctx context.Context, productID uuid.UUID, category string) (int64, error)
}

type returnRepo struct{ db *gorm.DB }

func NewReturnRepository(db *gorm.DB) ReturnRepository { return &returnRepo{db: db} }

func (r *returnRepo) Create(ctx context.Context, e *model.ReturnEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *returnRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ReturnEntry, error) {
	var entries []model.ReturnEntry
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("return_date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *returnRepo) SumQuantity(ctx context.Context, productID uuid.UUID, category string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.ReturnEntry{}).
		Where("product_id = ? AND category = ?", productID, category).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}
