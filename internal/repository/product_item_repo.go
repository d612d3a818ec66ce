package repository

import (
	"context"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductItemRepository is the data access contract for the unit ledger —
// individually barcoded physical stock units.
type ProductItemRepository interface {
	// CreateBatchTx inserts the materialized units inside the purchase
	// transaction. One insert per batch, not per unit.
	CreateBatchTx(tx *gorm.DB, items []model.ProductItem) error
	FindByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]model.ProductItem, error)
	// MarkSoldTx retires up to `count` in-stock units of a product, oldest
	// first. Returns the number of units actually retired.
	MarkSoldTx(tx *gorm.DB, productID uuid.UUID, count int) (int64, error)
	CountByProduct(ctx context.Context, productID uuid.UUID, status string) (int64, error)
}

type productItemRepo struct{ db *gorm.DB }

func NewProductItemRepository(db *gorm.DB) ProductItemRepository { return &productItemRepo{db: db} }

func (r *productItemRepo) CreateBatchTx(tx *gorm.DB, items []model.ProductItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *productItemRepo) FindByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]model.ProductItem, error) {
	var items []model.ProductItem
	err := r.db.WithContext(ctx).
		Where("purchase_id = ?", purchaseID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *productItemRepo) MarkSoldTx(tx *gorm.DB, productID uuid.UUID, count int) (int64, error) {
	res := tx.Exec(`
		UPDATE product_items SET status = ?, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM product_items
			WHERE product_id = ? AND status = ?
			ORDER BY created_at ASC
			LIMIT ?
		)`, model.ItemStatusSold, productID, model.ItemStatusInStock, count)
	return res.RowsAffected, res.Error
}

func (r *productItemRepo) CountByProduct(ctx context.Context, productID uuid.UUID, status string) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&model.ProductItem{}).Where("product_id = ?", productID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}
