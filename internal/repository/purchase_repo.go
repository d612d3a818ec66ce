package repository

import (
	"context"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseRepository is the data access contract for purchase records and
// their historical cost lines.
type PurchaseRepository interface {
	// CreateTx persists the purchase header and its items inside the caller's
	// transaction.
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error)

	// ListBetween returns purchases with the given status whose purchase date
	// falls in [start, end] (zero times = unbounded side).
	ListBetween(ctx context.Context, start, end time.Time, status string) ([]model.Purchase, error)

	// FindCostLine returns one historical purchase line for the product.
	// latest=true picks the most recent purchase date, otherwise the earliest.
	// Returns gorm.ErrRecordNotFound when the product was never purchased.
	FindCostLine(ctx context.Context, productID uuid.UUID, latest bool) (*model.PurchaseItem, error)

	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Items").
		Preload("Items.Product").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Purchase{})
	if filter.VendorID != "" {
		q = q.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.StartDate != "" {
		q = q.Where("purchase_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("purchase_date <= ?", filter.EndDate+" 23:59:59")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Vendor").Preload("Items").Preload("Items.Product").
		Order("purchase_date DESC").Limit(filter.Limit).Offset(offset).
		Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepo) ListBetween(ctx context.Context, start, end time.Time, status string) ([]model.Purchase, error) {
	var purchases []model.Purchase
	q := r.db.WithContext(ctx).Model(&model.Purchase{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if !start.IsZero() {
		q = q.Where("purchase_date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("purchase_date <= ?", end)
	}
	err := q.Order("purchase_date ASC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindCostLine(ctx context.Context, productID uuid.UUID, latest bool) (*model.PurchaseItem, error) {
	order := "purchases.purchase_date DESC"
	if !latest {
		order = "purchases.purchase_date ASC"
	}
	var item model.PurchaseItem
	err := r.db.WithContext(ctx).
		Joins("JOIN purchases ON purchases.id = purchase_items.purchase_id").
		Where("purchase_items.product_id = ?", productID).
		Order(order).
		First(&item).Error
	return &item, err
}

func (r *purchaseRepo) DB() *gorm.DB { return r.db }
