package repository

import (
	"context"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository is the data access contract for the sale ledger.
type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// ListBetween returns sales (with items) whose sale date falls in
	// [start, end]; zero times leave that side unbounded.
	ListBetween(ctx context.Context, start, end time.Time) ([]model.Sale, error)

	// SumProductQuantity sums sold item quantities for a product across sales
	// in any of the given statuses.
	SumProductQuantity(ctx context.Context, productID uuid.UUID, statuses []string) (int64, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").Preload("Items.Combo").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.StartDate != "" {
		q = q.Where("sale_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("sale_date <= ?", filter.EndDate+" 23:59:59")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Items.Product").Preload("Items.Combo").
		Order("sale_date DESC").Limit(filter.Limit).Offset(offset).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Sale{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepo) ListBetween(ctx context.Context, start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if !start.IsZero() {
		q = q.Where("sale_date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("sale_date <= ?", end)
	}
	err := q.Preload("Items").Preload("Items.Product").Preload("Items.Combo").
		Order("sale_date ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) SumProductQuantity(ctx context.Context, productID uuid.UUID, statuses []string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sale_items.product_id = ? AND sales.status IN ?", productID, statuses).
		Select("COALESCE(SUM(sale_items.quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
