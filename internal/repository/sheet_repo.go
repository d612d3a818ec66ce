package repository

import (
	"context"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SheetRepository is the data access contract for uploaded profit sheets and
// their individually addressable rows.
type SheetRepository interface {
	Create(ctx context.Context, s *model.ProfitSheet) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProfitSheet, error)
	List(ctx context.Context, filter dto.SheetFilter) ([]model.ProfitSheet, int64, error)

	// UpdateSummary overwrites the derived header fields. Row mutations call
	// this after recomputing from the full row set.
	UpdateSummary(ctx context.Context, s *model.ProfitSheet) error

	FindRow(ctx context.Context, sheetID, rowID uuid.UUID) (*model.ProfitSheetRow, error)
	SaveRow(ctx context.Context, row *model.ProfitSheetRow) error
	DeleteRow(ctx context.Context, sheetID, rowID uuid.UUID) error
	// MaxPosition returns the highest row position in the sheet (0 when empty).
	MaxPosition(ctx context.Context, sheetID uuid.UUID) (int, error)
}

type sheetRepo struct{ db *gorm.DB }

func NewSheetRepository(db *gorm.DB) SheetRepository { return &sheetRepo{db: db} }

func (r *sheetRepo) Create(ctx context.Context, s *model.ProfitSheet) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sheetRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProfitSheet, error) {
	var s model.ProfitSheet
	err := r.db.WithContext(ctx).
		Preload("Rows", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *sheetRepo) List(ctx context.Context, filter dto.SheetFilter) ([]model.ProfitSheet, int64, error) {
	var sheets []model.ProfitSheet
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ProfitSheet{})
	if filter.FileName != "" {
		q = q.Where("file_name ILIKE ?", "%"+filter.FileName+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("uploaded_at DESC").Limit(filter.Limit).Offset(offset).Find(&sheets).Error
	return sheets, total, err
}

func (r *sheetRepo) UpdateSummary(ctx context.Context, s *model.ProfitSheet) error {
	return r.db.WithContext(ctx).Model(&model.ProfitSheet{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"status":           s.Status,
			"total_records":    s.TotalRecords,
			"success_records":  s.SuccessRecords,
			"error_records":    s.ErrorRecords,
			"total_profit":     s.TotalProfit,
			"delivered_profit": s.DeliveredProfit,
			"rpu_profit":       s.RPUProfit,
			"net_profit":       s.NetProfit,
		}).Error
}

func (r *sheetRepo) FindRow(ctx context.Context, sheetID, rowID uuid.UUID) (*model.ProfitSheetRow, error) {
	var row model.ProfitSheetRow
	err := r.db.WithContext(ctx).
		Where("id = ? AND sheet_id = ?", rowID, sheetID).
		First(&row).Error
	return &row, err
}

func (r *sheetRepo) SaveRow(ctx context.Context, row *model.ProfitSheetRow) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *sheetRepo) DeleteRow(ctx context.Context, sheetID, rowID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND sheet_id = ?", rowID, sheetID).
		Delete(&model.ProfitSheetRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sheetRepo) MaxPosition(ctx context.Context, sheetID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&model.ProfitSheetRow{}).
		Where("sheet_id = ?", sheetID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}
