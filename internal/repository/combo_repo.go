package repository

import (
	"context"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComboRepository is the data access contract for bundled products.
type ComboRepository interface {
	Create(ctx context.Context, c *model.Combo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Combo, error)
	List(ctx context.Context) ([]model.Combo, error)
}

type comboRepo struct{ db *gorm.DB }

func NewComboRepository(db *gorm.DB) ComboRepository { return &comboRepo{db: db} }

func (r *comboRepo) Create(ctx context.Context, c *model.Combo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *comboRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Combo, error) {
	var c model.Combo
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Product").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *comboRepo) List(ctx context.Context) ([]model.Combo, error) {
	var combos []model.Combo
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Product").
		Order("name ASC").Find(&combos).Error
	return combos, err
}
