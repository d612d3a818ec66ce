package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/apierror"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService records sales against the catalog (products and combos),
// decrementing aggregate stock and retiring barcoded units in the same
// transaction.
type SaleService interface {
	RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	UpdateSaleStatus(ctx context.Context, id uuid.UUID, status string) (*dto.SaleResponse, error)
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	comboRepo   repository.ComboRepository
	itemRepo    repository.ProductItemRepository
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	comboRepo repository.ComboRepository,
	itemRepo repository.ProductItemRepository,
) SaleService {
	return &saleService{
		repo:        repo,
		productRepo: productRepo,
		comboRepo:   comboRepo,
		itemRepo:    itemRepo,
	}
}

func (s *saleService) RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: sale needs at least one line", apierror.ErrInvalidInput)
	}

	saleDate := time.Now().UTC()
	if req.SaleDate != "" {
		var err error
		saleDate, err = time.Parse("2006-01-02", req.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("%w: sale_date %q", apierror.ErrInvalidInput, req.SaleDate)
		}
	}
	status := req.Status
	if status == "" {
		status = model.SaleStatusCompleted
	}

	// Pre-flight: resolve every referenced product/combo and expand combos
	// into their constituent product decrements before any write happens.
	type productDraw struct {
		productID uuid.UUID
		units     int
	}

	var saleItems []model.SaleItem
	var draws []productDraw
	totalAmount := decimal.Zero

	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive (item %s)", apierror.ErrInvalidInput, line.ItemID)
		}
		if line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative (item %s)", apierror.ErrInvalidInput, line.ItemID)
		}
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: item_id %q", apierror.ErrInvalidInput, line.ItemID)
		}

		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		totalAmount = totalAmount.Add(lineTotal)

		switch line.ItemType {
		case model.SaleItemTypeProduct:
			if _, err := s.productRepo.FindByID(ctx, itemID); err != nil {
				return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, line.ItemID)
			}
			pid := itemID
			saleItems = append(saleItems, model.SaleItem{
				ItemType:  model.SaleItemTypeProduct,
				ProductID: &pid,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				LineTotal: lineTotal,
			})
			draws = append(draws, productDraw{productID: itemID, units: line.Quantity})

		case model.SaleItemTypeCombo:
			combo, err := s.comboRepo.FindByID(ctx, itemID)
			if err != nil {
				return nil, fmt.Errorf("%w: combo %s", apierror.ErrNotFound, line.ItemID)
			}
			cid := itemID
			saleItems = append(saleItems, model.SaleItem{
				ItemType:  model.SaleItemTypeCombo,
				ComboID:   &cid,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				LineTotal: lineTotal,
			})
			// A combo sale draws each constituent product.
			for _, part := range combo.Items {
				draws = append(draws, productDraw{
					productID: part.ProductID,
					units:     part.Quantity * line.Quantity,
				})
			}

		default:
			return nil, fmt.Errorf("%w: item_type %q", apierror.ErrInvalidInput, line.ItemType)
		}
	}

	sale := &model.Sale{
		SaleDate:    saleDate,
		Status:      status,
		TotalAmount: totalAmount.Round(2),
		Items:       saleItems,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, d := range draws {
			if err := s.productRepo.IncrementQuantityTx(tx, d.productID, -d.units); err != nil {
				return err
			}
			retired, err := s.itemRepo.MarkSoldTx(tx, d.productID, d.units)
			if err != nil {
				return err
			}
			// Aggregate stock can exist without unit rows (pre-ledger stock),
			// so a short retire count is logged, not fatal.
			if retired < int64(d.units) {
				log.Warn().
					Str("product_id", d.productID.String()).
					Int("requested", d.units).
					Int64("retired", retired).
					Msg("fewer barcoded units retired than sold")
			}
		}
		return s.repo.CreateTx(tx, sale)
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: insufficient stock", apierror.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %v", apierror.ErrTransactionAborted, txErr)
	}

	created, err := s.repo.FindByID(ctx, sale.ID)
	if err != nil {
		// Stub repos in unit tests may not support the re-read.
		return saleToResponse(sale), nil
	}
	return saleToResponse(created), nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: sale %s", apierror.ErrNotFound, id)
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// UpdateSaleStatus transitions a sale's status. Marking a sale returned/rpu
// flips how the profit engine attributes it; stock is not restocked here —
// physical returns go through the returns ledger.
func (s *saleService) UpdateSaleStatus(ctx context.Context, id uuid.UUID, status string) (*dto.SaleResponse, error) {
	switch status {
	case model.SaleStatusCompleted, model.SaleStatusDelivered, model.SaleStatusReturned, model.SaleStatusRPU:
	default:
		return nil, fmt.Errorf("%w: status %q", apierror.ErrInvalidInput, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: sale %s", apierror.ErrNotFound, id)
		}
		return nil, err
	}
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: sale %s", apierror.ErrNotFound, id)
	}
	return saleToResponse(sale), nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:          sale.ID.String(),
		SaleDate:    sale.SaleDate.UTC().Format("2006-01-02"),
		Status:      sale.Status,
		TotalAmount: sale.TotalAmount,
	}
	for _, item := range sale.Items {
		out := dto.SaleItemResponse{
			ItemType:  item.ItemType,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
		switch {
		case item.ProductID != nil:
			out.ItemID = item.ProductID.String()
			if item.Product != nil {
				out.ItemName = item.Product.Name
			}
		case item.ComboID != nil:
			out.ItemID = item.ComboID.String()
			if item.Combo != nil {
				out.ItemName = item.Combo.Name
			}
		}
		resp.Items = append(resp.Items, out)
	}
	return resp
}
