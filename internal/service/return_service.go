package service

import (
	"context"
	"fmt"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/apierror"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/repository"

	"github.com/google/uuid"
)

// ReturnService keeps the returns ledger. Product references arrive as either
// a uuid or a barcode; both are normalized to the canonical uuid before the
// entry is written, so the ledger never holds mixed identifier types.
type ReturnService interface {
	RecordReturn(ctx context.Context, req dto.CreateReturnRequest) (*dto.ReturnResponse, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]dto.ReturnResponse, error)
	Totals(ctx context.Context, productID uuid.UUID) (*dto.ReturnTotals, error)
}

type returnService struct {
	repo        repository.ReturnRepository
	productRepo repository.ProductRepository
}

func NewReturnService(repo repository.ReturnRepository, productRepo repository.ProductRepository) ReturnService {
	return &returnService{repo: repo, productRepo: productRepo}
}

// resolveProductRef maps a uuid-or-barcode reference to the catalog uuid.
func (s *returnService) resolveProductRef(ctx context.Context, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if _, err := s.productRepo.FindByID(ctx, id); err != nil {
			return uuid.Nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, ref)
		}
		return id, nil
	}
	p, err := s.productRepo.FindByBarcode(ctx, ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: product %q", apierror.ErrNotFound, ref)
	}
	return p.ID, nil
}

func (s *returnService) RecordReturn(ctx context.Context, req dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	switch req.Category {
	case model.ReturnCategoryRTO, model.ReturnCategoryRPU:
	default:
		return nil, fmt.Errorf("%w: category %q", apierror.ErrInvalidInput, req.Category)
	}

	productID, err := s.resolveProductRef(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apierror.ErrInvalidInput)
	}

	returnDate := time.Now().UTC()
	if req.ReturnDate != "" {
		returnDate, err = time.Parse("2006-01-02", req.ReturnDate)
		if err != nil {
			return nil, fmt.Errorf("%w: return_date %q", apierror.ErrInvalidInput, req.ReturnDate)
		}
	}

	entry := &model.ReturnEntry{
		ProductID:  productID,
		Category:   req.Category,
		Quantity:   quantity,
		CourierRef: req.CourierRef,
		Reason:     req.Reason,
		ReturnDate: returnDate,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return returnToResponse(entry), nil
}

func (s *returnService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]dto.ReturnResponse, error) {
	entries, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnResponse, 0, len(entries))
	for i := range entries {
		out = append(out, *returnToResponse(&entries[i]))
	}
	return out, nil
}

func (s *returnService) Totals(ctx context.Context, productID uuid.UUID) (*dto.ReturnTotals, error) {
	rto, err := s.repo.SumQuantity(ctx, productID, model.ReturnCategoryRTO)
	if err != nil {
		return nil, err
	}
	rpu, err := s.repo.SumQuantity(ctx, productID, model.ReturnCategoryRPU)
	if err != nil {
		return nil, err
	}
	return &dto.ReturnTotals{ProductID: productID.String(), RTOUnits: rto, RPUUnits: rpu}, nil
}

func returnToResponse(e *model.ReturnEntry) *dto.ReturnResponse {
	return &dto.ReturnResponse{
		ID:         e.ID.String(),
		ProductID:  e.ProductID.String(),
		Category:   e.Category,
		Quantity:   e.Quantity,
		CourierRef: e.CourierRef,
		Reason:     e.Reason,
		ReturnDate: e.ReturnDate.UTC().Format("2006-01-02"),
	}
}
