package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/apierror"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/repository"

	"github.com/google/uuid"
)

// CatalogService manages products, combos and vendors. Product barcodes are
// assigned once at creation (caller-supplied or generated) and never change;
// quantity is owned by the purchase and sale flows, not by catalog edits.
type CatalogService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)

	CreateCombo(ctx context.Context, req dto.CreateComboRequest) (*dto.ComboResponse, error)
	GetCombo(ctx context.Context, id uuid.UUID) (*dto.ComboResponse, error)
	ListCombos(ctx context.Context) ([]dto.ComboResponse, error)

	CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*dto.VendorResponse, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*dto.VendorResponse, error)
	ListVendors(ctx context.Context) ([]dto.VendorResponse, error)
	UpdateVendor(ctx context.Context, id uuid.UUID, req dto.CreateVendorRequest) (*dto.VendorResponse, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	comboRepo   repository.ComboRepository
	vendorRepo  repository.VendorRepository
	itemRepo    repository.ProductItemRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	comboRepo repository.ComboRepository,
	vendorRepo repository.VendorRepository,
	itemRepo repository.ProductItemRepository,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		comboRepo:   comboRepo,
		vendorRepo:  vendorRepo,
		itemRepo:    itemRepo,
	}
}

// newBarcode generates a catalog barcode. Uniqueness is enforced by the DB
// index; collision odds on 12 hex chars are negligible at catalog scale.
func newBarcode(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(raw[:12])
}

// ── Products ─────────────────────────────────────────────────────────────────

func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	barcode := strings.TrimSpace(req.Barcode)
	if barcode == "" {
		barcode = newBarcode("PRD")
	} else if _, err := s.productRepo.FindByBarcode(ctx, barcode); err == nil {
		return nil, fmt.Errorf("%w: barcode %q already in use", apierror.ErrInvalidInput, barcode)
	}

	p := &model.Product{
		Name:     req.Name,
		Category: req.Category,
		Barcode:  barcode,
	}
	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, id)
	}
	resp := productToResponse(p)
	// Aggregate quantity can predate the unit ledger, so both are reported:
	// quantity is the sellable total, units_in_stock the ledgered subset.
	if inStock, err := s.itemRepo.CountByProduct(ctx, id, model.ItemStatusInStock); err == nil {
		resp.UnitsInStock = &inStock
	}
	return resp, nil
}

func (s *catalogService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// UpdateProduct edits name and category only. Barcode and quantity are not
// catalog-editable.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, id)
	}
	p.Name = req.Name
	p.Category = req.Category
	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// ── Combos ───────────────────────────────────────────────────────────────────

func (s *catalogService) CreateCombo(ctx context.Context, req dto.CreateComboRequest) (*dto.ComboResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: combo needs at least one constituent", apierror.ErrInvalidInput)
	}
	if req.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: selling price must not be negative", apierror.ErrInvalidInput)
	}

	combo := &model.Combo{
		Name:         req.Name,
		Barcode:      newBarcode("CMB"),
		SellingPrice: req.SellingPrice.Round(2),
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: constituent quantity must be positive (product %s)", apierror.ErrInvalidInput, item.ProductID)
		}
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product_id %q", apierror.ErrInvalidInput, item.ProductID)
		}
		if _, err := s.productRepo.FindByID(ctx, pid); err != nil {
			return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, item.ProductID)
		}
		combo.Items = append(combo.Items, model.ComboItem{ProductID: pid, Quantity: item.Quantity})
	}

	if err := s.comboRepo.Create(ctx, combo); err != nil {
		return nil, err
	}
	return comboToResponse(combo), nil
}

func (s *catalogService) GetCombo(ctx context.Context, id uuid.UUID) (*dto.ComboResponse, error) {
	combo, err := s.comboRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: combo %s", apierror.ErrNotFound, id)
	}
	return comboToResponse(combo), nil
}

func (s *catalogService) ListCombos(ctx context.Context) ([]dto.ComboResponse, error) {
	combos, err := s.comboRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComboResponse, 0, len(combos))
	for i := range combos {
		out = append(out, *comboToResponse(&combos[i]))
	}
	return out, nil
}

// ── Vendors ──────────────────────────────────────────────────────────────────

func (s *catalogService) CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	v := &model.Vendor{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Active:  true,
	}
	if err := s.vendorRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	return vendorToResponse(v), nil
}

func (s *catalogService) GetVendor(ctx context.Context, id uuid.UUID) (*dto.VendorResponse, error) {
	v, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: vendor %s", apierror.ErrNotFound, id)
	}
	return vendorToResponse(v), nil
}

func (s *catalogService) ListVendors(ctx context.Context) ([]dto.VendorResponse, error) {
	vendors, err := s.vendorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorResponse, 0, len(vendors))
	for i := range vendors {
		out = append(out, *vendorToResponse(&vendors[i]))
	}
	return out, nil
}

func (s *catalogService) UpdateVendor(ctx context.Context, id uuid.UUID, req dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	v, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: vendor %s", apierror.ErrNotFound, id)
	}
	v.Name = req.Name
	v.Email = req.Email
	v.Phone = req.Phone
	v.Address = req.Address
	if err := s.vendorRepo.Update(ctx, v); err != nil {
		return nil, err
	}
	return vendorToResponse(v), nil
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Category:  p.Category,
		Barcode:   p.Barcode,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func comboToResponse(c *model.Combo) *dto.ComboResponse {
	resp := &dto.ComboResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Barcode:      c.Barcode,
		SellingPrice: c.SellingPrice,
	}
	for _, item := range c.Items {
		out := dto.ComboItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			out.ProductName = item.Product.Name
		}
		resp.Items = append(resp.Items, out)
	}
	return resp
}

func vendorToResponse(v *model.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:      v.ID.String(),
		Name:    v.Name,
		Email:   v.Email,
		Phone:   v.Phone,
		Address: v.Address,
		Active:  v.Active,
	}
}
