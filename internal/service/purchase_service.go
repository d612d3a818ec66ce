package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/apierror"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/infra"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/repository"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// sellingMarkup is the default markup applied to a unit's purchase price when
// it is materialized: sellingPrice = unitCost × 1.20. Mutable per unit later.
var sellingMarkup = decimal.NewFromFloat(1.20)

// PurchaseService is the transactional core: it converts a vendor purchase
// into aggregate quantity increments plus individually barcoded stock units,
// all inside one unit of work.
type PurchaseService interface {
	RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error)
	GenerateUnitBarcodes(ctx context.Context, purchaseID uuid.UUID) ([]dto.UnitBarcode, error)
	GetPurchase(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	ListPurchases(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error)
}

type purchaseService struct {
	repo        repository.PurchaseRepository
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorRepository
	itemRepo    repository.ProductItemRepository
	dispatcher  *worker.Dispatcher
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	itemRepo repository.ProductItemRepository,
	dispatcher *worker.Dispatcher,
) PurchaseService {
	return &purchaseService{
		repo:        repo,
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		itemRepo:    itemRepo,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RecordPurchase ────────────────────────────────────────────────────────────
// Single atomic unit of work:
//   1. Pre-flight (outside tx): validate lines, resolve vendor and products,
//      compute line totals and totalAmount.
//   2. BEGIN TX: atomic quantity increment per line, create purchase+items,
//      re-read each product's barcode inside the tx and materialize exactly
//      `quantity` ProductItem rows per line.
//   3. COMMIT. Any failure rolls back every write — no partial materialization
//      is observable.
//   4. (async) dispatch purchase-order document job, fire & forget.

func (s *purchaseService) RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: purchase needs at least one line", apierror.ErrInvalidInput)
	}

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, fmt.Errorf("%w: vendor_id %q", apierror.ErrInvalidInput, req.VendorID)
	}
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("%w: vendor %s", apierror.ErrNotFound, req.VendorID)
	}

	purchaseDate := time.Now().UTC()
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: purchase_date %q", apierror.ErrInvalidInput, req.PurchaseDate)
		}
	}

	// Pre-flight line resolution — no mutation happens until every reference
	// and every quantity/cost has been validated.
	type resolvedLine struct {
		productID uuid.UUID
		name      string
		quantity  int
		unitCost  decimal.Decimal
		lineTotal decimal.Decimal
	}

	var resolved []resolvedLine
	totalAmount := decimal.Zero
	totalUnits := 0

	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive (product %s)", apierror.ErrInvalidInput, line.ProductID)
		}
		if line.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: unit cost must not be negative (product %s)", apierror.ErrInvalidInput, line.ProductID)
		}
		pid, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product_id %q", apierror.ErrInvalidInput, line.ProductID)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, line.ProductID)
		}

		lineTotal := line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
		totalAmount = totalAmount.Add(lineTotal)
		totalUnits += line.Quantity
		resolved = append(resolved, resolvedLine{
			productID: pid,
			name:      p.Name,
			quantity:  line.Quantity,
			unitCost:  line.UnitCost,
			lineTotal: lineTotal,
		})
	}

	var purchase model.Purchase
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Atomic increments — relative updates, so concurrent purchases
		// against the same product never lose quantity.
		for _, r := range resolved {
			if err := s.productRepo.IncrementQuantityTx(tx, r.productID, r.quantity); err != nil {
				return fmt.Errorf("increment product %s: %w", r.productID, err)
			}
		}

		purchase = model.Purchase{
			VendorID:     vendorID,
			PurchaseDate: purchaseDate,
			TotalAmount:  totalAmount,
			Status:       model.PurchaseStatusCompleted,
		}
		for _, r := range resolved {
			purchase.Items = append(purchase.Items, model.PurchaseItem{
				ProductID: r.productID,
				Quantity:  r.quantity,
				UnitCost:  r.unitCost,
				LineTotal: r.lineTotal,
			})
		}
		if err := s.repo.CreateTx(tx, &purchase); err != nil {
			return err
		}

		// Materialize the unit ledger: barcode re-read inside the tx so each
		// unit carries the product's barcode as of commit time.
		var units []model.ProductItem
		for _, r := range resolved {
			p, err := s.productRepo.FindByIDTx(tx, r.productID)
			if err != nil {
				return fmt.Errorf("reload product %s: %w", r.productID, err)
			}
			selling := r.unitCost.Mul(sellingMarkup).Round(2)
			for i := 0; i < r.quantity; i++ {
				units = append(units, model.ProductItem{
					ProductID:     r.productID,
					PurchaseID:    purchase.ID,
					Barcode:       p.Barcode,
					PurchasePrice: r.unitCost,
					SellingPrice:  selling,
					Status:        model.ItemStatusInStock,
				})
			}
		}
		return s.itemRepo.CreateBatchTx(tx, units)
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", apierror.ErrNotFound, txErr)
		}
		return nil, fmt.Errorf("%w: %v", apierror.ErrTransactionAborted, txErr)
	}

	// Async PO document + vendor email — best-effort, fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueuePurchaseDoc(ctx, worker.PurchaseDocJobPayload{
			PurchaseID: purchase.ID.String(),
		})
	}

	resp := purchaseToResponse(&purchase)
	resp.VendorName = vendor.Name
	resp.UnitsCreated = totalUnits
	for i, r := range resolved {
		resp.Items[i].ProductName = r.name
	}
	return resp, nil
}

// ── GenerateUnitBarcodes ──────────────────────────────────────────────────────

// GenerateUnitBarcodes renders every unit of a purchase as a PNG. Pure
// projection over the unit ledger; fails with NotFound when the purchase has
// no associated units.
func (s *purchaseService) GenerateUnitBarcodes(ctx context.Context, purchaseID uuid.UUID) ([]dto.UnitBarcode, error) {
	units, err := s.itemRepo.FindByPurchaseID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("%w: no units for purchase %s", apierror.ErrNotFound, purchaseID)
	}

	out := make([]dto.UnitBarcode, 0, len(units))
	for _, u := range units {
		png, err := infra.RenderBarcodePNG(u.Barcode, 256)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.UnitBarcode{
			ItemID:  u.ID.String(),
			Barcode: u.Barcode,
			PNG:     png,
		})
	}
	return out, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *purchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: purchase %s", apierror.ErrNotFound, id)
	}
	return purchaseToResponse(p), nil
}

func (s *purchaseService) ListPurchases(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	purchases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, *purchaseToResponse(&purchases[i]))
	}
	return &dto.PurchaseListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func purchaseToResponse(p *model.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	units := 0
	for _, item := range p.Items {
		name, barcode := "", ""
		if item.Product != nil {
			name = item.Product.Name
			barcode = item.Product.Barcode
		}
		units += item.Quantity
		items = append(items, dto.PurchaseItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: name,
			Barcode:     barcode,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			LineTotal:   item.LineTotal,
		})
	}
	vendorName := ""
	if p.Vendor != nil {
		vendorName = p.Vendor.Name
	}
	return &dto.PurchaseResponse{
		ID:           p.ID.String(),
		VendorID:     p.VendorID.String(),
		VendorName:   vendorName,
		PurchaseDate: p.PurchaseDate.Format("2006-01-02"),
		TotalAmount:  p.TotalAmount,
		Status:       p.Status,
		Items:        items,
		UnitsCreated: units,
	}
}
