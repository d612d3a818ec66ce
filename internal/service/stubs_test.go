package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository stubs. Tx methods accept the nil *gorm.DB that
// services pass when their repos expose a nil DB() — mutations happen
// directly against the maps.

// ── Products ─────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products  map[uuid.UUID]*model.Product
	failOnInc bool
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) IncrementQuantityTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	if r.failOnInc {
		return gorm.ErrInvalidTransaction
	}
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Quantity+delta < 0 {
		return gorm.ErrRecordNotFound
	}
	p.Quantity += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Vendors ──────────────────────────────────────────────────────────────────

type stubVendorRepo struct {
	vendors map[uuid.UUID]*model.Vendor
}

func newStubVendorRepo() *stubVendorRepo {
	return &stubVendorRepo{vendors: make(map[uuid.UUID]*model.Vendor)}
}

func (r *stubVendorRepo) Create(_ context.Context, v *model.Vendor) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vendors[v.ID] = v
	return nil
}

func (r *stubVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVendorRepo) List(_ context.Context) ([]model.Vendor, error) {
	out := make([]model.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVendorRepo) Update(_ context.Context, v *model.Vendor) error {
	r.vendors[v.ID] = v
	return nil
}

var _ repository.VendorRepository = (*stubVendorRepo)(nil)

// ── Purchases ────────────────────────────────────────────────────────────────

type stubPurchaseRepo struct {
	purchases  map[uuid.UUID]*model.Purchase
	failCreate bool
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	if r.failCreate {
		return gorm.ErrInvalidTransaction
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].PurchaseID = p.ID
	}
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, _ dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	out := make([]model.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) ListBetween(_ context.Context, start, end time.Time, status string) ([]model.Purchase, error) {
	var out []model.Purchase
	for _, p := range r.purchases {
		if status != "" && p.Status != status {
			continue
		}
		if !start.IsZero() && p.PurchaseDate.Before(start) {
			continue
		}
		if !end.IsZero() && p.PurchaseDate.After(end) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPurchaseRepo) FindCostLine(_ context.Context, productID uuid.UUID, latest bool) (*model.PurchaseItem, error) {
	var best *model.PurchaseItem
	var bestDate time.Time
	for _, p := range r.purchases {
		for i := range p.Items {
			if p.Items[i].ProductID != productID {
				continue
			}
			take := best == nil ||
				(latest && p.PurchaseDate.After(bestDate)) ||
				(!latest && p.PurchaseDate.Before(bestDate))
			if take {
				line := p.Items[i]
				best = &line
				bestDate = p.PurchaseDate
			}
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── Unit ledger ──────────────────────────────────────────────────────────────

type stubItemRepo struct {
	items []model.ProductItem
}

func (r *stubItemRepo) CreateBatchTx(_ *gorm.DB, items []model.ProductItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *stubItemRepo) FindByPurchaseID(_ context.Context, purchaseID uuid.UUID) ([]model.ProductItem, error) {
	var out []model.ProductItem
	for _, it := range r.items {
		if it.PurchaseID == purchaseID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *stubItemRepo) MarkSoldTx(_ *gorm.DB, productID uuid.UUID, count int) (int64, error) {
	var retired int64
	for i := range r.items {
		if retired == int64(count) {
			break
		}
		if r.items[i].ProductID == productID && r.items[i].Status == model.ItemStatusInStock {
			r.items[i].Status = model.ItemStatusSold
			retired++
		}
	}
	return retired, nil
}

func (r *stubItemRepo) CountByProduct(_ context.Context, productID uuid.UUID, status string) (int64, error) {
	var n int64
	for _, it := range r.items {
		if it.ProductID == productID && (status == "" || it.Status == status) {
			n++
		}
	}
	return n, nil
}

var _ repository.ProductItemRepository = (*stubItemRepo)(nil)

// ── Sales ────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

func (r *stubSaleRepo) ListBetween(_ context.Context, start, end time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if !start.IsZero() && s.SaleDate.Before(start) {
			continue
		}
		if !end.IsZero() && s.SaleDate.After(end) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.Before(out[j].SaleDate) })
	return out, nil
}

func (r *stubSaleRepo) SumProductQuantity(_ context.Context, productID uuid.UUID, statuses []string) (int64, error) {
	match := func(status string) bool {
		for _, s := range statuses {
			if s == status {
				return true
			}
		}
		return false
	}
	var total int64
	for _, s := range r.sales {
		if !match(s.Status) {
			continue
		}
		for _, item := range s.Items {
			if item.ProductID != nil && *item.ProductID == productID {
				total += int64(item.Quantity)
			}
		}
	}
	return total, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Combos ───────────────────────────────────────────────────────────────────

type stubComboRepo struct {
	combos map[uuid.UUID]*model.Combo
}

func newStubComboRepo() *stubComboRepo {
	return &stubComboRepo{combos: make(map[uuid.UUID]*model.Combo)}
}

func (r *stubComboRepo) Create(_ context.Context, c *model.Combo) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Items {
		c.Items[i].ComboID = c.ID
	}
	r.combos[c.ID] = c
	return nil
}

func (r *stubComboRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Combo, error) {
	c, ok := r.combos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubComboRepo) List(_ context.Context) ([]model.Combo, error) {
	out := make([]model.Combo, 0, len(r.combos))
	for _, c := range r.combos {
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.ComboRepository = (*stubComboRepo)(nil)

// ── Returns ──────────────────────────────────────────────────────────────────

type stubReturnRepo struct {
	entries []model.ReturnEntry
}

func (r *stubReturnRepo) Create(_ context.Context, e *model.ReturnEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubReturnRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.ReturnEntry, error) {
	var out []model.ReturnEntry
	for _, e := range r.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubReturnRepo) SumQuantity(_ context.Context, productID uuid.UUID, category string) (int64, error) {
	var total int64
	for _, e := range r.entries {
		if e.ProductID == productID && e.Category == category {
			total += int64(e.Quantity)
		}
	}
	return total, nil
}

var _ repository.ReturnRepository = (*stubReturnRepo)(nil)

// ── Sheets ───────────────────────────────────────────────────────────────────

type stubSheetRepo struct {
	sheets map[uuid.UUID]*model.ProfitSheet
	rows   map[uuid.UUID][]model.ProfitSheetRow // by sheet id
}

func newStubSheetRepo() *stubSheetRepo {
	return &stubSheetRepo{
		sheets: make(map[uuid.UUID]*model.ProfitSheet),
		rows:   make(map[uuid.UUID][]model.ProfitSheetRow),
	}
}

func (r *stubSheetRepo) Create(_ context.Context, s *model.ProfitSheet) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Rows {
		if s.Rows[i].ID == uuid.Nil {
			s.Rows[i].ID = uuid.New()
		}
		s.Rows[i].SheetID = s.ID
	}
	r.rows[s.ID] = append([]model.ProfitSheetRow(nil), s.Rows...)
	r.sheets[s.ID] = s
	return nil
}

func (r *stubSheetRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProfitSheet, error) {
	s, ok := r.sheets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *s
	out.Rows = append([]model.ProfitSheetRow(nil), r.rows[id]...)
	sort.Slice(out.Rows, func(i, j int) bool { return out.Rows[i].Position < out.Rows[j].Position })
	return &out, nil
}

func (r *stubSheetRepo) List(_ context.Context, _ dto.SheetFilter) ([]model.ProfitSheet, int64, error) {
	out := make([]model.ProfitSheet, 0, len(r.sheets))
	for _, s := range r.sheets {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSheetRepo) UpdateSummary(_ context.Context, s *model.ProfitSheet) error {
	stored, ok := r.sheets[s.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = s.Status
	stored.TotalRecords = s.TotalRecords
	stored.SuccessRecords = s.SuccessRecords
	stored.ErrorRecords = s.ErrorRecords
	stored.TotalProfit = s.TotalProfit
	stored.DeliveredProfit = s.DeliveredProfit
	stored.RPUProfit = s.RPUProfit
	stored.NetProfit = s.NetProfit
	return nil
}

func (r *stubSheetRepo) FindRow(_ context.Context, sheetID, rowID uuid.UUID) (*model.ProfitSheetRow, error) {
	for i := range r.rows[sheetID] {
		if r.rows[sheetID][i].ID == rowID {
			row := r.rows[sheetID][i]
			return &row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSheetRepo) SaveRow(_ context.Context, row *model.ProfitSheetRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	rows := r.rows[row.SheetID]
	for i := range rows {
		if rows[i].ID == row.ID {
			rows[i] = *row
			return nil
		}
	}
	r.rows[row.SheetID] = append(rows, *row)
	return nil
}

func (r *stubSheetRepo) DeleteRow(_ context.Context, sheetID, rowID uuid.UUID) error {
	rows := r.rows[sheetID]
	for i := range rows {
		if rows[i].ID == rowID {
			r.rows[sheetID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubSheetRepo) MaxPosition(_ context.Context, sheetID uuid.UUID) (int, error) {
	max := 0
	for _, row := range r.rows[sheetID] {
		if row.Position > max {
			max = row.Position
		}
	}
	return max, nil
}

var _ repository.SheetRepository = (*stubSheetRepo)(nil)
