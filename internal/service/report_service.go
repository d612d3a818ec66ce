package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/apierror"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CostBasisPolicy values. When several historical purchases exist for the same
// product at different unit costs, the policy picks which line prices a sold
// unit. The tie-break is configuration, not business logic — see DESIGN.md.
const (
	CostBasisLatest   = "latest"
	CostBasisEarliest = "earliest"
)

// ReportService derives profit/loss analytics from the sale and purchase
// ledgers. Reads are point-in-time, not transactional: a report served while
// sales arrive mid-computation is acceptable.
type ReportService interface {
	ProfitLoss(ctx context.Context, filter dto.DateRangeFilter) (*dto.ProfitLossResponse, error)
	PurchaseSalesSeries(ctx context.Context, filter dto.DateRangeFilter) (*dto.PurchaseSalesSeriesResponse, error)
	ProductStatusHistogram(ctx context.Context, productID uuid.UUID) (*dto.ProductStatusHistogram, error)
}

type reportService struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	comboRepo    repository.ComboRepository
	returnRepo   repository.ReturnRepository
	rdb          *redis.Client
	costPolicy   string
	cacheTTL     time.Duration
}

func NewReportService(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	comboRepo repository.ComboRepository,
	returnRepo repository.ReturnRepository,
	rdb *redis.Client,
	costPolicy string,
	cacheTTL time.Duration,
) ReportService {
	if costPolicy == "" {
		costPolicy = CostBasisLatest
	}
	return &reportService{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		comboRepo:    comboRepo,
		returnRepo:   returnRepo,
		rdb:          rdb,
		costPolicy:   costPolicy,
		cacheTTL:     cacheTTL,
	}
}

// parseRange validates and expands a date-range filter. End is inclusive
// through end-of-day. start > end fails before any aggregation runs.
func parseRange(filter dto.DateRangeFilter) (start, end time.Time, err error) {
	if filter.StartDate != "" {
		start, err = time.Parse("2006-01-02", filter.StartDate)
		if err != nil {
			return start, end, fmt.Errorf("%w: start_date %q", apierror.ErrInvalidInput, filter.StartDate)
		}
	}
	if filter.EndDate != "" {
		end, err = time.Parse("2006-01-02", filter.EndDate)
		if err != nil {
			return start, end, fmt.Errorf("%w: end_date %q", apierror.ErrInvalidInput, filter.EndDate)
		}
		end = end.Add(24*time.Hour - time.Second)
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return start, end, fmt.Errorf("%w: start_date after end_date", apierror.ErrInvalidInput)
	}
	return start, end, nil
}

func isReturnStatus(status string) bool {
	return status == model.SaleStatusReturned || status == model.SaleStatusRPU
}

// ── ProfitLoss ───────────────────────────────────────────────────────────────
// Joins every sale line in range against historical purchase cost lines,
// resolving combos into weighted sums of constituent costs. One bad line is
// logged and skipped; only a failure reading the sale ledger itself is fatal.

func (s *reportService) ProfitLoss(ctx context.Context, filter dto.DateRangeFilter) (*dto.ProfitLossResponse, error) {
	start, end, err := parseRange(filter)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("reports:profit_loss:%s:%s", filter.StartDate, filter.EndDate)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		var resp dto.ProfitLossResponse
		if json.Unmarshal(cached, &resp) == nil {
			return &resp, nil
		}
	}

	sales, err := s.saleRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("read sale ledger: %w", err)
	}

	resp := &dto.ProfitLossResponse{Records: []dto.ProfitRecord{}, Monthly: []dto.MonthlyProfit{}}
	monthly := make(map[string]*dto.MonthlyProfit)
	delivered, rpu := decimal.Zero, decimal.Zero

	for i := range sales {
		sale := &sales[i]
		for j := range sale.Items {
			item := &sale.Items[j]

			costPrice, itemID, itemName, err := s.costBasis(ctx, item)
			if err != nil {
				// Degraded line: excluded from totals, report still succeeds.
				log.Warn().
					Str("sale_id", sale.ID.String()).
					Str("item_type", item.ItemType).
					Err(err).
					Msg("profit report: cost resolution failed — line skipped")
				continue
			}

			qty := decimal.NewFromInt(int64(item.Quantity))
			profitPerUnit := item.UnitPrice.Sub(costPrice)
			profitTotal := profitPerUnit.Mul(qty)
			if isReturnStatus(sale.Status) {
				// Returns always count as a loss of that magnitude.
				profitTotal = profitTotal.Abs().Neg()
			}

			resp.Records = append(resp.Records, dto.ProfitRecord{
				SaleID:        sale.ID.String(),
				SaleDate:      sale.SaleDate.UTC().Format("2006-01-02"),
				ItemType:      item.ItemType,
				ItemID:        itemID,
				ItemName:      itemName,
				Status:        sale.Status,
				Quantity:      item.Quantity,
				UnitPrice:     item.UnitPrice,
				CostPrice:     costPrice,
				ProfitPerUnit: profitPerUnit,
				ProfitTotal:   profitTotal,
			})

			monthKey := sale.SaleDate.UTC().Format("2006-01")
			bucket, ok := monthly[monthKey]
			if !ok {
				bucket = &dto.MonthlyProfit{Month: monthKey}
				monthly[monthKey] = bucket
			}
			bucket.TotalProfit = bucket.TotalProfit.Add(profitTotal)
			if isReturnStatus(sale.Status) {
				bucket.RPUProfit = bucket.RPUProfit.Add(profitTotal)
				rpu = rpu.Add(profitTotal)
			} else {
				bucket.DeliveredProfit = bucket.DeliveredProfit.Add(profitTotal)
				delivered = delivered.Add(profitTotal)
			}
		}
	}

	keys := make([]string, 0, len(monthly))
	for k := range monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b := monthly[k]
		b.DeliveredProfit = b.DeliveredProfit.Round(2)
		b.RPUProfit = b.RPUProfit.Round(2)
		b.TotalProfit = b.TotalProfit.Round(2)
		resp.Monthly = append(resp.Monthly, *b)
	}
	resp.Summary = dto.ProfitSummary{
		TotalProfit:     delivered.Add(rpu).Round(2),
		DeliveredProfit: delivered.Round(2),
		RPUProfit:       rpu.Round(2),
	}

	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// costBasis reconstructs the per-unit cost of a sale line from historical
// purchase lines. Missing cost data degrades to zero cost rather than failing
// the report; a malformed reference is an error (the caller skips the line).
func (s *reportService) costBasis(ctx context.Context, item *model.SaleItem) (decimal.Decimal, string, string, error) {
	switch item.ItemType {
	case model.SaleItemTypeProduct:
		if item.ProductID == nil {
			return decimal.Zero, "", "", fmt.Errorf("product line without product_id")
		}
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		cost, err := s.productCost(ctx, *item.ProductID)
		return cost, item.ProductID.String(), name, err

	case model.SaleItemTypeCombo:
		if item.ComboID == nil {
			return decimal.Zero, "", "", fmt.Errorf("combo line without combo_id")
		}
		combo, err := s.comboRepo.FindByID(ctx, *item.ComboID)
		if err != nil {
			return decimal.Zero, "", "", fmt.Errorf("resolve combo %s: %w", item.ComboID, err)
		}
		// Weighted sum of constituent costs; a constituent that was never
		// purchased contributes zero, not a failure.
		total := decimal.Zero
		for _, c := range combo.Items {
			cost, err := s.productCost(ctx, c.ProductID)
			if err != nil {
				return decimal.Zero, "", "", err
			}
			total = total.Add(cost.Mul(decimal.NewFromInt(int64(c.Quantity))))
		}
		return total, combo.ID.String(), combo.Name, nil

	default:
		return decimal.Zero, "", "", fmt.Errorf("unknown item type %q", item.ItemType)
	}
}

func (s *reportService) productCost(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	line, err := s.purchaseRepo.FindCostLine(ctx, productID, s.costPolicy != CostBasisEarliest)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil // no purchase history — cost degrades to zero
		}
		return decimal.Zero, fmt.Errorf("cost line for product %s: %w", productID, err)
	}
	return line.UnitCost, nil
}

// ── PurchaseSalesSeries ──────────────────────────────────────────────────────
// Company-level, cost-agnostic view: daily purchase and sales totals
// outer-joined by date key, missing sides zero-filled.

func (s *reportService) PurchaseSalesSeries(ctx context.Context, filter dto.DateRangeFilter) (*dto.PurchaseSalesSeriesResponse, error) {
	start, end, err := parseRange(filter)
	if err != nil {
		return nil, err
	}

	purchases, err := s.purchaseRepo.ListBetween(ctx, start, end, model.PurchaseStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("read purchase ledger: %w", err)
	}
	sales, err := s.saleRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("read sale ledger: %w", err)
	}

	daily := make(map[string]*dto.DailyFlow)
	day := func(t time.Time) *dto.DailyFlow {
		key := t.UTC().Format("2006-01-02")
		f, ok := daily[key]
		if !ok {
			f = &dto.DailyFlow{Date: key}
			daily[key] = f
		}
		return f
	}

	totalPurchase, totalSales := decimal.Zero, decimal.Zero
	for i := range purchases {
		f := day(purchases[i].PurchaseDate)
		f.PurchaseAmount = f.PurchaseAmount.Add(purchases[i].TotalAmount)
		f.PurchaseCount++
		totalPurchase = totalPurchase.Add(purchases[i].TotalAmount)
	}
	for i := range sales {
		if isReturnStatus(sales[i].Status) {
			continue
		}
		f := day(sales[i].SaleDate)
		f.SalesAmount = f.SalesAmount.Add(sales[i].TotalAmount)
		f.SalesCount++
		totalSales = totalSales.Add(sales[i].TotalAmount)
	}

	keys := make([]string, 0, len(daily))
	for k := range daily {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]dto.DailyFlow, 0, len(keys))
	for _, k := range keys {
		f := daily[k]
		f.PurchaseAmount = f.PurchaseAmount.Round(2)
		f.SalesAmount = f.SalesAmount.Round(2)
		series = append(series, *f)
	}

	return &dto.PurchaseSalesSeriesResponse{
		Series:        series,
		TotalPurchase: totalPurchase.Round(2),
		TotalSales:    totalSales.Round(2),
		Profit:        totalSales.Sub(totalPurchase).Round(2),
	}, nil
}

// ── ProductStatusHistogram ───────────────────────────────────────────────────

// ProductStatusHistogram classifies unit outcomes for a product: delivered
// (sold quantities), RTO and RPU (returns ledger by category).
func (s *reportService) ProductStatusHistogram(ctx context.Context, productID uuid.UUID) (*dto.ProductStatusHistogram, error) {
	deliveredStatuses := []string{model.SaleStatusDelivered, model.SaleStatusCompleted}
	delivered, err := s.saleRepo.SumProductQuantity(ctx, productID, deliveredStatuses)
	if err != nil {
		return nil, fmt.Errorf("sum delivered for product %s: %w", productID, err)
	}
	rto, err := s.returnRepo.SumQuantity(ctx, productID, model.ReturnCategoryRTO)
	if err != nil {
		return nil, fmt.Errorf("sum rto for product %s: %w", productID, err)
	}
	rpu, err := s.returnRepo.SumQuantity(ctx, productID, model.ReturnCategoryRPU)
	if err != nil {
		return nil, fmt.Errorf("sum rpu for product %s: %w", productID, err)
	}

	return &dto.ProductStatusHistogram{
		ProductID: productID.String(),
		Delivered: int(delivered),
		RTO:       int(rto),
		RPU:       int(rpu),
		Total:     int(delivered + rto + rpu),
	}, nil
}

// ── Report cache ─────────────────────────────────────────────────────────────
// Short-TTL redis cache for report responses. Failures are ignored — the
// cache is an optimization, never a dependency.

func (s *reportService) cacheGet(ctx context.Context, key string) []byte {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return nil
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (s *reportService) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, key, data, s.cacheTTL).Err()
}
