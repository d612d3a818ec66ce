package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/apierror"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	svc          service.ReportService
	saleRepo     *stubSaleRepo
	purchaseRepo *stubPurchaseRepo
	comboRepo    *stubComboRepo
	returnRepo   *stubReturnRepo
}

func buildReportSvc(costPolicy string) *reportFixture {
	f := &reportFixture{
		saleRepo:     newStubSaleRepo(),
		purchaseRepo: newStubPurchaseRepo(),
		comboRepo:    newStubComboRepo(),
		returnRepo:   &stubReturnRepo{},
	}
	f.svc = service.NewReportService(f.saleRepo, f.purchaseRepo, f.comboRepo, f.returnRepo, nil, costPolicy, 0)
	return f
}

func (f *reportFixture) seedCostLine(productID uuid.UUID, date string, unitCost int64) {
	d, _ := time.Parse("2006-01-02", date)
	p := &model.Purchase{
		ID:           uuid.New(),
		VendorID:     uuid.New(),
		PurchaseDate: d,
		Status:       model.PurchaseStatusCompleted,
		TotalAmount:  decimal.NewFromInt(unitCost),
		Items: []model.PurchaseItem{
			{ID: uuid.New(), ProductID: productID, Quantity: 1, UnitCost: decimal.NewFromInt(unitCost), LineTotal: decimal.NewFromInt(unitCost)},
		},
	}
	f.purchaseRepo.purchases[p.ID] = p
}

func (f *reportFixture) seedSale(date, status string, items ...model.SaleItem) *model.Sale {
	d, _ := time.Parse("2006-01-02", date)
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	s := &model.Sale{
		ID:          uuid.New(),
		SaleDate:    d,
		Status:      status,
		TotalAmount: total,
		Items:       items,
	}
	f.saleRepo.sales[s.ID] = s
	return s
}

func productLine(productID uuid.UUID, qty int, unitPrice int64) model.SaleItem {
	price := decimal.NewFromInt(unitPrice)
	return model.SaleItem{
		ID:        uuid.New(),
		ItemType:  model.SaleItemTypeProduct,
		ProductID: &productID,
		Quantity:  qty,
		UnitPrice: price,
		LineTotal: price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestProfitLoss_DeliveredSale(t *testing.T) {
	f := buildReportSvc("")
	productID := uuid.New()
	f.seedCostLine(productID, "2025-01-05", 100)
	f.seedSale("2025-02-10", model.SaleStatusDelivered, productLine(productID, 3, 150))

	resp, err := f.svc.ProfitLoss(context.Background(), dto.DateRangeFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)

	rec := resp.Records[0]
	assert.Equal(t, "100", rec.CostPrice.String())
	assert.Equal(t, "50", rec.ProfitPerUnit.String())
	assert.Equal(t, "150", rec.ProfitTotal.String())
	assert.Equal(t, "150", resp.Summary.DeliveredProfit.String())
	assert.Equal(t, "0", resp.Summary.RPUProfit.String())
	assert.Equal(t, "150", resp.Summary.TotalProfit.String())
}

func TestProfitLoss_MalformedLineSkippedNotFatal(t *testing.T) {
	f := buildReportSvc("")
	productID := uuid.New()
	f.seedCostLine(productID, "2025-01-05", 100)

	// One healthy line plus a product line missing its reference. The bad
	// line must be dropped from the totals without failing the report.
	price := decimal.NewFromInt(90)
	broken := model.SaleItem{
		ID:        uuid.New(),
		ItemType:  model.SaleItemTypeProduct,
		ProductID: nil,
		Quantity:  1,
		UnitPrice: price,
		LineTotal: price,
	}
	f.seedSale("2025-02-10", model.SaleStatusDelivered,
		productLine(productID, 2, 200), broken)

	resp, err := f.svc.ProfitLoss(context.Background(), dto.DateRangeFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, productID.String(), resp.Records[0].ItemID)
	assert.Equal(t, "200", resp.Summary.TotalProfit.String())
	assert.Equal(t, "200", resp.Summary.DeliveredProfit.String())
}

func TestProfitLoss_ReturnedSaleIsNegated(t *testing.T) {
	f := buildReportSvc("")
	productID := uuid.New()
	f.seedCostLine(productID, "2025-01-05", 100)
	// Margin would be +150; a returned sale must land as −150 regardless.
	f.seedSale("2025-02-10", model.SaleStatusReturned, productLine(productID, 3, 150))

	resp, err := f.svc.ProfitLoss(context.Background(), dto.DateRangeFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "-150", resp.Records[0].ProfitTotal.String())
	assert.Equal(t, "-150", resp.Summary.RPUProfit.String())
	assert.Equal(t, "-150", resp.Summary.TotalProfit.String())
}

func TestProfitLoss_RPUWithNegativeMarginStaysNegative(t *testing.T) {
	f := buildReportSvc("")
	productID := uuid.New()
	f.seedCostLine(productID, "2025-01-05", 200)
	// Sold below cost: margin −50 per unit. The loss must not flip positive.
	f.seedSale("2025-02-10", model.SaleStatusRPU, productLine(productID, 1, 150))

	resp, err := f.svc.ProfitLoss(context.Background(), dto.DateRangeFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "-50", resp.Records[0].ProfitTotal.String())
}

func TestProfitLoss_ComboCostIsWeightedSum(t *testing.T) {
	f := buildReportSvc("")
	p1, p2 := uuid.New(), uuid.New()
	f.seedCostLine(p1, "2025-01-05", 10) // 2 units in combo → 20
	f.seedCostLine(p2, "2025-01-06", 5)  // 1 unit in combo → 5

	combo := &model.Combo{
		ID:   uuid.New(),
		Name: "Starter Kit",
		Items: []model.ComboItem{
			{ProductID: p1, Quantity: 2},
			{ProductID: p2, Quantity: 1},
		},
	}
	f.comboRepo.combos[combo.ID] = combo

	comboID := combo.ID
	price := decimal.NewFromInt(40)
	f.seedSale("2025-02-10", model.SaleStatusDelivered, model.SaleItem{
		ID:        uuid.New(),
		ItemType:  model.SaleItemTypeCombo,
		ComboID:   &comboID,
		Quantity:  2,
		UnitPrice: price,
		LineTotal: price.Mul(decimal.NewFromInt(2)),
	})

	resp, err := f.svc.ProfitLoss(context.Background(), dto.DateRangeFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)

	rec := resp.Records[0]
	assert.Equal(t, "25", rec.CostPrice.String())     // 2×10 + 1×5
	assert.Equal(t, "15", rec.ProfitPerUnit.String()) // 40 − 25
	assert.Equal(t, "30", rec.ProfitTotal.String())   // ×2
	assert.Equal(t, "Starter Kit", rec.ItemName)
}

func TestProfitLoss_NoPurchaseHistoryDegradesToZeroCost(t *testing.T) {
	f := buildReportSvc("")
	productID := uuid.New()
	f.seedSale("2025-02-10", model.SaleStatusDelivered, productLine(productID, 1, 80))

	resp, err := f.svc.ProfitLoss(context.Background(), dto.DateRangeFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "0", resp.Records[0].CostPrice.String())
	assert.Equal(t, "80", resp.Records[0].ProfitTotal.String())
}

func TestProfitLoss_CostBasisPolicy(t *testing.T) {
	productID := uuid.New()

	seed := func(f *reportFixture) {
		f.seedCostLine(productID, "2025-01-01", 100)
		f.seedCostLine(productID, "2025-03-01", 140)
		f.seedSale("2025-04-01", model.SaleStatusDelivered, productLine(productID, 1, 200))
	}

	latest := buildReportSvc(service.CostBasisLatest)
	seed(latest)
	resp, err := latest.svc.ProfitLoss(context.Background(), dto.DateRangeFilter{})
	require.NoError(t, err)
	assert.Equal(t, "140", resp.Records[0].CostPrice.String())

	earliest := buildReportSvc(service.CostBasisEarliest)
	seed(earliest)
	resp, err = earliest.svc.ProfitLoss(context.Background(), dto.DateRangeFilter{})
	require.NoError(t, err)
	assert.Equal(t, "100", resp.Records[0].CostPrice.String())
}

func TestProfitLoss_MonthlyRollupSorted(t *testing.T) {
	f := buildReportSvc("")
	productID := uuid.New()
	f.seedCostLine(productID, "2025-01-01", 50)
	f.seedSale("2025-03-10", model.SaleStatusDelivered, productLine(productID, 1, 150)) // +100
	f.seedSale("2025-01-15", model.SaleStatusRPU, productLine(productID, 1, 80))       // −30
	f.seedSale("2025-01-20", model.SaleStatusDelivered, productLine(productID, 2, 90)) // +80

	resp, err := f.svc.ProfitLoss(context.Background(), dto.DateRangeFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Monthly, 2)

	jan := resp.Monthly[0]
	assert.Equal(t, "2025-01", jan.Month)
	assert.Equal(t, "80", jan.DeliveredProfit.String())
	assert.Equal(t, "-30", jan.RPUProfit.String())
	assert.Equal(t, "50", jan.TotalProfit.String())

	mar := resp.Monthly[1]
	assert.Equal(t, "2025-03", mar.Month)
	assert.Equal(t, "100", mar.TotalProfit.String())

	assert.Equal(t, "150", resp.Summary.TotalProfit.String())
}

func TestProfitLoss_StartAfterEndRejected(t *testing.T) {
	f := buildReportSvc("")
	_, err := f.svc.ProfitLoss(context.Background(), dto.DateRangeFilter{
		StartDate: "2025-05-01",
		EndDate:   "2025-01-01",
	})
	assert.ErrorIs(t, err, apierror.ErrInvalidInput)
}

func TestPurchaseSalesSeries_OuterJoinZeroFill(t *testing.T) {
	f := buildReportSvc("")
	productID := uuid.New()

	// Purchase on the 1st, sale on the 3rd — each day shows the other side
	// as zero.
	f.seedCostLine(productID, "2025-02-01", 300)
	f.seedSale("2025-02-03", model.SaleStatusCompleted, productLine(productID, 2, 250))
	// Returned sales are excluded from the series.
	f.seedSale("2025-02-04", model.SaleStatusReturned, productLine(productID, 1, 250))

	resp, err := f.svc.PurchaseSalesSeries(context.Background(), dto.DateRangeFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Series, 2)

	day1 := resp.Series[0]
	assert.Equal(t, "2025-02-01", day1.Date)
	assert.Equal(t, "300", day1.PurchaseAmount.String())
	assert.Equal(t, 1, day1.PurchaseCount)
	assert.Equal(t, "0", day1.SalesAmount.String())
	assert.Equal(t, 0, day1.SalesCount)

	day2 := resp.Series[1]
	assert.Equal(t, "2025-02-03", day2.Date)
	assert.Equal(t, "500", day2.SalesAmount.String())
	assert.Equal(t, "0", day2.PurchaseAmount.String())

	assert.Equal(t, "300", resp.TotalPurchase.String())
	assert.Equal(t, "500", resp.TotalSales.String())
	assert.Equal(t, "200", resp.Profit.String())
}

func TestProductStatusHistogram(t *testing.T) {
	f := buildReportSvc("")
	productID := uuid.New()

	f.seedSale("2025-02-01", model.SaleStatusDelivered, productLine(productID, 4, 100))
	f.seedSale("2025-02-02", model.SaleStatusCompleted, productLine(productID, 2, 100))
	f.seedSale("2025-02-03", model.SaleStatusReturned, productLine(productID, 9, 100)) // not delivered

	f.returnRepo.entries = append(f.returnRepo.entries,
		model.ReturnEntry{ID: uuid.New(), ProductID: productID, Category: model.ReturnCategoryRTO, Quantity: 3},
		model.ReturnEntry{ID: uuid.New(), ProductID: productID, Category: model.ReturnCategoryRPU, Quantity: 1},
		model.ReturnEntry{ID: uuid.New(), ProductID: uuid.New(), Category: model.ReturnCategoryRTO, Quantity: 5},
	)

	resp, err := f.svc.ProductStatusHistogram(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Delivered)
	assert.Equal(t, 3, resp.RTO)
	assert.Equal(t, 1, resp.RPU)
	assert.Equal(t, 10, resp.Total)
}
