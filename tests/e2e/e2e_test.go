//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   T-E2E-1: Purchase → unit materialization → sale → profit report
//   T-E2E-2: Concurrent purchases against one product lose no increments
//   T-E2E-3: Mid-transaction fault leaves no partial purchase state
//   T-E2E-4: Sheet ingestion → row edit → summary recomputation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"context"
	"errors"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/apierror"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/config"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/infra"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/repository"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/router"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/service"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	srv *httptest.Server
	db  *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("inventory_test"),
		tcPostgres.WithUsername("inventory"),
		tcPostgres.WithPassword("inventory"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                  8000,
		Env:                   "test",
		DatabaseURL:           pgURL,
		RedisURL:              rdURL,
		WorkerPoolSize:        1,
		PDFStoragePath:        t.TempDir(),
		CostBasisPolicy:       "latest",
		ReportCacheTTLSeconds: 0, // no caching between assertions
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	dispatcher := worker.NewDispatcher(rdb)
	srv := httptest.NewServer(router.New(cfg, db, rdb, dispatcher))
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, db: db}
}

func createProduct(t *testing.T, srv *httptest.Server, name, barcode string) string {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/products", jsonBody(t, map[string]any{
		"name":     name,
		"category": "e2e",
		"barcode":  barcode,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &out)
	return out.ID
}

func createVendor(t *testing.T, srv *httptest.Server, name string) string {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/vendors", jsonBody(t, map[string]any{"name": name}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &out)
	return out.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

// T-E2E-1: full purchase → sale → report flow.
func TestE2E_PurchaseToProfitReport(t *testing.T) {
	env := setupTestEnv(t)
	srv := env.srv

	productID := createProduct(t, srv, "USB Cable", "E2E-CABLE001")
	vendorID := createVendor(t, srv, "Acme Traders")

	// Purchase 5 units at 100.
	purchResp := do(t, srv, "POST", "/v1/purchases", jsonBody(t, map[string]any{
		"vendor_id":     vendorID,
		"purchase_date": "2025-03-01",
		"items": []map[string]any{
			{"product_id": productID, "quantity": 5, "unit_cost": "100"},
		},
	}))
	require.Equal(t, http.StatusCreated, purchResp.StatusCode)
	var purch struct {
		ID           string `json:"id"`
		UnitsCreated int    `json:"units_created"`
		TotalAmount  string `json:"total_amount"`
	}
	decodeJSON(t, purchResp, &purch)
	assert.Equal(t, 5, purch.UnitsCreated)
	assert.Equal(t, "500", purch.TotalAmount)

	// Product aggregate quantity reflects the purchase.
	prodResp := do(t, srv, "GET", "/v1/products/"+productID, nil)
	var prod struct {
		Quantity int `json:"quantity"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 5, prod.Quantity)

	// Unit barcodes are renderable.
	bcResp := do(t, srv, "GET", "/v1/purchases/"+purch.ID+"/barcodes", nil)
	require.Equal(t, http.StatusOK, bcResp.StatusCode)
	var bc struct {
		Units []struct {
			Barcode string `json:"barcode"`
			PNG     []byte `json:"png"`
		} `json:"units"`
	}
	decodeJSON(t, bcResp, &bc)
	require.Len(t, bc.Units, 5)
	assert.Equal(t, "E2E-CABLE001", bc.Units[0].Barcode)
	assert.NotEmpty(t, bc.Units[0].PNG)

	// Sell 3 at 150 (margin 50 each).
	saleResp := do(t, srv, "POST", "/v1/sales", jsonBody(t, map[string]any{
		"sale_date": "2025-03-10",
		"status":    "delivered",
		"items": []map[string]any{
			{"item_type": "product", "item_id": productID, "quantity": 3, "unit_price": "150"},
		},
	}))
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)

	// Profit report attributes 3 × 50 = 150 to 2025-03.
	repResp := do(t, srv, "GET", "/v1/reports/profit-loss", nil)
	require.Equal(t, http.StatusOK, repResp.StatusCode)
	var rep struct {
		Monthly []struct {
			Month       string `json:"month"`
			TotalProfit string `json:"total_profit"`
		} `json:"monthly"`
		Summary struct {
			TotalProfit string `json:"total_profit"`
		} `json:"summary"`
	}
	decodeJSON(t, repResp, &rep)
	require.Len(t, rep.Monthly, 1)
	assert.Equal(t, "2025-03", rep.Monthly[0].Month)
	assert.Equal(t, "150", rep.Monthly[0].TotalProfit)
	assert.Equal(t, "150", rep.Summary.TotalProfit)
}

// T-E2E-2: concurrent purchases must not lose quantity increments.
func TestE2E_ConcurrentPurchasesKeepAllIncrements(t *testing.T) {
	env := setupTestEnv(t)
	srv := env.srv

	productID := createProduct(t, srv, "Charger", "E2E-CHRG0001")
	vendorID := createVendor(t, srv, "Bulk Supply Co")

	const workers = 8
	const perPurchase = 3

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := do(t, srv, "POST", "/v1/purchases", jsonBody(t, map[string]any{
				"vendor_id": vendorID,
				"items": []map[string]any{
					{"product_id": productID, "quantity": perPurchase, "unit_cost": "10"},
				},
			}))
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusCreated {
				errs <- fmt.Errorf("unexpected status %d", resp.StatusCode)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	prodResp := do(t, srv, "GET", "/v1/products/"+productID, nil)
	var prod struct {
		Quantity int `json:"quantity"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, workers*perPurchase, prod.Quantity)
}

// failingUnitRepo breaks the purchase transaction at its last step, after the
// quantity increments and the purchase row have already been written.
type failingUnitRepo struct {
	repository.ProductItemRepository
}

func (r *failingUnitRepo) CreateBatchTx(_ *gorm.DB, _ []model.ProductItem) error {
	return errors.New("unit batch write failed")
}

// T-E2E-3: a fault injected mid-transaction must leave zero observable effect —
// no quantity change, no purchase row, no unit rows.
func TestE2E_PurchaseRollsBackOnUnitWriteFailure(t *testing.T) {
	env := setupTestEnv(t)

	productID := createProduct(t, env.srv, "Headset", "E2E-HDST0001")
	vendorID := createVendor(t, env.srv, "Fault Supply Co")

	svc := service.NewPurchaseService(
		repository.NewPurchaseRepository(env.db),
		repository.NewProductRepository(env.db),
		repository.NewVendorRepository(env.db),
		&failingUnitRepo{repository.NewProductItemRepository(env.db)},
		nil,
	)

	_, err := svc.RecordPurchase(context.Background(), dto.RecordPurchaseRequest{
		VendorID: vendorID,
		Items: []dto.PurchaseLineRequest{
			{ProductID: productID, Quantity: 4, UnitCost: decimal.NewFromInt(50)},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrTransactionAborted)

	// The quantity increments ran before the fault; the rollback must have
	// undone them.
	prodResp := do(t, env.srv, "GET", "/v1/products/"+productID, nil)
	var prod struct {
		Quantity int `json:"quantity"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 0, prod.Quantity)

	var purchases, units int64
	require.NoError(t, env.db.Model(&model.Purchase{}).Count(&purchases).Error)
	require.NoError(t, env.db.Model(&model.ProductItem{}).Count(&units).Error)
	assert.Zero(t, purchases)
	assert.Zero(t, units)
}

// T-E2E-4: sheet ingestion and summary recomputation after a row edit.
func TestE2E_SheetIngestAndEdit(t *testing.T) {
	env := setupTestEnv(t)
	srv := env.srv

	ingestResp := do(t, srv, "POST", "/v1/sheets", jsonBody(t, map[string]any{
		"file_name": "march-report.xlsx",
		"rows": []map[string]any{
			{"Order ID": "ORD-1", "Status": "Delivered", "Profit": "100"},
			{"Order ID": "ORD-2", "Status": "RPU", "Profit": "-25"},
		},
	}))
	require.Equal(t, http.StatusCreated, ingestResp.StatusCode)
	var sheet struct {
		ID            string `json:"id"`
		TotalRecords  int    `json:"total_records"`
		ProfitSummary struct {
			NetProfit string `json:"net_profit"`
		} `json:"profit_summary"`
		Rows []struct {
			ID string `json:"id"`
		} `json:"rows"`
	}
	decodeJSON(t, ingestResp, &sheet)
	assert.Equal(t, 2, sheet.TotalRecords)
	assert.Equal(t, "75", sheet.ProfitSummary.NetProfit)
	require.Len(t, sheet.Rows, 2)

	// Edit the delivered row's profit; summary must be recomputed in full.
	editResp := do(t, srv, "PATCH",
		fmt.Sprintf("/v1/sheets/%s/rows/%s", sheet.ID, sheet.Rows[0].ID),
		jsonBody(t, map[string]any{"profit": "200"}))
	require.Equal(t, http.StatusOK, editResp.StatusCode)
	var edited struct {
		ProfitSummary struct {
			NetProfit       string `json:"net_profit"`
			DeliveredProfit string `json:"delivered_profit"`
		} `json:"profit_summary"`
	}
	decodeJSON(t, editResp, &edited)
	assert.Equal(t, "200", edited.ProfitSummary.DeliveredProfit)
	assert.Equal(t, "175", edited.ProfitSummary.NetProfit)
}
