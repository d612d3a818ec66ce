package router

import (
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/config"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/handler"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/middleware"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/repository"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/service"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	comboRepo := repository.NewComboRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	itemRepo := repository.NewProductItemRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	sheetRepo := repository.NewSheetRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	catalogSvc := service.NewCatalogService(productRepo, comboRepo, vendorRepo, itemRepo)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, productRepo, vendorRepo, itemRepo, dispatcher)
	saleSvc := service.NewSaleService(saleRepo, productRepo, comboRepo, itemRepo)
	returnSvc := service.NewReturnService(returnRepo, productRepo)
	reportSvc := service.NewReportService(
		saleRepo, purchaseRepo, comboRepo, returnRepo, rdb,
		cfg.CostBasisPolicy, time.Duration(cfg.ReportCacheTTLSeconds)*time.Second,
	)
	sheetSvc := service.NewSheetService(sheetRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(catalogSvc)
	combosH := handler.NewCombosHandler(catalogSvc)
	vendorsH := handler.NewVendorsHandler(catalogSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	returnsH := handler.NewReturnsHandler(returnSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	sheetsH := handler.NewSheetsHandler(sheetSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.GetByID)
			products.PUT("/:id", productsH.Update)
			products.GET("/:id/returns", returnsH.ListByProduct)
			products.GET("/:id/status-histogram", reportsH.ProductStatusHistogram)
			products.GET("/:id/return-totals", returnsH.Totals)
		}

		combos := v1.Group("/combos")
		{
			combos.POST("", combosH.Create)
			combos.GET("", combosH.List)
			combos.GET("/:id", combosH.GetByID)
		}

		vendors := v1.Group("/vendors")
		{
			vendors.POST("", vendorsH.Create)
			vendors.GET("", vendorsH.List)
			vendors.GET("/:id", vendorsH.GetByID)
			vendors.PUT("/:id", vendorsH.Update)
		}

		purchases := v1.Group("/purchases")
		{
			purchases.POST("", purchasesH.Create)
			purchases.GET("", purchasesH.List)
			purchases.GET("/:id", purchasesH.GetByID)
			purchases.GET("/:id/barcodes", purchasesH.Barcodes)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.GetByID)
			sales.PATCH("/:id/status", salesH.UpdateStatus)
		}

		v1.POST("/returns", returnsH.Create)

		reports := v1.Group("/reports")
		{
			reports.GET("/profit-loss", reportsH.ProfitLoss)
			reports.GET("/purchase-sales", reportsH.PurchaseSalesSeries)
		}

		sheets := v1.Group("/sheets")
		{
			sheets.POST("", sheetsH.Ingest)
			sheets.POST("/upload", sheetsH.Upload)
			sheets.GET("", sheetsH.List)
			sheets.GET("/:id", sheetsH.GetByID)
			sheets.POST("/:id/rows", sheetsH.AppendRow)
			sheets.PATCH("/:id/rows/:rowId", sheetsH.UpdateRow)
			sheets.DELETE("/:id/rows/:rowId", sheetsH.DeleteRow)
		}
	}

	return r
}
