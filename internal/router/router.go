package router

import (
	"time"

	"github.com/HostingCuenca/vet-system/internal/config"
	"github.com/HostingCuenca/vet-system/internal/handler"
	"github.com/HostingCuenca/vet-system/internal/infra"
	"github.com/HostingCuenca/vet-system/internal/middleware"
	"github.com/HostingCuenca/vet-system/internal/repository"
	"github.com/HostingCuenca/vet-system/internal/service"
	"github.com/HostingCuenca/vet-system/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	receiptPDF := infra.NewReceiptPDF(cfg.ClinicName)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	registerRepo := repository.NewCashRegisterRepository(db)
	sessionRepo := repository.NewCashSessionRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	userRepo := repository.NewUserRepository(db)
	ownerRepo := repository.NewOwnerRepository(db)
	numbers := service.NewNumbering(repository.NewSequenceRepository(), cfg.Location())

	// ── Services ─────────────────────────────────────────────────────────────
	registerSvc := service.NewCashRegisterService(registerRepo, sessionRepo)
	sessionSvc := service.NewCashSessionService(sessionRepo, registerRepo, userRepo, numbers)
	movementSvc := service.NewCashMovementService(sessionRepo, userRepo, numbers)
	receiptSvc := service.NewReceiptService(receiptRepo, saleRepo, userRepo, ownerRepo, numbers, receiptPDF)
	saleSvc := service.NewSaleService(saleRepo, sessionRepo, productRepo, serviceRepo, userRepo, ownerRepo, receiptSvc, numbers, dispatcher)
	catalogSvc := service.NewCatalogService(productRepo, serviceRepo)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))
	Register(r, Handlers{
		Registers: handler.NewCashRegistersHandler(registerSvc),
		Sessions:  handler.NewCashSessionsHandler(sessionSvc),
		Movements: handler.NewCashMovementsHandler(movementSvc),
		Sales:     handler.NewSalesHandler(saleSvc),
		Receipts:  handler.NewReceiptsHandler(receiptSvc),
		Catalog:   handler.NewCatalogHandler(catalogSvc),
	})
	return r
}

// Handlers groups every HTTP handler so tests can mount the routes on a bare engine.
type Handlers struct {
	Registers *handler.CashRegistersHandler
	Sessions  *handler.CashSessionsHandler
	Movements *handler.CashMovementsHandler
	Sales     *handler.SalesHandler
	Receipts  *handler.ReceiptsHandler
	Catalog   *handler.CatalogHandler
}

// Register mounts the API routes.
func Register(r gin.IRouter, h Handlers) {
	regs := r.Group("/cash-registers")
	{
		regs.GET("", h.Registers.List)
		regs.POST("", h.Registers.Create)
		regs.DELETE("/:id", h.Registers.Deactivate)
	}

	sessions := r.Group("/cash-sessions")
	{
		sessions.GET("", h.Sessions.List)
		sessions.POST("", h.Sessions.Action)
		sessions.GET("/:id", h.Sessions.Get)
		sessions.GET("/:id/report.xlsx", h.Sessions.Report)
	}

	movements := r.Group("/cash-movements")
	{
		movements.GET("", h.Movements.List)
		movements.POST("", h.Movements.Create)
	}

	sales := r.Group("/sales")
	{
		sales.GET("", h.Sales.List)
		sales.POST("", h.Sales.Create)
		sales.GET("/:id", h.Sales.Get)
	}

	receipts := r.Group("/receipts")
	{
		receipts.GET("", h.Receipts.List)
		receipts.POST("", h.Receipts.Create)
		receipts.GET("/:id", h.Receipts.Get)
		receipts.GET("/:id/pdf", h.Receipts.PDF)
	}

	r.GET("/products", h.Catalog.ListProducts)
	r.POST("/products", h.Catalog.CreateProduct)
	r.GET("/services", h.Catalog.ListServices)
	r.POST("/services", h.Catalog.CreateService)
}
