package router

import (
	"time"

	"github.com/alperendnc/jewelery-app-sub000/internal/config"
	"github.com/alperendnc/jewelery-app-sub000/internal/handler"
	"github.com/alperendnc/jewelery-app-sub000/internal/middleware"
	"github.com/alperendnc/jewelery-app-sub000/internal/repository"
	"github.com/alperendnc/jewelery-app-sub000/internal/service"
	"github.com/alperendnc/jewelery-app-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Mongo/Redis
func New(cfg *config.Config, client *mongo.Client, db *mongo.Database, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMin))

	retry := service.RetryPolicy{
		Attempts: cfg.StoreRetryAttempts,
		Base:     time.Duration(cfg.StoreRetryBaseMs) * time.Millisecond,
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)
	cashRepo := repository.NewCashRepository(db)
	txRunner := repository.NewTxRunner(client)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, retry)
	customerSvc := service.NewCustomerService(customerRepo, retry)
	ledgerSvc := service.NewLedgerService(productRepo, saleRepo, purchaseRepo, customerRepo, transactionRepo, txRunner, dispatcher, retry)
	trackingSvc := service.NewTrackingService(transactionRepo, retry)
	currencySvc := service.NewCurrencyService(currencyRepo, transactionRepo, txRunner, dispatcher, retry)
	cashSvc := service.NewCashService(cashRepo, transactionRepo, retry)
	reportSvc := service.NewReportService(saleRepo, purchaseRepo, currencyRepo, transactionRepo, rdb, time.Duration(cfg.ReportCacheTTLMin)*time.Minute)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	salesH := handler.NewSalesHandler(ledgerSvc)
	purchasesH := handler.NewPurchasesHandler(ledgerSvc)
	trackingH := handler.NewTrackingHandler(trackingSvc)
	currencyH := handler.NewCurrencyHandler(currencySvc)
	cashH := handler.NewCashHandler(cashSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(client, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(cfg.LoginRateLimitPerMin), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operator, admin — declared per-endpoint
		v1.POST("/sales", middleware.RequireRole("operator", "admin"), salesH.Record)
		v1.GET("/sales", middleware.RequireRole("operator", "admin"), salesH.List)
		v1.POST("/sales/:id/void", middleware.RequireRole("admin"), salesH.Void)
		v1.DELETE("/sales/:id", middleware.RequireRole("admin"), salesH.Delete)

		v1.POST("/purchases", middleware.RequireRole("operator", "admin"), purchasesH.Record)
		v1.GET("/purchases", middleware.RequireRole("operator", "admin"), purchasesH.List)
		v1.DELETE("/purchases/:id", middleware.RequireRole("admin"), purchasesH.Delete)

		v1.GET("/products", middleware.RequireRole("operator", "admin"), productsH.List)
		v1.GET("/products/low-stock", middleware.RequireRole("operator", "admin"), productsH.ListLowStock)
		v1.GET("/products/:id", middleware.RequireRole("operator", "admin"), productsH.Get)
		// Write operations — admin only
		products := v1.Group("/products", middleware.RequireRole("admin"))
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.PATCH("/:id/stock", productsH.AdjustStock)
			products.DELETE("/:id", productsH.Delete)
		}

		v1.GET("/customers", middleware.RequireRole("operator", "admin"), customersH.List)
		v1.GET("/customers/stream", middleware.RequireRole("operator", "admin"), customersH.Stream)
		v1.GET("/customers/:id", middleware.RequireRole("operator", "admin"), customersH.Get)
		v1.POST("/customers", middleware.RequireRole("operator", "admin"), customersH.Create)
		customers := v1.Group("/customers", middleware.RequireRole("admin"))
		{
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		v1.POST("/transactions", middleware.RequireRole("operator", "admin"), trackingH.Create)
		v1.GET("/transactions", middleware.RequireRole("operator", "admin"), trackingH.List)
		v1.GET("/transactions/:id", middleware.RequireRole("operator", "admin"), trackingH.Get)
		transactions := v1.Group("/transactions", middleware.RequireRole("admin"))
		{
			transactions.PUT("/:id", trackingH.Update)
			transactions.DELETE("/:id", trackingH.Delete)
		}

		v1.POST("/currency", middleware.RequireRole("operator", "admin"), currencyH.Create)
		v1.GET("/currency", middleware.RequireRole("operator", "admin"), currencyH.List)
		v1.GET("/currency/:id", middleware.RequireRole("operator", "admin"), currencyH.Get)
		currency := v1.Group("/currency", middleware.RequireRole("admin"))
		{
			currency.PUT("/:id", currencyH.Update)
			currency.DELETE("/:id", currencyH.Delete)
		}

		cash := v1.Group("/cash", middleware.RequireRole("operator", "admin"))
		{
			cash.POST("/open", cashH.OpenDay)
			cash.POST("/close", cashH.CloseDay)
			cash.GET("/history", cashH.History)
			cash.GET("/:date", cashH.GetDay)
		}

		reports := v1.Group("/reports", middleware.RequireRole("operator", "admin"))
		{
			reports.GET("/daily", reportsH.Daily)
			reports.GET("/daily/pdf", reportsH.DailyPDF)
			reports.GET("/range", reportsH.Range)
		}

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
			users.PATCH("/:id/reactivate", authH.ReactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
