// Package router wires HTTP handlers to the gin engine.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/infrastructure/auth"
	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/pos/backend/internal/infrastructure/logger"
	"github.com/pos/backend/internal/interfaces/http/handler"
	"github.com/pos/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Customer *handler.CustomerHandler
	Supplier *handler.SupplierHandler
	Invoice  *handler.InvoiceHandler
	Voucher  *handler.VoucherHandler
	Finance  *handler.FinanceHandler
	Report   *handler.ReportHandler
	Settings *handler.SettingsHandler
}

// New builds the gin engine with the full middleware stack and all routes
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request ID first so every later stage can log it,
	// recovery before the request logger so panics still produce a log line.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	corsConfig.MaxAge = 12 * time.Hour
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))

	// Health is unversioned and unauthenticated for load balancer probes
	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	// Public routes
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.GET("/system/info", h.System.GetSystemInfo)

	// Everything below requires a valid access token
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(jwtService))

	authed.GET("/auth/me", h.Auth.Me)
	authed.POST("/auth/change-password", h.Auth.ChangePassword)

	registerCatalogRoutes(authed, h)
	registerPartnerRoutes(authed, h)
	registerLedgerRoutes(authed, h)
	registerAdminRoutes(authed, h)

	return engine
}

func registerCatalogRoutes(rg *gin.RouterGroup, h Handlers) {
	rg.POST("/products", h.Product.Create)
	rg.GET("/products", h.Product.List)
	rg.GET("/products/:id", h.Product.Get)
	rg.GET("/products/barcode/:barcode", h.Product.GetByBarcode)
	rg.PUT("/products/:id", h.Product.Update)
	rg.DELETE("/products/:id", h.Product.Delete)

	rg.POST("/categories", h.Category.Create)
	rg.GET("/categories", h.Category.List)
	rg.PUT("/categories/:id", h.Category.Update)
	rg.DELETE("/categories/:id", h.Category.Delete)
}

func registerPartnerRoutes(rg *gin.RouterGroup, h Handlers) {
	rg.POST("/customers", h.Customer.Create)
	rg.GET("/customers", h.Customer.List)
	rg.GET("/customers/:id", h.Customer.Get)
	rg.PUT("/customers/:id", h.Customer.Update)
	rg.DELETE("/customers/:id", h.Customer.Delete)

	rg.POST("/suppliers", h.Supplier.Create)
	rg.GET("/suppliers", h.Supplier.List)
	rg.GET("/suppliers/:id", h.Supplier.Get)
	rg.PUT("/suppliers/:id", h.Supplier.Update)
	rg.DELETE("/suppliers/:id", h.Supplier.Delete)
}

func registerLedgerRoutes(rg *gin.RouterGroup, h Handlers) {
	rg.POST("/invoices/sales", h.Invoice.ProcessSale)
	rg.POST("/invoices/purchases", h.Invoice.ProcessPurchase)
	rg.GET("/invoices", h.Invoice.List)
	rg.GET("/invoices/:id", h.Invoice.Get)
	rg.GET("/invoices/number/:number", h.Invoice.GetByNumber)

	rg.POST("/vouchers", h.Voucher.Post)
	rg.GET("/vouchers", h.Voucher.List)
	rg.GET("/vouchers/:id", h.Voucher.Get)

	rg.GET("/finance/cash-balance", h.Finance.GetCashBalance)
	rg.GET("/finance/summary", h.Finance.GetSummary)
	rg.GET("/finance/trial-balance", h.Finance.GetTrialBalance)
	rg.GET("/finance/accounts", h.Finance.ListAccounts)
	rg.GET("/finance/customer-balances", h.Finance.GetCustomerBalances)
	rg.GET("/finance/supplier-balances", h.Finance.GetSupplierBalances)
	rg.GET("/finance/cash-transactions", h.Finance.ListCashTransactions)
	rg.GET("/finance/journal-entries", h.Finance.ListJournalEntries)
	rg.GET("/finance/journal-entries/:id", h.Finance.GetJournalEntry)

	rg.GET("/reports/dashboard", h.Report.GetDashboard)
	rg.GET("/reports/sales", h.Report.GetSalesReport)
	rg.GET("/reports/purchases", h.Report.GetPurchasesReport)
}

func registerAdminRoutes(rg *gin.RouterGroup, h Handlers) {
	admin := rg.Group("")
	admin.Use(middleware.RequireRole(identity.UserRoleAdmin))

	admin.POST("/users", h.User.Create)
	admin.GET("/users", h.User.List)
	admin.GET("/users/:id", h.User.Get)

	admin.GET("/settings", h.Settings.List)
	admin.GET("/settings/:key", h.Settings.Get)
	admin.PUT("/settings/:key", h.Settings.Set)
}
