package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/loop2cod/SNAZ-sub000/internal/config"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	domainRepo "github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/handler"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/middleware"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Driver       *handler.DriverHandler
	FoodCategory *handler.FoodCategoryHandler
	Company      *handler.CompanyHandler
	Customer     *handler.CustomerHandler
	Order        *handler.OrderHandler
	Report       *handler.ReportHandler
	Billing      *handler.BillingHandler
	Payment      *handler.PaymentHandler
	Dashboard    *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(
			middleware.RateLimiterConfigFor(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
		)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	protected.GET("/dashboard", h.Dashboard.GetStats)

	registerMasterDataRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerDailyOrderRoutes(protected, h, deps)
	registerReportRoutes(protected, h)
	registerBillRoutes(protected, h, deps)
	registerPaymentRoutes(protected, h, deps)
}

func registerMasterDataRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := middleware.RequireRole(entity.RoleAdmin)

	drivers := protected.Group("/drivers")
	{
		drivers.GET("", h.Driver.List)
		drivers.GET("/:id", h.Driver.Get)
		drivers.POST("", admin, h.Driver.Create)
		drivers.PUT("/:id", admin, h.Driver.Update)
		drivers.DELETE("/:id", admin, h.Driver.Delete)
	}

	categories := protected.Group("/food-categories")
	{
		categories.GET("", h.FoodCategory.List)
		categories.GET("/:id", h.FoodCategory.Get)
		categories.POST("", admin, h.FoodCategory.Create)
		categories.PUT("/:id", admin, h.FoodCategory.Update)
		categories.DELETE("/:id", admin, h.FoodCategory.Delete)
	}

	companies := protected.Group("/companies")
	{
		companies.GET("", h.Company.List)
		companies.GET("/:id", h.Company.Get)
		companies.POST("", admin, h.Company.Create)
		companies.PUT("/:id", admin, h.Company.Update)
		companies.DELETE("/:id", admin, h.Company.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.PUT("/daily-food", h.Customer.BulkUpdateDailyFood)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Customer.Delete)
		customers.PUT("/:id/daily-food", h.Customer.UpdateDailyFood)
		customers.GET("/:id/monthly", h.Report.CustomerMonthly)
	}
}

func registerDailyOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/daily-orders")
	{
		orders.GET("", h.Order.List)
		// Generation is retried by clients on timeouts
		orders.POST("/generate", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Generate)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.PUT("/:id/items/:itemId", h.Order.UpdateItem)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/range", h.Report.Range)
		reports.GET("/profit", middleware.RequireRole(entity.RoleAdmin), h.Report.Profit)
	}
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.IdempotencyRequired(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})
	admin := middleware.RequireRole(entity.RoleAdmin)

	bills := protected.Group("/bills")
	{
		bills.GET("", h.Billing.List)
		bills.POST("/customer", admin, h.Billing.GenerateCustomerBill)
		bills.POST("/company", admin, h.Billing.GenerateCompanyBill)
		bills.POST("/monthly", admin, idempotent, h.Billing.GenerateMonthly)
		bills.GET("/period/:entityType/:entityId/:year/:month", h.Billing.GetByPeriod)
		bills.GET("/number/:number", h.Billing.GetByNumber)
		bills.GET("/:id", h.Billing.Get)
		bills.GET("/:id/audits", h.Billing.Audits)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Payment.Record)
		payments.GET("/:id", h.Payment.Get)
	}
}
