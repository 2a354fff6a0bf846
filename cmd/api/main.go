package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loop2cod/SNAZ-sub000/internal/application/service"
	"github.com/loop2cod/SNAZ-sub000/internal/config"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/internal/infrastructure/cache"
	"github.com/loop2cod/SNAZ-sub000/internal/infrastructure/database"
	infraRepo "github.com/loop2cod/SNAZ-sub000/internal/infrastructure/repository"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/handler"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/routes"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the first administrator
	if err := database.SeedAdmin(db, &cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}

	// Redis backs the generation lock and the dashboard cache. Without it a
	// single instance still works with an in-process lock and no cache.
	var (
		locker repository.Locker = cache.NewLocalLocker()
		store  *cache.Store
	)
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Printf("Warning: Redis unavailable, using local lock and no cache: %v", err)
		} else {
			locker = cache.NewRedisLocker(rdb)
			store = cache.NewStore(rdb, cfg.App.Name)
		}
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := infraRepo.NewTxManager(db)
	userRepo := infraRepo.NewUserRepository(db)
	driverRepo := infraRepo.NewDriverRepository(db)
	categoryRepo := infraRepo.NewFoodCategoryRepository(db)
	companyRepo := infraRepo.NewCompanyRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	dailyOrderRepo := infraRepo.NewDailyOrderRepository(db)
	billRepo := infraRepo.NewBillRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)
	auditRepo := infraRepo.NewPaymentAuditRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	// Initialize services
	billingCfg := cfg.Billing
	authService := service.NewAuthService(userRepo, jwtManager)
	driverService := service.NewDriverService(driverRepo)
	categoryService := service.NewFoodCategoryService(categoryRepo)
	companyService := service.NewCompanyService(companyRepo)
	customerService := service.NewCustomerService(customerRepo, driverRepo, categoryRepo, companyRepo, txManager)
	orderService := service.NewOrderService(dailyOrderRepo, customerRepo, driverRepo, txManager, locker,
		billingCfg.MealWindowHours, billingCfg.GenerationLockTTL)
	calculationService := service.NewCalculationService(dailyOrderRepo, customerRepo, analyticsRepo,
		billingCfg.ReportTaxRate, billingCfg.CostPerMeal)
	paymentService := service.NewPaymentService(paymentRepo, billRepo, auditRepo, txManager)
	billingService := service.NewBillingService(billRepo, customerRepo, companyRepo, calculationService, paymentService, txManager)
	dashboardService := service.NewDashboardService(driverRepo, customerRepo, companyRepo, analyticsRepo, calculationService,
		store, billingCfg.DashboardCacheTTL, billingCfg.UTCOffsetMinutes)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Driver:       handler.NewDriverHandler(driverService),
		FoodCategory: handler.NewFoodCategoryHandler(categoryService),
		Company:      handler.NewCompanyHandler(companyService),
		Customer:     handler.NewCustomerHandler(customerService),
		Order:        handler.NewOrderHandler(orderService, dashboardService),
		Report:       handler.NewReportHandler(calculationService, billingCfg.UTCOffsetMinutes),
		Billing:      handler.NewBillingHandler(billingService, paymentService, dashboardService),
		Payment:      handler.NewPaymentHandler(paymentService, dashboardService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}

	go purgeIdempotencyKeys(idempotencyRepo, time.Hour)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Printf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// purgeIdempotencyKeys deletes expired idempotency keys on every tick
func purgeIdempotencyKeys(repo repository.IdempotencyRepository, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		removed, err := repo.DeleteExpired(context.Background(), time.Now())
		if err != nil {
			log.Printf("Warning: failed to purge idempotency keys: %v", err)
			continue
		}
		if removed > 0 {
			log.Printf("Purged %d expired idempotency keys", removed)
		}
	}
}
