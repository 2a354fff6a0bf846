package service

import (
	"context"
	"log"
	"time"

	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/internal/infrastructure/cache"
	"github.com/loop2cod/SNAZ-sub000/pkg/money"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	driverRepo    repository.DriverRepository
	customerRepo  repository.CustomerRepository
	companyRepo   repository.CompanyRepository
	analyticsRepo repository.AnalyticsRepository
	calculations  *CalculationService
	cache         *cache.Store
	cacheTTL      time.Duration
	offsetMinutes int
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service. A nil store disables caching.
func NewDashboardService(
	driverRepo repository.DriverRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	analyticsRepo repository.AnalyticsRepository,
	calculations *CalculationService,
	store *cache.Store,
	cacheTTL time.Duration,
	offsetMinutes int,
) *DashboardService {
	return &DashboardService{
		driverRepo:    driverRepo,
		customerRepo:  customerRepo,
		companyRepo:   companyRepo,
		analyticsRepo: analyticsRepo,
		calculations:  calculations,
		cache:         store,
		cacheTTL:      cacheTTL,
		offsetMinutes: offsetMinutes,
		now:           time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Date               string       `json:"date"`
	ActiveDrivers      int64        `json:"active_drivers"`
	ActiveCustomers    int64        `json:"active_customers"`
	ActiveCompanies    int64        `json:"active_companies"`
	Today              *DailyTotals `json:"today"`
	OutstandingBalance float64      `json:"outstanding_balance"`
	MonthlyBilled      float64      `json:"monthly_billed"`
	MonthlyCollected   float64      `json:"monthly_collected"`
}

// GetDashboardStats returns dashboard statistics for the current business day
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	today := utils.BusinessToday(s.now(), s.offsetMinutes)
	cacheKey := "dashboard:" + today.Format(utils.DateLayout)

	var cached DashboardStats
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		log.Printf("Warning: dashboard cache read failed: %v", err)
	} else if found {
		return &cached, nil
	}

	stats := &DashboardStats{Date: today.Format(utils.DateLayout)}

	var err error
	if stats.ActiveDrivers, err = s.driverRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveCustomers, err = s.customerRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveCompanies, err = s.companyRepo.CountActive(ctx); err != nil {
		return nil, err
	}

	if stats.Today, err = s.calculations.DailyTotals(ctx, today); err != nil {
		return nil, err
	}

	outstanding, err := s.analyticsRepo.GetOutstandingBalance(ctx)
	if err != nil {
		return nil, err
	}
	stats.OutstandingBalance = money.Round2(outstanding)

	billed, err := s.analyticsRepo.GetBilledRevenue(ctx, today.Year(), int(today.Month()))
	if err != nil {
		return nil, err
	}
	stats.MonthlyBilled = money.Round2(billed)

	start, end := utils.MonthRange(today.Year(), int(today.Month()))
	collected, err := s.analyticsRepo.GetCollectedAmount(ctx, start, end)
	if err != nil {
		return nil, err
	}
	stats.MonthlyCollected = money.Round2(collected)

	if err := s.cache.Set(ctx, cacheKey, stats, s.cacheTTL); err != nil {
		log.Printf("Warning: dashboard cache write failed: %v", err)
	}

	return stats, nil
}

// Invalidate drops the cached statistics of the current business day
func (s *DashboardService) Invalidate(ctx context.Context) {
	today := utils.BusinessToday(s.now(), s.offsetMinutes)
	if err := s.cache.Delete(ctx, "dashboard:"+today.Format(utils.DateLayout)); err != nil {
		log.Printf("Warning: dashboard cache invalidation failed: %v", err)
	}
}
