package admin

import (
	"context"
	"time"

	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

// Stats computes dashboard figures
type Stats interface {
	DashboardStats(ctx context.Context, monthStart, weekStart time.Time) (*domain.DashboardStats, error)
}

// Cache holds the last computed dashboard
type Cache interface {
	GetDashboard(ctx context.Context) (*domain.DashboardStats, error)
	SetDashboard(ctx context.Context, stats *domain.DashboardStats) error
}

// Service serves the admin dashboard
type Service struct {
	stats    Stats
	cache    Cache
	location *time.Location
	logger   *logger.Logger
	now      func() time.Time
}

// NewService creates a new admin service. Periods are computed in location.
func NewService(stats Stats, cache Cache, location *time.Location, log *logger.Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		stats:    stats,
		cache:    cache,
		location: location,
		logger:   log,
		now:      time.Now,
	}
}

// Periods returns the start of the current month and of the current week
// (Sunday 00:00) in loc
func Periods(now time.Time, loc *time.Location) (monthStart, weekStart time.Time) {
	local := now.In(loc)
	y, m, d := local.Date()
	monthStart = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	weekStart = time.Date(y, m, d-int(local.Weekday()), 0, 0, 0, 0, loc)
	return monthStart, weekStart
}

// Dashboard returns the dashboard, serving from cache when possible
func (s *Service) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	if cached, err := s.cache.GetDashboard(ctx); err == nil {
		return cached, nil
	}

	monthStart, weekStart := Periods(s.now(), s.location)
	stats, err := s.stats.DashboardStats(ctx, monthStart, weekStart)
	if err != nil {
		s.logger.Error("Failed to compute dashboard", err)
		return nil, err
	}

	if err := s.cache.SetDashboard(ctx, stats); err != nil {
		s.logger.Warnf("Failed to cache dashboard: %v", err)
	}

	return stats, nil
}
