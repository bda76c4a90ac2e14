package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"parkwise/internal/cache"
	"parkwise/internal/entities"
	"parkwise/internal/repository"
)

// DashboardService serves the cached dashboard aggregates. Reads are
// cache-first; any cache failure degrades to a direct read from the store,
// never to an error.
type DashboardService struct {
	repo   repository.DashboardRepository
	cache  cache.Store
	logger *zap.Logger
}

func NewDashboardService(repo repository.DashboardRepository, store cache.Store, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, cache: store, logger: logger}
}

func (s *DashboardService) UserDashboard(ctx context.Context, userID int) (*entities.UserDashboard, error) {
	key := cache.UserDashboardKey(userID)

	var cached entities.UserDashboard
	ok, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return &cached, nil
	}

	dashboard, err := s.repo.UserDashboard(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("compute user dashboard: %w", err)
	}

	if err := s.cache.Set(ctx, key, dashboard, cache.DashboardTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
	return dashboard, nil
}

func (s *DashboardService) AdminDashboard(ctx context.Context) (*entities.AdminDashboard, error) {
	var cached entities.AdminDashboard
	ok, err := s.cache.Get(ctx, cache.AdminDashboardKey, &cached)
	if err != nil {
		s.logger.Warn("dashboard cache read failed", zap.String("key", cache.AdminDashboardKey), zap.Error(err))
	} else if ok {
		return &cached, nil
	}

	dashboard, err := s.repo.AdminDashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute admin dashboard: %w", err)
	}

	if err := s.cache.Set(ctx, cache.AdminDashboardKey, dashboard, cache.DashboardTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", cache.AdminDashboardKey), zap.Error(err))
	}
	return dashboard, nil
}

// LotStats, UserStats, and FinancialStats are admin-only reads consulted
// rarely enough that they go straight to the store.

func (s *DashboardService) LotStats(ctx context.Context) ([]entities.LotStats, error) {
	return s.repo.LotStats(ctx)
}

func (s *DashboardService) UserStats(ctx context.Context) (*entities.UserStats, error) {
	return s.repo.UserStats(ctx)
}

func (s *DashboardService) FinancialStats(ctx context.Context) (*entities.FinancialStats, error) {
	return s.repo.FinancialStats(ctx)
}
