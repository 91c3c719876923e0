package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/types"
)

type DashboardServiceInterface interface {
	TeamStats(ctx context.Context) ([]types.TeamStat, error)
	EquipmentStats(ctx context.Context) ([]types.EquipmentStat, error)
	OverdueRequests(ctx context.Context) ([]types.CalendarItem, error)
	Calendar(ctx context.Context, from, to *time.Time) ([]types.CalendarItem, error)
}

// DashboardService кеширует тяжелые агрегаты в Redis с коротким TTL.
// Кеш - чистая оптимизация: при любой ошибке кеша идем в базу.
type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	cacheTTL      time.Duration
	logger        *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		cacheRepo:     cacheRepo,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

func (s *DashboardService) TeamStats(ctx context.Context) ([]types.TeamStat, error) {
	var stats []types.TeamStat
	if s.readCache(ctx, constants.CacheKeyTeamStats, &stats) {
		return stats, nil
	}

	stats, err := s.dashboardRepo.GetTeamStats(ctx)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, constants.CacheKeyTeamStats, stats)
	return stats, nil
}

func (s *DashboardService) EquipmentStats(ctx context.Context) ([]types.EquipmentStat, error) {
	var stats []types.EquipmentStat
	if s.readCache(ctx, constants.CacheKeyEquipmentStats, &stats) {
		return stats, nil
	}

	stats, err := s.dashboardRepo.GetEquipmentStats(ctx)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, constants.CacheKeyEquipmentStats, stats)
	return stats, nil
}

// OverdueRequests не кешируется: просроченность - свойство момента чтения.
func (s *DashboardService) OverdueRequests(ctx context.Context) ([]types.CalendarItem, error) {
	return s.dashboardRepo.GetOverdueRequests(ctx)
}

func (s *DashboardService) Calendar(ctx context.Context, from, to *time.Time) ([]types.CalendarItem, error) {
	return s.dashboardRepo.GetCalendar(ctx, from, to)
}

func (s *DashboardService) readCache(ctx context.Context, key string, dest interface{}) bool {
	cached, err := s.cacheRepo.Get(ctx, key)
	if err != nil || cached == "" {
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		s.logger.Warn("Поврежденное значение в кеше", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *DashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cacheRepo.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.logger.Warn("Не удалось записать кеш", zap.String("key", key), zap.Error(err))
	}
}
