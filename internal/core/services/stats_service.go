package services

import (
	"context"
	"fmt"
	"time"

	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports"
)

type StatsService struct {
	repo  ports.StatsRepository
	clock ports.Clock
}

func NewStatsService(repo ports.StatsRepository, clock ports.Clock) *StatsService {
	return &StatsService{repo: repo, clock: clock}
}

func (s *StatsService) Platform(ctx context.Context, p domain.Principal) (*domain.PlatformStats, error) {
	if !p.Is(domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: admins only", domain.ErrPermissionDenied)
	}

	stats, err := s.repo.PlatformStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}

	return stats, nil
}

// OwnerReport is an owner's figures for the current calendar month.
type OwnerReport struct {
	Stats         domain.OwnerStats
	From          time.Time
	To            time.Time
	OccupancyRate float64
}

func (s *StatsService) Owner(ctx context.Context, p domain.Principal) (*OwnerReport, error) {
	if !p.Is(domain.RoleOwner) {
		return nil, fmt.Errorf("%w: owners only", domain.ErrPermissionDenied)
	}

	now := s.clock.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	stats, err := s.repo.OwnerStats(ctx, p.UserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("owner stats: %w", err)
	}

	days := to.AddDate(0, 0, -1).Day()

	return &OwnerReport{
		Stats:         *stats,
		From:          from,
		To:            to,
		OccupancyRate: stats.OccupancyRate(days),
	}, nil
}
