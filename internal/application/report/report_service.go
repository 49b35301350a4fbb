package report

import (
	"context"

	"github.com/bistro/backend/internal/domain/report"
	"github.com/bistro/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReportService serves the admin dashboard statistics
type ReportService struct {
	repo   report.Repository
	logger *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(repo report.Repository, logger *zap.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

// GlobalStats returns approximate user, menu item and order counts
// together with the exact revenue total. The four queries run concurrently.
func (s *ReportService) GlobalStats(ctx context.Context) (*report.GlobalStats, error) {
	var stats report.GlobalStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Users, err = s.repo.EstimatedUserCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.MenuItems, err = s.repo.EstimatedMenuItemCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Orders, err = s.repo.EstimatedPaymentCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Revenue, err = s.repo.TotalRevenue(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to compute global stats", zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to compute statistics")
	}
	return &stats, nil
}

// OrderStatsByCategory returns purchased quantity and revenue per menu category
func (s *ReportService) OrderStatsByCategory(ctx context.Context) ([]report.CategoryStats, error) {
	stats, err := s.repo.OrderStatsByCategory(ctx)
	if err != nil {
		s.logger.Error("Failed to compute category stats", zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to compute statistics")
	}
	if stats == nil {
		stats = []report.CategoryStats{}
	}
	return stats, nil
}
