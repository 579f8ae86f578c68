package usecase

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
)

// ChartService manages the stored retailer size charts that back
// recommendations for pages without their own measurement table.
type ChartService struct {
	repo   domain.ChartRepository
	logger zerolog.Logger
}

// NewChartService creates a chart service on top of a chart repository.
func NewChartService(repo domain.ChartRepository, logger zerolog.Logger) *ChartService {
	return &ChartService{repo: repo, logger: logger}
}

// GetChart returns the stored chart for a retailer and category.
func (s *ChartService) GetChart(ctx context.Context, retailer string, category domain.Category) ([]domain.SizeTableRow, []string, error) {
	if retailer == "" {
		return nil, nil, domain.ErrChartNotFound
	}
	return s.repo.GetChart(ctx, retailer, category)
}

// SaveChart validates and stores a chart. Rows are sorted ascending by the
// category's primary measurement before storage so that every
// first-row-that-fits scan downstream can rely on the order.
func (s *ChartService) SaveChart(ctx context.Context, retailer string, category domain.Category, rows []domain.SizeTableRow, offered []string) error {
	if retailer == "" || len(rows) == 0 {
		return domain.ErrInvalidChart
	}
	switch category {
	case domain.CategoryTop, domain.CategoryBottom, domain.CategoryShoes:
	default:
		return domain.ErrUnknownCategory
	}

	sorted := make([]domain.SizeTableRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return primaryMeasurement(sorted[i], category) < primaryMeasurement(sorted[j], category)
	})

	if err := s.repo.SaveChart(ctx, retailer, category, sorted, offered); err != nil {
		return err
	}
	s.logger.Info().
		Str("retailer", retailer).
		Str("category", string(category)).
		Int("rows", len(sorted)).
		Msg("size chart stored")
	return nil
}

// Retailers lists every retailer with at least one stored chart.
func (s *ChartService) Retailers(ctx context.Context) ([]string, error) {
	return s.repo.Retailers(ctx)
}

func primaryMeasurement(row domain.SizeTableRow, category domain.Category) float64 {
	switch category {
	case domain.CategoryTop:
		return row.ChestCM
	case domain.CategoryShoes:
		return row.FootLengthCM
	default:
		return row.WaistCM
	}
}
