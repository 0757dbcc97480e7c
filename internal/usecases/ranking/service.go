package ranking

import (
	"fmt"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

type RankingService interface {
	GetLeaderboard(dimension domain.Dimension, metric domain.Metric, topN int, filters domain.FilterConfig) (*domain.LeaderboardResponse, error)
	GetCompetition(dimension domain.Dimension, month string, filters domain.FilterConfig) (*domain.CompetitionResponse, error)
}

type LeaderboardService struct {
	selector        analyzing.RecordSelector
	cache           *analyzing.ResultCache
	leaderboardSize int
}

func NewLeaderboardService(selector analyzing.RecordSelector, cache *analyzing.ResultCache, cfg *config.Config) RankingService {
	size := cfg.Analytics.LeaderboardSize
	if size <= 0 {
		size = 15
	}

	return &LeaderboardService{
		selector:        selector,
		cache:           cache,
		leaderboardSize: size,
	}
}

func (s *LeaderboardService) GetLeaderboard(dimension domain.Dimension, metric domain.Metric, topN int, filters domain.FilterConfig) (*domain.LeaderboardResponse, error) {
	if err := analyzing.ValidateDimension(dimension); err != nil {
		return nil, err
	}
	metric, err := analyzing.ValidateMetric(metric)
	if err != nil {
		return nil, err
	}
	if topN <= 0 {
		topN = s.leaderboardSize
	}

	records, version := s.selector.Select(filters)
	params := map[string]any{"dimension": dimension, "metric": metric, "top": topN, "filters": filters.Active()}

	return analyzing.Memoize(s.cache, "leaderboard", version, params, func() (*domain.LeaderboardResponse, error) {
		ranked := analytics.Rank(analytics.GroupBy(records, dimension), metric, topN)
		analytics.WithPercentages(ranked, analytics.TotalAmount(records))
		analytics.AssignPositions(ranked, nil)

		return &domain.LeaderboardResponse{
			Dimension:       dimension,
			Metric:          metric,
			SnapshotVersion: version,
			Items:           analytics.ToRankingItems(ranked),
		}, nil
	})
}

// GetCompetition ranqueia a dimensão pela receita de um mês (rótulo "Jan 24") e
// compara com as posições do mês anterior. Sem mês informado, usa o mais recente.
func (s *LeaderboardService) GetCompetition(dimension domain.Dimension, month string, filters domain.FilterConfig) (*domain.CompetitionResponse, error) {
	if err := analyzing.ValidateDimension(dimension); err != nil {
		return nil, err
	}

	records, version := s.selector.Select(filters)

	monthDate, err := resolveMonth(records, month)
	if err != nil {
		return nil, err
	}

	current := analytics.PeriodLabel(monthDate, domain.GranularityMonth)
	previous := analytics.PeriodLabel(monthDate.AddDate(0, -1, 0), domain.GranularityMonth)
	params := map[string]any{"dimension": dimension, "month": current, "filters": filters.Active()}

	return analyzing.Memoize(s.cache, "competition", version, params, func() (*domain.CompetitionResponse, error) {
		byMonth := splitByMonth(records)

		currentRanked := analytics.Rank(analytics.GroupBy(byMonth[current], dimension), domain.MetricSum, s.leaderboardSize)
		previousRanked := analytics.Rank(analytics.GroupBy(byMonth[previous], dimension), domain.MetricSum, 0)

		analytics.WithPercentages(currentRanked, analytics.TotalAmount(byMonth[current]))
		analytics.AssignPositions(currentRanked, previousRanked)

		return &domain.CompetitionResponse{
			Dimension:     dimension,
			Month:         current,
			PreviousMonth: previous,
			Items:         analytics.ToRankingItems(currentRanked),
		}, nil
	})
}

func resolveMonth(records []domain.SalesRecord, month string) (time.Time, error) {
	if month != "" {
		date, granularity, ok := analytics.ParsePeriodLabel(month)
		if !ok || granularity != domain.GranularityMonth {
			return time.Time{}, analyzing.NewAnalysisError(
				analyzing.ErrInvalidMonth, apiErrors.ErrInvalidFormat,
				fmt.Sprintf("mês %q fora do formato \"Jan 24\"", month),
			)
		}
		return date, nil
	}

	var latest time.Time
	for _, record := range records {
		date, err := utils.ParseFlexibleDate(record.SignupDate)
		if err == nil && date.After(latest) {
			latest = date
		}
	}
	if latest.IsZero() {
		latest = time.Now().UTC()
	}

	return utils.StartOfMonth(latest), nil
}

func splitByMonth(records []domain.SalesRecord) map[string][]domain.SalesRecord {
	byMonth := make(map[string][]domain.SalesRecord)
	for _, record := range records {
		date, err := utils.ParseFlexibleDate(record.SignupDate)
		if err != nil {
			continue
		}
		label := analytics.PeriodLabel(date, domain.GranularityMonth)
		byMonth[label] = append(byMonth[label], record)
	}
	return byMonth
}
